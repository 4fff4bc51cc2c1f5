package workflow

import (
	"testing"
)

func TestEmbeddedSchemaLoads(t *testing.T) {
	steps, err := loadSchema(schemaYAML)
	if err != nil {
		t.Fatalf("embedded schema failed to load: %v", err)
	}
	if len(steps) != 5 {
		t.Fatalf("expected 5 path segments, got %d", len(steps))
	}

	want := []pathStep{
		{key: "output"},
		{index: 0, isIndex: true},
		{key: "content"},
		{index: 0, isIndex: true},
		{key: "text"},
	}
	for i, step := range steps {
		if step != want[i] {
			t.Errorf("segment %d: got %+v, want %+v", i, step, want[i])
		}
	}
}

func TestLoadSchema_Rejects(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty path", "result_path: []\n"},
		{"missing path", "other: 1\n"},
		{"negative index", "result_path:\n  - output\n  - -1\n"},
		{"unsupported segment", "result_path:\n  - output\n  - {k: v}\n"},
		{"not yaml", ":\n :\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := loadSchema([]byte(c.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWalkPath_IndexIntoObjectFails(t *testing.T) {
	steps := []pathStep{{index: 0, isIndex: true}}

	if _, err := walkPath(map[string]any{"a": 1}, steps); err == nil {
		t.Error("expected error walking an index into an object")
	}
}

func TestWalkPath_KeyIntoListFails(t *testing.T) {
	steps := []pathStep{{key: "output"}}

	if _, err := walkPath([]any{1, 2}, steps); err == nil {
		t.Error("expected error walking a key into a list")
	}
}
