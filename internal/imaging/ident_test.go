package imaging

import (
	"regexp"
	"testing"
)

var correlationIDPattern = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewCorrelationID_Layout(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := NewCorrelationID()

		if len(id) != 36 {
			t.Fatalf("expected 36 characters, got %d (%q)", len(id), id)
		}
		if !correlationIDPattern.MatchString(id) {
			t.Fatalf("id %q does not match UUID v4 layout", id)
		}
	}
}

func TestNewCorrelationID_NotConstant(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[NewCorrelationID()] = struct{}{}
	}
	if len(seen) < 50 {
		t.Errorf("expected 50 distinct ids, got %d", len(seen))
	}
}
