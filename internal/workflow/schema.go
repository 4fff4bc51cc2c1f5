package workflow

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed schema.yaml
var schemaYAML []byte

// pathStep is one segment of the extraction path: either a map key or a
// list index.
type pathStep struct {
	key     string
	index   int
	isIndex bool
}

func (s pathStep) String() string {
	if s.isIndex {
		return fmt.Sprintf("[%d]", s.index)
	}
	return "." + s.key
}

// resultPath is the extraction path loaded from the embedded schema.
var resultPath = mustLoadSchema(schemaYAML)

type schemaFile struct {
	ResultPath []any `yaml:"result_path"`
}

func mustLoadSchema(data []byte) []pathStep {
	steps, err := loadSchema(data)
	if err != nil {
		// The schema ships inside the binary; a bad one is a build defect.
		panic("workflow: invalid embedded schema.yaml: " + err.Error())
	}
	return steps
}

func loadSchema(data []byte) ([]pathStep, error) {
	var f schemaFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	if len(f.ResultPath) == 0 {
		return nil, fmt.Errorf("result_path is empty")
	}

	steps := make([]pathStep, 0, len(f.ResultPath))
	for i, raw := range f.ResultPath {
		switch v := raw.(type) {
		case string:
			steps = append(steps, pathStep{key: v})
		case int:
			if v < 0 {
				return nil, fmt.Errorf("result_path[%d]: negative index %d", i, v)
			}
			steps = append(steps, pathStep{index: v, isIndex: true})
		default:
			return nil, fmt.Errorf("result_path[%d]: unsupported segment %v (%T)", i, raw, raw)
		}
	}
	return steps, nil
}

// walkPath descends value along steps. A missing or mistyped segment
// returns the step that failed so the error can name it.
func walkPath(value any, steps []pathStep) (any, error) {
	current := value
	for _, step := range steps {
		if step.isIndex {
			list, ok := current.([]any)
			if !ok {
				return nil, fmt.Errorf("segment %s: expected a list", step)
			}
			if step.index >= len(list) {
				return nil, fmt.Errorf("segment %s: list has %d elements", step, len(list))
			}
			current = list[step.index]
			continue
		}

		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("segment %s: expected an object", step)
		}
		current, ok = obj[step.key]
		if !ok {
			return nil, fmt.Errorf("segment %s: key absent", step)
		}
	}
	return current, nil
}
