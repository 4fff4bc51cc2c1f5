package workflow

import (
	"encoding/json"

	"github.com/kozaktomas/huetone/internal/faults"
)

// PlaceholderHex stands in for colors the workflow names without a hex code.
const PlaceholderHex = "#E0E0E0"

// Normalize extracts a well-formed AnalysisResult from an arbitrary webhook
// response body. It either returns a fully-shaped result or fails; partial
// results are never produced. No fallback paths are attempted when the
// response does not match the embedded schema.
func Normalize(raw []byte) (*AnalysisResult, error) {
	var top any
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, faults.Wrap(faults.Shape, "webhook response is not JSON", err)
	}

	candidates, err := candidateList(top)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, faults.New(faults.Shape, "webhook response list is empty")
	}

	value, err := walkPath(candidates[0], resultPath)
	if err != nil {
		return nil, faults.Wrap(faults.Shape, "webhook response does not match the expected shape", err)
	}

	text, ok := value.(string)
	if !ok {
		return nil, faults.New(faults.Shape, "webhook result field is not a string")
	}

	var parsed rawResult
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, faults.Wrap(faults.PayloadDecode, "embedded analysis payload is not valid JSON", err)
	}

	return &AnalysisResult{
		Type:          parsed.Type,
		Name:          parsed.Name,
		Subtitle:      parsed.Subtitle,
		Reasons:       parsed.Reasons,
		MakeupColors:  CoerceColors(parsed.MakeupColors),
		MakeupGuide:   parsed.MakeupGuide,
		FashionColors: CoerceColors(parsed.FashionColors),
		FashionGuide:  parsed.FashionGuide,
	}, nil
}

// candidateList picks the list the result lives in: the top-level value if
// it is a list, otherwise its "data" field.
func candidateList(top any) ([]any, error) {
	if list, ok := top.([]any); ok {
		return list, nil
	}
	if obj, ok := top.(map[string]any); ok {
		if list, ok := obj["data"].([]any); ok {
			return list, nil
		}
	}
	return nil, faults.New(faults.Shape, "webhook response carries no result list")
}

// rawResult defers the color lists so coercion can handle both bare-string
// and structured variants the workflow has returned over time.
type rawResult struct {
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	Subtitle      string          `json:"subtitle"`
	Reasons       []string        `json:"reasons"`
	MakeupColors  json.RawMessage `json:"makeup_colors"`
	MakeupGuide   string          `json:"makeup_guide"`
	FashionColors json.RawMessage `json:"fashion_colors"`
	FashionGuide  string          `json:"fashion_guide"`
}

// CoerceColors turns a loosely-typed color list into ColorItems. Bare
// strings get the placeholder hex, objects pass through, anything that is
// not a list becomes an empty list. The operation is idempotent.
func CoerceColors(raw json.RawMessage) []ColorItem {
	items := []ColorItem{}
	if len(raw) == 0 {
		return items
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return items
	}

	for _, el := range elements {
		var name string
		if err := json.Unmarshal(el, &name); err == nil {
			items = append(items, ColorItem{Color: name, Hex: PlaceholderHex})
			continue
		}
		var item ColorItem
		if err := json.Unmarshal(el, &item); err == nil {
			items = append(items, item)
		}
	}
	return items
}
