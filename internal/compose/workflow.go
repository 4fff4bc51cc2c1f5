package compose

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kozaktomas/huetone/internal/faults"
	"github.com/kozaktomas/huetone/internal/workflow"
)

// workflowProvider forwards the styling bundle to a second automation
// webhook of the same class the analysis uses. The webhook answers with a
// single-element list carrying either an output URL or base64 image bytes.
type workflowProvider struct {
	client *workflow.Client
}

func newWorkflowProvider(webhookURL string) (*workflowProvider, error) {
	client, err := workflow.NewClient(webhookURL)
	if err != nil {
		return nil, err
	}
	return &workflowProvider{client: client}, nil
}

func (p *workflowProvider) Name() string {
	return "workflow"
}

func (p *workflowProvider) Validate(req Request) error {
	return requireColorType(req)
}

// workflowResult is the first element of the webhook's response list.
type workflowResult struct {
	Status       string          `json:"status"`
	Output       json.RawMessage `json:"output"`
	StylingImage string          `json:"styling_image"`
	Error        string          `json:"error"`
}

func (p *workflowProvider) Compose(ctx context.Context, req Request) (Output, error) {
	body, err := p.client.Invoke(ctx, req)
	if err != nil {
		return Output{}, err
	}

	var results []workflowResult
	if err := json.Unmarshal(body, &results); err != nil {
		return Output{}, faults.Wrap(faults.Shape, "styling webhook did not return a list", err)
	}
	if len(results) == 0 {
		return Output{}, faults.New(faults.Shape, "styling webhook returned an empty list")
	}

	result := results[0]
	if result.Status != "succeeded" {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("styling workflow reported status %q", result.Status)
		}
		return Output{}, faults.New(faults.Upstream, msg)
	}

	return decodeWorkflowOutput(result)
}

// decodeWorkflowOutput inspects the response shape once: a string output, a
// list of outputs, or base64 bytes in styling_image.
func decodeWorkflowOutput(result workflowResult) (Output, error) {
	if len(result.Output) > 0 && string(result.Output) != "null" {
		var single string
		if err := json.Unmarshal(result.Output, &single); err == nil {
			return DirectURL(single), nil
		}
		var many []string
		if err := json.Unmarshal(result.Output, &many); err == nil {
			return ArrayWrapped(many), nil
		}
		return Output{}, faults.New(faults.Shape, "styling workflow output has an unsupported shape")
	}
	if result.StylingImage != "" {
		return DirectURL(result.StylingImage), nil
	}
	return Output{}, faults.New(faults.Upstream, "styling workflow returned no image")
}
