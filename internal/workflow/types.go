package workflow

// ColorItem is a display color with a human-readable name and a hex literal.
type ColorItem struct {
	Color string `json:"color"`
	Hex   string `json:"hex"`
}

// AnalysisResult is the normalized personal-color analysis held by the UI.
// MakeupColors and FashionColors are always ColorItem lists, never nil and
// never bare strings, regardless of what the workflow returned.
type AnalysisResult struct {
	Type          string      `json:"type"`
	Name          string      `json:"name"`
	Subtitle      string      `json:"subtitle"`
	Reasons       []string    `json:"reasons"`
	MakeupColors  []ColorItem `json:"makeup_colors"`
	MakeupGuide   string      `json:"makeup_guide"`
	FashionColors []ColorItem `json:"fashion_colors"`
	FashionGuide  string      `json:"fashion_guide"`
}

// AnalyzeRequest is the payload forwarded to the analysis webhook.
type AnalyzeRequest struct {
	ClientUUID string `json:"client_uuid"`
	Image      string `json:"image"`
	Timestamp  string `json:"timestamp"`
}
