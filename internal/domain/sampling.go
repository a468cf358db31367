package domain

// SamplingRequest asks the client to run one completion.
type SamplingRequest struct {
	Prompt    string
	MaxTokens int64
}

// SamplingResult is the client's completion. Text is empty when the client
// returned non-text content.
type SamplingResult struct {
	Text   string
	IsText bool
	Model  string
}
