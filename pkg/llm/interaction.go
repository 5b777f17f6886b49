package llm

import "time"

// Interaction is the audit record of one prompt/response exchange, stored
// next to the analysis result it produced (one record per category, or one
// per bucket under chunking).
type Interaction struct {
	Category  string    `json:"category"`
	Bucket    string    `json:"bucket,omitempty"`
	Model     string    `json:"model"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	Duration  string    `json:"duration,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Name returns the file-name stem used when persisting the interaction
// ("<Category>" or "<Category>_<bucket>").
func (i *Interaction) Name() string {
	if i.Bucket == "" {
		return i.Category
	}
	return i.Category + "_" + i.Bucket
}
