// Package llmtool renders documentation prompts and parses the model's
// marker-delimited free-text replies.
package llmtool

// Action selects one of the five documentation task templates.
type Action string

const (
	ActionEdit             Action = "edit"
	ActionGenerate         Action = "generate"
	ActionChat             Action = "chat"
	ActionAnalyzeCodebase  Action = "analyze_codebase"
	ActionProcessWithFiles Action = "process_with_files"
)

// Valid reports whether a is a known action value.
func (a Action) Valid() bool {
	switch a {
	case ActionEdit, ActionGenerate, ActionChat, ActionAnalyzeCodebase, ActionProcessWithFiles:
		return true
	}
	return false
}

// Task is one documentation request as sent by the frontend. Never persisted.
type Task struct {
	Message        string
	CurrentContent string
	FilePath       string
	Action         Action
	SelectedFiles  []string
}

// FileContent pairs a repo-relative path with its (possibly placeholder) text.
type FileContent struct {
	Path string
	Text string
}

// FileAnalysis is the parsed result of an analyze_codebase reply.
type FileAnalysis struct {
	RelevantFiles []string `json:"relevantFiles"`
	Reasoning     string   `json:"reasoning"`
	Confidence    string   `json:"confidence"`
}

// TaskResult is the terminal value handed back to the frontend.
type TaskResult struct {
	Explanation           string        `json:"explanation"`
	Content               string        `json:"content,omitempty"`
	Action                Action        `json:"action"`
	FileAnalysis          *FileAnalysis `json:"fileAnalysis,omitempty"`
	NeedsUserConfirmation bool          `json:"needsUserConfirmation,omitempty"`
}
