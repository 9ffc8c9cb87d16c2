package llmtool

import (
	"bytes"
	"fmt"
	"strings"
)

// replyFormat is appended to every content-producing template so the parser
// can extract the two sections deterministically.
const replyFormat = `Reply in exactly this format:

EXPLANATION:
A short description of what you did.

CONTENT:
` + "```markdown" + `
The full resulting document.
` + "```" + `
`

// analysisFormat is the three-section contract for codebase analysis replies.
const analysisFormat = `Reply in exactly this format:

REASONING:
Why these files matter for the request.

RELEVANT_FILES:
One repository path per line, at most 15, chosen only from the candidates.

CONFIDENCE:
high, medium or low
`

// BuildPrompt renders the template for the task's action. candidates feeds
// the analyze_codebase template; files feeds process_with_files. User text is
// embedded verbatim inside markdown fences, nothing is escaped.
func BuildPrompt(t Task, candidates []string, files []FileContent) (string, error) {
	switch t.Action {
	case ActionEdit:
		return editPrompt(t), nil
	case ActionGenerate:
		return generatePrompt(t), nil
	case ActionChat:
		return chatPrompt(t), nil
	case ActionAnalyzeCodebase:
		return analysisPrompt(t, candidates), nil
	case ActionProcessWithFiles:
		return documentationPrompt(t, files), nil
	default:
		return "", fmt.Errorf("llmtool: unknown action %q", t.Action)
	}
}

func editPrompt(t Task) string {
	var buf bytes.Buffer
	buf.WriteString("You are a documentation assistant editing a GitLab wiki page.\n\n")
	writeSection(&buf, "TASK", t.Message)
	current := t.CurrentContent
	if strings.TrimSpace(current) == "" {
		current = "(empty document)"
	}
	title := "CURRENT DOCUMENT"
	if t.FilePath != "" {
		title = "CURRENT DOCUMENT (" + t.FilePath + ")"
	}
	writeSection(&buf, title, fence(current))
	buf.WriteString(replyFormat)
	return buf.String()
}

func generatePrompt(t Task) string {
	var buf bytes.Buffer
	buf.WriteString("You are a documentation assistant writing a new GitLab wiki page.\n\n")
	writeSection(&buf, "TASK", t.Message)
	if strings.TrimSpace(t.CurrentContent) != "" {
		writeSection(&buf, "EXISTING NOTES", fence(t.CurrentContent))
	}
	buf.WriteString(replyFormat)
	return buf.String()
}

func chatPrompt(t Task) string {
	var buf bytes.Buffer
	buf.WriteString("You are a helpful documentation assistant. Answer the user's question directly as plain text.\n\n")
	writeSection(&buf, "QUESTION", t.Message)
	if strings.TrimSpace(t.CurrentContent) != "" {
		writeSection(&buf, "DOCUMENT CONTEXT", fence(t.CurrentContent))
	}
	return buf.String()
}

func analysisPrompt(t Task, candidates []string) string {
	var buf bytes.Buffer
	buf.WriteString("You are selecting the repository files that matter most for a documentation request.\n\n")
	writeSection(&buf, "REQUEST", t.Message)
	var list strings.Builder
	for _, p := range candidates {
		list.WriteString("- ")
		list.WriteString(p)
		list.WriteString("\n")
	}
	writeSection(&buf, "CANDIDATE FILES", strings.TrimRight(list.String(), "\n"))
	buf.WriteString(analysisFormat)
	return buf.String()
}

func documentationPrompt(t Task, files []FileContent) string {
	var buf bytes.Buffer
	buf.WriteString("You are writing documentation from the source files below.\n\n")
	writeSection(&buf, "REQUEST", t.Message)
	if strings.TrimSpace(t.CurrentContent) != "" {
		writeSection(&buf, "CURRENT DOCUMENT", fence(t.CurrentContent))
	}
	var bundle bytes.Buffer
	for _, f := range files {
		fmt.Fprintf(&bundle, "=== %s ===\n%s\n", f.Path, fence(f.Text))
	}
	writeSection(&buf, "SELECTED FILES", strings.TrimRight(bundle.String(), "\n"))
	buf.WriteString(replyFormat)
	return buf.String()
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString(title)
	buf.WriteString(":\n")
	buf.WriteString(body)
	buf.WriteString("\n\n")
}

func fence(s string) string {
	return "```\n" + strings.TrimRight(s, "\n") + "\n```"
}
