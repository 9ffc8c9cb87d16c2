package llmtool

import (
	"regexp"
	"strings"
)

// MaxRelevantFiles caps the parsed RELEVANT_FILES list.
const MaxRelevantFiles = 15

const (
	defaultReasoning  = "Analysis completed"
	defaultConfidence = "medium"
)

var (
	reExplanation = regexp.MustCompile(`(?s)EXPLANATION:\s*(.*?)\s*(?:CONTENT:|$)`)
	reContent     = regexp.MustCompile("(?s)CONTENT:\\s*```(?:markdown)?\\n(.*?)```")
	reReasoning   = regexp.MustCompile(`(?s)REASONING:\s*(.*?)\s*(?:RELEVANT_FILES:|CONFIDENCE:|$)`)
	reFiles       = regexp.MustCompile(`(?s)RELEVANT_FILES:\s*(.*?)\s*(?:CONFIDENCE:|$)`)
	reConfidence  = regexp.MustCompile(`(?i)CONFIDENCE:\s*(high|medium|low)`)
)

// ParseTaskReply extracts explanation and content from a model reply.
// It never fails: missing markers degrade to documented defaults. For chat
// the whole reply is the explanation, untouched.
func ParseTaskReply(action Action, text string) TaskResult {
	res := TaskResult{Action: action}
	if action == ActionChat {
		res.Explanation = text
		return res
	}
	if m := reExplanation.FindStringSubmatch(text); m != nil {
		res.Explanation = strings.TrimSpace(m[1])
	} else {
		res.Explanation = strings.TrimSpace(text)
	}
	if m := reContent.FindStringSubmatch(text); m != nil {
		res.Content = strings.TrimRight(m[1], "\n")
	}
	return res
}

// ParseAnalysis extracts the three analysis sections. Absent markers fall
// back to defaults rather than erroring.
func ParseAnalysis(text string) FileAnalysis {
	out := FileAnalysis{
		Reasoning:  defaultReasoning,
		Confidence: defaultConfidence,
	}
	if m := reReasoning.FindStringSubmatch(text); m != nil {
		if r := strings.TrimSpace(m[1]); r != "" {
			out.Reasoning = r
		}
	}
	if m := reFiles.FindStringSubmatch(text); m != nil {
		out.RelevantFiles = parseFileLines(m[1])
	}
	if m := reConfidence.FindStringSubmatch(text); m != nil {
		out.Confidence = strings.ToLower(m[1])
	}
	return out
}

// parseFileLines splits the RELEVANT_FILES body into paths: blank lines,
// bracketed placeholders and comment lines are dropped, bullets stripped,
// and the result capped at MaxRelevantFiles.
func parseFileLines(body string) []string {
	var files []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		line = strings.Trim(line, "`")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		files = append(files, line)
		if len(files) == MaxRelevantFiles {
			break
		}
	}
	return files
}
