package llmtool

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptEditEmbedsTaskAndContract(t *testing.T) {
	out, err := BuildPrompt(Task{
		Action:         ActionEdit,
		Message:        "tighten the intro",
		CurrentContent: "# Old\nintro text",
		FilePath:       "docs/home.md",
	}, nil, nil)
	require.NoError(t, err)
	require.Contains(t, out, "tighten the intro")
	require.Contains(t, out, "docs/home.md")
	require.Contains(t, out, "intro text")
	require.Contains(t, out, "EXPLANATION:")
	require.Contains(t, out, "CONTENT:")
}

func TestBuildPromptChatOmitsReplyContract(t *testing.T) {
	out, err := BuildPrompt(Task{Action: ActionChat, Message: "what is this repo?"}, nil, nil)
	require.NoError(t, err)
	require.Contains(t, out, "what is this repo?")
	require.NotContains(t, out, "EXPLANATION:")
	require.NotContains(t, out, "CONTENT:")
}

func TestBuildPromptAnalysisListsCandidates(t *testing.T) {
	out, err := BuildPrompt(Task{Action: ActionAnalyzeCodebase, Message: "document the API"},
		[]string{"src/api.ts", "README.md"}, nil)
	require.NoError(t, err)
	require.Contains(t, out, "- src/api.ts")
	require.Contains(t, out, "- README.md")
	require.Contains(t, out, "REASONING:")
	require.Contains(t, out, "RELEVANT_FILES:")
	require.Contains(t, out, "CONFIDENCE:")
}

func TestBuildPromptDocumentationBundlesFiles(t *testing.T) {
	out, err := BuildPrompt(Task{Action: ActionProcessWithFiles, Message: "write setup docs"},
		nil, []FileContent{
			{Path: "cmd/main.go", Text: "package main"},
			{Path: "Makefile", Text: "build:\n\tgo build"},
		})
	require.NoError(t, err)
	require.Contains(t, out, "=== cmd/main.go ===")
	require.Contains(t, out, "=== Makefile ===")
	require.True(t, strings.Index(out, "cmd/main.go") < strings.Index(out, "Makefile"))
}

func TestBuildPromptUnknownAction(t *testing.T) {
	_, err := BuildPrompt(Task{Action: "delete_everything"}, nil, nil)
	require.Error(t, err)
}
