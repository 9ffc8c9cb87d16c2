package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"docrelay/internal/llmtool"
)

// HandleChat runs one documentation task through the orchestrator.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message        string   `json:"message"`
		CurrentContent string   `json:"currentContent"`
		FilePath       string   `json:"filePath"`
		Action         string   `json:"action"`
		SelectedFiles  []string `json:"selectedFiles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid json body", "")
		return
	}
	if strings.TrimSpace(in.Message) == "" {
		h.fail(w, http.StatusBadRequest, "message is required", "")
		return
	}
	action := llmtool.Action(in.Action)
	if !action.Valid() {
		h.fail(w, http.StatusBadRequest, "invalid action", "")
		return
	}

	res, err := h.chat.Process(r.Context(), llmtool.Task{
		Message:        in.Message,
		CurrentContent: in.CurrentContent,
		FilePath:       in.FilePath,
		Action:         action,
		SelectedFiles:  in.SelectedFiles,
	})
	if err != nil {
		h.failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    res,
	})
}
