// Package handler maps HTTP requests onto the repo and chat services and
// shapes the JSON contract the frontend consumes.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"docrelay/internal/gateway/service/chat"
	"docrelay/internal/gitlab"
	"docrelay/internal/scan"
	"docrelay/internal/session"
)

// Handler carries the two services and the production flag that controls
// whether internal error detail is echoed to callers.
type Handler struct {
	repo       RepoService
	chat       ChatService
	production bool
}

func New(repo RepoService, chatSvc ChatService, production bool) *Handler {
	return &Handler{repo: repo, chat: chatSvc, production: production}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ok writes the success envelope.
func ok(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// fail writes the failure envelope. detail is dropped in production.
func (h *Handler) fail(w http.ResponseWriter, status int, message, detail string) {
	body := map[string]any{
		"success": false,
		"message": message,
	}
	if detail != "" && !h.production {
		body["detail"] = detail
	}
	writeJSON(w, status, body)
}

// failErr classifies a service error onto the response taxonomy.
func (h *Handler) failErr(w http.ResponseWriter, err error) {
	var apiErr *gitlab.APIError

	switch {
	case errors.Is(err, session.ErrValidation):
		h.fail(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, session.ErrNotConnected):
		h.fail(w, http.StatusBadRequest, "not connected to a repository", "")
	case errors.Is(err, chat.ErrNoFilesSelected):
		h.fail(w, http.StatusBadRequest, "no files selected", "")
	case errors.As(err, &apiErr):
		h.fail(w, apiErr.HTTPStatus(), apiErr.Message, "")
	case errors.Is(err, scan.ErrRootNotFound):
		log.Printf("handler: %v", err)
		h.fail(w, http.StatusInternalServerError, "codebase folder not found", "")
	case errors.Is(err, chat.ErrProcessFailed):
		log.Printf("handler: %v", err)
		h.fail(w, http.StatusInternalServerError, "failed to process AI request", err.Error())
	default:
		log.Printf("handler: unexpected error: %v", err)
		h.fail(w, http.StatusInternalServerError, "internal server error", err.Error())
	}
}

// NotFound is the JSON fallback for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
}
