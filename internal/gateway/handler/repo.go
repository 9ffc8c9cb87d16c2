package handler

import (
	"encoding/json"
	"net/http"
	"strings"
)

// HandleConnect stores new repository credentials.
func (h *Handler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RepoURL     string `json:"repoUrl"`
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid json body", "")
		return
	}
	rec, err := h.repo.Connect(in.RepoURL, in.AccessToken)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, "connected to repository", map[string]any{
		"repoUrl":   rec.RepoURL,
		"connected": true,
		"timestamp": timestamp(),
	})
}

// HandleDisconnect clears the stored credentials.
func (h *Handler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Disconnect(); err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, "disconnected from repository", map[string]any{
		"connected": false,
		"timestamp": timestamp(),
	})
}

// HandleListFiles lists the repository tree at ?path on ?ref.
func (h *Handler) HandleListFiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	recursive := strings.EqualFold(q.Get("recursive"), "true")

	listing, err := h.repo.ListTree(r.Context(), q.Get("path"), q.Get("ref"), recursive)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, "repository files retrieved", map[string]any{
		"repoUrl":   listing.RepoURL,
		"projectId": listing.ProjectID,
		"ref":       listing.Ref,
		"path":      listing.Path,
		"files":     listing.Files,
		"timestamp": timestamp(),
	})
}

// HandleGetFile fetches one raw file. PathValue already percent-decodes
// the wildcard, so no further unescaping here.
func (h *Handler) HandleGetFile(w http.ResponseWriter, r *http.Request) {
	filePath := r.PathValue("filePath")
	if strings.TrimSpace(filePath) == "" {
		h.fail(w, http.StatusBadRequest, "file path is required", "")
		return
	}
	q := r.URL.Query()
	lfs := strings.EqualFold(q.Get("lfs"), "true")

	file, err := h.repo.GetFile(r.Context(), filePath, q.Get("ref"), lfs)
	if err != nil {
		h.failErr(w, err)
		return
	}
	ok(w, "file content retrieved", map[string]any{
		"filePath":  file.FilePath,
		"ref":       file.Ref,
		"content":   file.Content,
		"size":      file.Size,
		"timestamp": timestamp(),
	})
}
