package server

import (
	"net/http"

	"docrelay/internal/gateway/handler"
	"docrelay/internal/gateway/middleware"
)

// NewMux wires the HTTP surface and wraps it in the middleware stack.
func NewMux(h *handler.Handler, allowedOrigin string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.HandleHealth)

	mux.HandleFunc("POST /api/gitlab/connect", h.HandleConnect)
	mux.HandleFunc("POST /api/gitlab/disconnect", h.HandleDisconnect)
	mux.HandleFunc("GET /api/gitlab/files", h.HandleListFiles)
	mux.HandleFunc("GET /api/gitlab/files/{filePath...}", h.HandleGetFile)

	mux.HandleFunc("POST /api/ai/chat", h.HandleChat)

	mux.HandleFunc("/", handler.NotFound)

	return middleware.CORS(allowedOrigin,
		middleware.RequestID(
			middleware.Recover(mux)))
}
