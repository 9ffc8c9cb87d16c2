package middleware

import (
	"encoding/json"
	"log"
	"net/http"
)

// Recover converts panics into a JSON 500 instead of dropping the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s (request %s): %v",
					r.Method, r.URL.Path, RequestIDFrom(r.Context()), rec)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "Internal Server Error",
					"message": "something went wrong",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
