package gitlab

import (
	"fmt"
	"net/http"
)

// Kind classifies upstream failures into the categories the HTTP layer maps
// onto response statuses.
type Kind string

const (
	KindAuth      Kind = "authentication_failed"
	KindForbidden Kind = "access_denied"
	KindNotFound  Kind = "not_found"
	KindUpstream  Kind = "upstream_error"
	KindInternal  Kind = "internal_error"
)

// APIError carries the classified failure of one upstream call. Status is the
// upstream HTTP status when one was received, 0 otherwise.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gitlab: %s (upstream %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("gitlab: %s: %s", e.Kind, e.Message)
}

// HTTPStatus is the response status the gateway surfaces for this error.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		if e.Status >= 400 {
			return e.Status
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// classify maps one upstream status to an APIError. notFoundMsg differs per
// endpoint (repository/branch vs file).
func classify(status int, body, notFoundMsg string) *APIError {
	switch status {
	case http.StatusUnauthorized:
		return &APIError{Kind: KindAuth, Status: status, Message: "authentication failed, check your access token"}
	case http.StatusForbidden:
		return &APIError{Kind: KindForbidden, Status: status, Message: "access denied, token lacks permission"}
	case http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Status: status, Message: notFoundMsg}
	default:
		return &APIError{Kind: KindUpstream, Status: status, Message: body}
	}
}
