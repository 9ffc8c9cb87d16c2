// Package session holds the process-lifetime GitLab connection record.
// It is constructed once at startup and handed to services by reference,
// never reached through a package global.
package session

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

var (
	// ErrNotConnected is returned by operations that need an active record.
	ErrNotConnected = errors.New("not connected")
	// ErrValidation wraps all connect-input rejections.
	ErrValidation = errors.New("validation failed")
)

const minTokenLength = 10

// Record is the active repository connection.
type Record struct {
	RepoURL string
	Token   string
}

// Session is the single shared mutable resource of the gateway. Handlers run
// on concurrent goroutines, so reads and writes go through an RWMutex.
type Session struct {
	mu  sync.RWMutex
	rec *Record
}

func New() *Session {
	return &Session{}
}

// Connect validates the pair and replaces the current record. A failed
// validation leaves any prior record untouched.
func (s *Session) Connect(rawURL, token string) (Record, error) {
	rawURL = strings.TrimSpace(rawURL)
	token = strings.TrimSpace(token)

	if rawURL == "" {
		return Record{}, fmt.Errorf("%w: repository URL is required", ErrValidation)
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Record{}, fmt.Errorf("%w: repository URL is not a valid URL", ErrValidation)
	}
	if u.Scheme != "https" {
		return Record{}, fmt.Errorf("%w: repository URL must use https", ErrValidation)
	}
	if !strings.Contains(strings.ToLower(u.Host), "gitlab") {
		return Record{}, fmt.Errorf("%w: repository URL does not look like a GitLab host", ErrValidation)
	}
	if token == "" {
		return Record{}, fmt.Errorf("%w: access token is required", ErrValidation)
	}
	if len(token) < minTokenLength {
		return Record{}, fmt.Errorf("%w: access token must be at least %d characters", ErrValidation, minTokenLength)
	}

	rec := Record{RepoURL: rawURL, Token: token}
	s.mu.Lock()
	s.rec = &rec
	s.mu.Unlock()
	return rec, nil
}

// Disconnect clears the record; it fails when nothing is connected.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return ErrNotConnected
	}
	s.rec = nil
	return nil
}

// Current returns a copy of the active record.
func (s *Session) Current() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec == nil {
		return Record{}, false
	}
	return *s.rec, true
}
