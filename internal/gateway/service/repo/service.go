// Package repo fronts the session and the GitLab client for the connection
// and repository-browsing endpoints.
package repo

import (
	"context"
	"log"
	"time"

	"docrelay/internal/gitlab"
	"docrelay/internal/session"
)

const probeTimeout = 5 * time.Second

// Service owns the session lifecycle and delegates repository reads.
type Service struct {
	sess   *session.Session
	client *gitlab.Client
}

func New(sess *session.Session, client *gitlab.Client) *Service {
	return &Service{sess: sess, client: client}
}

// Connect validates and stores the credentials, then fires a background
// probe against the upstream API. The probe outcome is logged only; it never
// affects the stored record or the response.
func (s *Service) Connect(repoURL, token string) (session.Record, error) {
	rec, err := s.sess.Connect(repoURL, token)
	if err != nil {
		return session.Record{}, err
	}
	s.client.ResetCache()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		if probeErr := s.client.Probe(ctx); probeErr != nil {
			log.Printf("repo: connect probe failed for %s: %v", rec.RepoURL, probeErr)
			return
		}
		log.Printf("repo: connect probe ok for %s", rec.RepoURL)
	}()

	return rec, nil
}

// Disconnect clears the record and drops cached file contents.
func (s *Service) Disconnect() error {
	if err := s.sess.Disconnect(); err != nil {
		return err
	}
	s.client.ResetCache()
	return nil
}

// ListTree proxies the tree-listing call.
func (s *Service) ListTree(ctx context.Context, path, ref string, recursive bool) (*gitlab.TreeListing, error) {
	return s.client.ListTree(ctx, path, ref, recursive)
}

// GetFile proxies the raw-file call.
func (s *Service) GetFile(ctx context.Context, filePath, ref string, lfs bool) (*gitlab.RawFile, error) {
	return s.client.RawFile(ctx, filePath, ref, lfs)
}
