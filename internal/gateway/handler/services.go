package handler

import (
	"context"

	"docrelay/internal/gitlab"
	"docrelay/internal/llmtool"
	"docrelay/internal/session"
)

// RepoService is the connection and repository-browsing surface the
// handlers depend on.
type RepoService interface {
	Connect(repoURL, token string) (session.Record, error)
	Disconnect() error
	ListTree(ctx context.Context, path, ref string, recursive bool) (*gitlab.TreeListing, error)
	GetFile(ctx context.Context, filePath, ref string, lfs bool) (*gitlab.RawFile, error)
}

// ChatService runs one documentation task.
type ChatService interface {
	Process(ctx context.Context, task llmtool.Task) (*llmtool.TaskResult, error)
}
