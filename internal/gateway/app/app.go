// Package app assembles configuration, services and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log"

	"docrelay/internal/gateway/config"
	"docrelay/internal/gateway/handler"
	"docrelay/internal/gateway/server"
	chatsvc "docrelay/internal/gateway/service/chat"
	reposvc "docrelay/internal/gateway/service/repo"
	"docrelay/internal/gitlab"
	"docrelay/internal/llmclient"
	"docrelay/internal/safeio"
	"docrelay/internal/scan"
	"docrelay/internal/session"
)

type App struct {
	server *server.Server
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	policy, err := scan.LoadPolicy(cfg.ScanPolicyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan policy: %w", err)
	}

	// A missing codebase root is tolerated at startup; codebase-backed
	// actions fail per-request until the directory appears on a restart.
	codebaseFS, err := safeio.New(cfg.CodebaseRoot)
	if err != nil {
		log.Printf("codebase root %s unavailable: %v", cfg.CodebaseRoot, err)
		codebaseFS = nil
	}

	// Model credentials are not checked here; a bad or missing key surfaces
	// as a per-request chat failure while the GitLab routes keep serving.
	llm := llmclient.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	sess := session.New()
	gitlabClient := gitlab.New(sess)

	h := handler.New(
		reposvc.New(sess, gitlabClient),
		chatsvc.New(llm, policy, codebaseFS),
		cfg.Production(),
	)

	mux := server.NewMux(h, cfg.AllowedOrigin)
	return &App{server: server.New(cfg.Port, mux)}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
