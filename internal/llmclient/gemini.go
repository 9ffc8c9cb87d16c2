package llmclient

import (
	"context"
	"sync"
	"time"

	genai "google.golang.org/genai"
)

// callTimeout bounds every model call; the upstream API offers no
// application-level cancellation beyond this.
const callTimeout = 60 * time.Second

// GeminiClient is a thin wrapper around the official genai client. It only
// focuses on the API call itself; error shaping for the frontend happens in
// the orchestrating service.
//
// The underlying genai client is built lazily on first use: missing or bad
// credentials must surface as a per-request failure, never keep the gateway
// from starting.
type GeminiClient struct {
	apiKey string
	model  string

	mu  sync.Mutex
	cli *genai.Client
}

// NewGeminiClient builds a client for the given model. If apiKey is empty
// the genai SDK falls back to its environment lookup.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiClient{apiKey: apiKey, model: model}
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

// client initializes the genai backend on first call and caches it on
// success; a failed init is retried on the next call.
func (g *GeminiClient) client(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cli != nil {
		return g.cli, nil
	}
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if g.apiKey != "" {
		cfg.APIKey = g.apiKey
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	g.cli = cli
	return cli, nil
}

// GenerateText sends the prompt as a single user turn and returns the first
// candidate's text.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	cli, err := g.client(ctx)
	if err != nil {
		return "", err
	}

	resp, err := cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
