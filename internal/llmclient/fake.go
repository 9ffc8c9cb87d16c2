package llmclient

import "context"

// FakeClient returns canned replies for offline use and tests.
type FakeClient struct {
	Reply string
	Err   error
	// Prompts records every prompt received, in order.
	Prompts []string
}

func (f *FakeClient) Name() string { return "FakeLLM" }

func (f *FakeClient) GenerateText(_ context.Context, prompt string) (string, error) {
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}
