package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/talent-ranker/internal/llm"
)

// buildClient constructs the LLM client for a command, or returns nil when no
// API key is available. A nil client is valid everywhere: criteria generation
// falls back to pattern extraction and re-ranking degrades to lexical-only
// scoring.
func buildClient(ctx context.Context, provider, apiKey, baseURL string) (llm.Client, error) {
	cfg := llm.ConfigForProvider(llm.Provider(provider))
	cfg.BaseURL = baseURL

	if apiKey == "" {
		apiKey = apiKeyFromEnv(cfg.Provider)
	}
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "Warning: no API key configured, running without contextual analysis\n")
		return nil, nil
	}

	client, err := llm.NewClient(ctx, cfg, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

func apiKeyFromEnv(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}
