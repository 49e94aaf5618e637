package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIClient implements Client for OpenAI and OpenAI-compatible endpoints.
type OpenAIClient struct {
	llm    *openai.LLM
	config *Config
}

// NewOpenAIClient creates a client for the OpenAI API. A custom base URL from
// the config allows pointing at any OpenAI-compatible server.
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []openai.Option{openai.WithToken(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIClient{
		llm:    llm,
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithModel(modelName),
		llms.WithTemperature(defaultTemperature),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return text, nil
}

// GenerateJSON generates JSON content using the specified model tier
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithModel(modelName),
		llms.WithTemperature(defaultTemperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client. The OpenAI client holds no
// long-lived connections.
func (c *OpenAIClient) Close() error {
	return nil
}
