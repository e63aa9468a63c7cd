package ai

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/moodroute/moodroute/internal/profile"
	chaterrors "github.com/moodroute/moodroute/server/internal/errors"
)

// Config holds the upstream model configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	ChatModel  string
	MaxRetries int
	Timeout    time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.openai.com/v1",
		APIKey:     "",
		ChatModel:  "gpt-4.1-mini",
		MaxRetries: 3,
		Timeout:    30 * time.Second,
	}
}

// ConfigFromProfile builds the provider configuration from the server profile.
func ConfigFromProfile(p *profile.Profile) *Config {
	cfg := DefaultConfig()
	cfg.APIKey = p.OpenAIAPIKey
	if p.OpenAIBaseURL != "" {
		cfg.BaseURL = p.OpenAIBaseURL
	}
	if p.OpenAIModel != "" {
		cfg.ChatModel = p.OpenAIModel
	}
	return cfg
}

// Provider drives chat completions against the upstream model.
type Provider struct {
	client *openai.Client
	config *Config
}

// NewProvider creates a new AI provider.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Apply defaults for unset values
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4.1-mini"
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	client := openai.NewClientWithConfig(clientConfig)

	return &Provider{
		client: client,
		config: cfg,
	}, nil
}

// Model returns the configured chat model name.
func (p *Provider) Model() string {
	return p.config.ChatModel
}

// IsConfigured reports whether an API key is present.
func (p *Provider) IsConfigured() bool {
	return p.config.APIKey != ""
}

// Chat performs a chat completion and returns the assistant text.
func (p *Provider) Chat(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	if !p.IsConfigured() {
		return "", chaterrors.ModelUnavailable("no API key configured")
	}

	var result string
	err := p.doWithRetry(ctx, func() error {
		req := openai.ChatCompletionRequest{
			Model:       p.config.ChatModel,
			Temperature: 0.7,
			MaxTokens:   650,
			Messages:    messages,
		}

		reqCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()

		resp, err := p.client.CreateChatCompletion(reqCtx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return chaterrors.ModelEmptyReply()
		}
		result = resp.Choices[0].Message.Content
		return nil
	})

	if err != nil {
		if ctx.Err() != nil {
			return "", chaterrors.ContextCanceled(ctx.Err())
		}
		return "", chaterrors.Wrap(err, chaterrors.ErrCodeModelUnavailable, "failed to complete chat")
	}

	return result, nil
}

// doWithRetry executes a function with exponential backoff retry.
func (p *Provider) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < p.config.MaxRetries-1 {
				waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				slog.Debug("chat request failed, retrying",
					"attempt", attempt+1,
					"wait_time", waitTime,
					"error", err)
				select {
				case <-time.After(waitTime):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return lastErr
}
