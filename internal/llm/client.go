package llm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/issa-compass/assistant/internal/config"
)

// Client is the uniform call surface over the interchangeable text-generation
// providers. It takes a fully rendered prompt and returns the raw model text;
// callers own retry and sanitization policy.
type Client interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ErrNoProvider means no provider API key was found in the environment.
var ErrNoProvider = errors.New("no LLM API key configured")

// Detect resolves the provider once at startup from the configured API keys,
// in fixed priority order: Gemini, Groq, Anthropic, OpenAI. It returns the
// concrete adapter and the provider name for logging.
func Detect(ctx context.Context, cfg config.Config, logger *slog.Logger) (Client, string, error) {
	var (
		client Client
		name   string
		model  string
		err    error
	)

	switch {
	case cfg.GoogleAPIKey != "":
		client, err = NewGemini(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		name, model = "gemini", cfg.GeminiModel
	case cfg.GroqAPIKey != "":
		client, name, model = NewGroq(cfg.GroqAPIKey, cfg.GroqModel), "groq", cfg.GroqModel
	case cfg.AnthropicAPIKey != "":
		client, name, model = NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel), "anthropic", cfg.AnthropicModel
	case cfg.OpenAIAPIKey != "":
		client, name, model = NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel), "openai", cfg.OpenAIModel
	default:
		return nil, "", ErrNoProvider
	}
	if err != nil {
		return nil, "", err
	}

	logger.Info("llm provider selected", "provider", name, "model", model)
	return client, name, nil
}
