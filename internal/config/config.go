package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DatabaseURL string
	LogLevel    string

	NatsURL   string
	NatsToken string

	GoogleAPIKey    string
	GroqAPIKey      string
	AnthropicAPIKey string
	OpenAIAPIKey    string

	GeminiModel    string
	GroqModel      string
	AnthropicModel string
	OpenAIModel    string

	ReplyMaxTokens  int
	EditorMaxTokens int
}

func Load() Config {
	return Config{
		Port:        envInt("PORT", 8600),
		DatabaseURL: envStr("DATABASE_URL", ""),
		LogLevel:    envStr("LOG_LEVEL", "info"),

		NatsURL:   envStr("NATS_URL", ""),
		NatsToken: envStr("NATS_TOKEN", ""),

		GoogleAPIKey:    envStr("GOOGLE_API_KEY", ""),
		GroqAPIKey:      envStr("GROQ_API_KEY", ""),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),

		GeminiModel:    envStr("GEMINI_MODEL", "gemini-2.0-flash"),
		GroqModel:      envStr("GROQ_MODEL", "llama-3.1-70b-versatile"),
		AnthropicModel: envStr("ANTHROPIC_MODEL", "claude-3-sonnet-20240229"),
		OpenAIModel:    envStr("OPENAI_MODEL", "gpt-4o-mini"),

		ReplyMaxTokens:  envInt("REPLY_MAX_TOKENS", 220),
		EditorMaxTokens: envInt("EDITOR_MAX_TOKENS", 4096),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
