package llm

import (
	"context"
	"os"

	"github.com/Tahsine/2giants-cli/internal/config"
	"github.com/Tahsine/2giants-cli/internal/logging"
)

// ResolveAPIKey checks the environment for a Gemini credential.
// Priority: GOOGLE_API_KEY > GEMINI_API_KEY.
func ResolveAPIKey() (string, error) {
	for _, envVar := range []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"} {
		if key := os.Getenv(envVar); key != "" {
			logging.BootDebug("API key resolved from %s", envVar)
			return key, nil
		}
	}
	return "", ErrMissingAPIKey
}

// apiKey returns the key carried by the config, falling back to the
// environment when the config layer did not resolve one.
func apiKey(cfg *config.Config) (string, error) {
	if cfg.LLM.APIKey != "" {
		return cfg.LLM.APIKey, nil
	}
	return ResolveAPIKey()
}

// NewRouterClient creates the low-temperature client used for intent
// classification.
func NewRouterClient(ctx context.Context, cfg *config.Config) (Client, error) {
	key, err := apiKey(cfg)
	if err != nil {
		return nil, err
	}
	return NewGeminiClient(ctx, GeminiConfig{
		APIKey:      key,
		Model:       cfg.LLM.RouterModel,
		Temperature: cfg.LLM.RouterTemperature,
	})
}

// NewChatClient creates the client used for reply generation.
func NewChatClient(ctx context.Context, cfg *config.Config) (Client, error) {
	key, err := apiKey(cfg)
	if err != nil {
		return nil, err
	}
	return NewGeminiClient(ctx, GeminiConfig{
		APIKey:      key,
		Model:       cfg.LLM.ChatModel,
		Temperature: cfg.LLM.ChatTemperature,
	})
}
