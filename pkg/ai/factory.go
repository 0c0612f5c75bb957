package ai

import (
	"fmt"

	"github.com/rs/zerolog"
)

// FactoryConfig selects and configures a Provider implementation.
type FactoryConfig struct {
	Provider         string
	GeminiAPIKey     string
	GeminiTextModel  string
	GeminiImageModel string
	OpenAIAPIKey     string
	OpenAIModel      string
	Logger           zerolog.Logger
}

// NewProvider constructs the Provider named by cfg.Provider.
func NewProvider(cfg FactoryConfig) (Provider, error) {
	switch cfg.Provider {
	case "gemini", "":
		return NewGeminiProvider(GeminiConfig{
			APIKey:     cfg.GeminiAPIKey,
			TextModel:  cfg.GeminiTextModel,
			ImageModel: cfg.GeminiImageModel,
			Logger:     cfg.Logger,
		})
	case "openai":
		return NewOpenAIProvider(OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: cfg.Logger,
		})
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.Provider)
	}
}
