package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseDriver   string
	DatabaseURL      string
	RedisURL         string
	AIProvider       string
	AITimeout        time.Duration
	GeminiAPIKey     string
	GeminiTextModel  string
	GeminiImageModel string
	OpenAIAPIKey     string
	OpenAIModel      string
	MaxUploadMB      int
	ProgressCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ARTLINT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "ArtLint API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "artlint.db")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.timeout", "60s")
	v.SetDefault("gemini.text_model", "gemini-2.5-flash")
	v.SetDefault("gemini.image_model", "gemini-2.5-flash-image")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("max_upload_mb", 10)
	v.SetDefault("progress.cache_ttl", "5m")

	timeout, err := time.ParseDuration(v.GetString("ai.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ai timeout: %w", err)
	}

	ttl, err := time.ParseDuration(v.GetString("progress.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid progress cache ttl: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseDriver:   strings.ToLower(v.GetString("database.driver")),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		AIProvider:       strings.ToLower(v.GetString("ai.provider")),
		AITimeout:        timeout,
		GeminiAPIKey:     v.GetString("gemini.api_key"),
		GeminiTextModel:  v.GetString("gemini.text_model"),
		GeminiImageModel: v.GetString("gemini.image_model"),
		OpenAIAPIKey:     v.GetString("openai.api_key"),
		OpenAIModel:      v.GetString("openai.model"),
		MaxUploadMB:      v.GetInt("max_upload_mb"),
		ProgressCacheTTL: ttl,
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported database driver: %s", cfg.DatabaseDriver)
	}

	switch cfg.AIProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return Config{}, fmt.Errorf("gemini api key must be provided")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return Config{}, fmt.Errorf("openai api key must be provided")
		}
	default:
		return Config{}, fmt.Errorf("unsupported ai provider: %s", cfg.AIProvider)
	}

	if cfg.AITimeout <= 0 {
		cfg.AITimeout = 60 * time.Second
	}

	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}

	return cfg, nil
}
