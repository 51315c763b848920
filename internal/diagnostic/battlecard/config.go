package battlecard

import (
	"time"

	"monpro-diagnostic/internal/common/config"
)

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	MaxTokens   int
	Temperature float64
}

// FromApp adapts the loaded application config. Zero values fall back
// to the same defaults the config loader applies.
func FromApp(llm config.LLMConfig) *Config {
	cfg := &Config{
		BaseURL:     llm.BaseURL,
		APIKey:      llm.APIKey,
		Model:       llm.Model,
		Timeout:     time.Duration(llm.Timeout) * time.Millisecond,
		MaxRetries:  llm.MaxRetries,
		MaxTokens:   llm.MaxTokens,
		Temperature: llm.Temperature,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1500
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	return cfg
}
