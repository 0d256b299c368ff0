package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter",
	// "mock" or "" (disabled; question banks only).
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with no provider selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// ConfigFromEnv builds a Config from LEARNPATH_* environment variables on
// top of DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	vars := map[string]*string{
		"LEARNPATH_LLM_PROVIDER":       &cfg.Provider,
		"LEARNPATH_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"LEARNPATH_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"LEARNPATH_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"LEARNPATH_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"LEARNPATH_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"LEARNPATH_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"LEARNPATH_GEMINI_MODEL":       &cfg.Gemini.Model,
		"LEARNPATH_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"LEARNPATH_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	}
	for name, dst := range vars {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("LEARNPATH_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// DiscoverConfig probes the vendors' standard API key variables when no
// provider was configured explicitly. Returns false if none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	missing := func(name string) error {
		return fmt.Errorf("LEARNPATH_%s_API_KEY is required for the %s provider", name, c.Provider)
	}
	switch c.Provider {
	case "", "mock":
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return missing("ANTHROPIC")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return missing("OPENAI")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return missing("GEMINI")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return missing("OPENROUTER")
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
