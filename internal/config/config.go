// README: Config loader with env defaults for HTTP, providers, AI, and logging settings.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ProvidersConfig struct {
	UberBaseURL string `mapstructure:"uber_base_url"`
	LyftBaseURL string `mapstructure:"lyft_base_url"`
}

type AIConfig struct {
	// Provider selects the recommendation backend: "gemini", "openai" or "none".
	// "none" skips the LLM call entirely, which makes the assistant fall back
	// to its deterministic option selection.
	Provider  string `mapstructure:"provider"`
	GeminiKey string `mapstructure:"gemini_key"`
	OpenAIKey string `mapstructure:"openai_key"`
}

type Config struct {
	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`
	Providers ProvidersConfig `mapstructure:"providers"`
	AI        AIConfig        `mapstructure:"ai"`
	Log       struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Load reads configuration from SMARTRIDE_* environment variables, with an
// optional config.yaml in the working directory supplying anything the
// environment does not set.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SMARTRIDE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("http.addr", ":3003")
	v.SetDefault("providers.uber_base_url", "http://localhost:3001")
	v.SetDefault("providers.lyft_base_url", "http://localhost:3001")
	v.SetDefault("ai.provider", "none")
	v.SetDefault("ai.gemini_key", "")
	v.SetDefault("ai.openai_key", "")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.AI.Provider {
	case "gemini":
		if cfg.AI.GeminiKey == "" {
			return Config{}, fmt.Errorf("ai.provider is gemini but SMARTRIDE_AI_GEMINI_KEY is empty")
		}
	case "openai":
		if cfg.AI.OpenAIKey == "" {
			return Config{}, fmt.Errorf("ai.provider is openai but SMARTRIDE_AI_OPENAI_KEY is empty")
		}
	case "none":
	default:
		return Config{}, fmt.Errorf("unknown ai.provider %q", cfg.AI.Provider)
	}

	return cfg, nil
}
