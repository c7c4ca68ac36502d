package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported classifier backends
const (
	BackendHuggingFace = "huggingface"
	BackendGemini      = "gemini"
	BackendOpenAI      = "openai"
)

var defaultModels = map[string]string{
	BackendHuggingFace: "facebook/bart-large-mnli",
	BackendGemini:      "gemini-2.5-flash",
	BackendOpenAI:      "gpt-4o-mini",
}

var apiKeyVars = map[string]string{
	BackendHuggingFace: "hf_api_token",
	BackendGemini:      "gemini_api_key",
	BackendOpenAI:      "openai_api_key",
}

// Config holds the server configuration
type Config struct {
	Port       string
	LogLevel   string
	GinMode    string
	LogoPath   string
	Classifier ClassifierConfig
}

// ClassifierConfig holds configuration for the zero-shot classifier backend
type ClassifierConfig struct {
	Backend     string
	Model       string
	BaseURL     string // Optional, overrides the backend endpoint
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
}

// LoadDotEnv loads a .env file from the current directory, then from the
// project root when started from cmd/<tool>/.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}
}

// Load resolves the configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("logo_path", "logotr.png")
	v.SetDefault("classifier_backend", BackendHuggingFace)
	v.SetDefault("classifier_model", "")
	v.SetDefault("classifier_base_url", "")
	v.SetDefault("classifier_timeout", 120*time.Second)
	v.SetDefault("classifier_max_attempts", 3)
	for _, key := range apiKeyVars {
		v.SetDefault(key, "")
	}
	v.AutomaticEnv()

	backend := strings.ToLower(strings.TrimSpace(v.GetString("classifier_backend")))
	keyVar, ok := apiKeyVars[backend]
	if !ok {
		return nil, fmt.Errorf("unknown classifier backend: %s", backend)
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log_level"),
		GinMode:  v.GetString("gin_mode"),
		LogoPath: v.GetString("logo_path"),
		Classifier: ClassifierConfig{
			Backend:     backend,
			Model:       v.GetString("classifier_model"),
			BaseURL:     v.GetString("classifier_base_url"),
			APIKey:      v.GetString(keyVar),
			Timeout:     v.GetDuration("classifier_timeout"),
			MaxAttempts: v.GetInt("classifier_max_attempts"),
		},
	}
	if cfg.Classifier.Model == "" {
		cfg.Classifier.Model = defaultModels[backend]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.LogoPath == "" {
		return fmt.Errorf("LOGO_PATH must not be empty")
	}
	if c.Classifier.Timeout <= 0 {
		return fmt.Errorf("CLASSIFIER_TIMEOUT must be positive, got %s", c.Classifier.Timeout)
	}
	if c.Classifier.MaxAttempts < 1 {
		return fmt.Errorf("CLASSIFIER_MAX_ATTEMPTS must be at least 1, got %d", c.Classifier.MaxAttempts)
	}
	return nil
}
