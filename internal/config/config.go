package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/veralabs/method-critic/internal/rating"
)

// FileName is the per-repository configuration dotfile.
const FileName = ".methodcriticrc"

// Config holds user-overridable settings, loaded from .methodcriticrc in the
// analyzed repository's root.
type Config struct {
	Rating RatingConfig `yaml:"rating"`
	Cache  CacheConfig  `yaml:"cache"`
}

// RatingConfig holds rating-endpoint settings.
type RatingConfig struct {
	// BaseURL is the OpenAI-compatible chat-completions endpoint.
	BaseURL string `yaml:"base_url"`

	// Model is the model name sent with each request.
	Model string `yaml:"model"`

	// APIKeyEnv names the environment variable holding the bearer token.
	// Empty means no auth header.
	APIKeyEnv string `yaml:"api_key_env"`

	// MaxTokens caps the completion length. Default: client default.
	MaxTokens *int `yaml:"max_tokens"`

	// TimeoutSeconds bounds each rating request. Default: 120.
	TimeoutSeconds *int `yaml:"timeout_seconds"`
}

// CacheConfig holds verdict-cache settings.
type CacheConfig struct {
	// Path overrides the default database location
	// (~/.cache/method-critic/method-critic.db).
	Path string `yaml:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Load reads .methodcriticrc from the given directory.
// Returns the default config if the file is missing or invalid.
func Load(dir string) *Config {
	cfg := DefaultConfig()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg // file not found or unreadable, use defaults
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig() // invalid YAML, use defaults
	}

	return cfg
}

// EffectiveBaseURL returns the configured endpoint or the client default.
func (c *Config) EffectiveBaseURL() string {
	if c.Rating.BaseURL != "" {
		return c.Rating.BaseURL
	}
	return rating.DefaultBaseURL
}

// EffectiveModel returns the configured model or the client default.
func (c *Config) EffectiveModel() string {
	if c.Rating.Model != "" {
		return c.Rating.Model
	}
	return rating.DefaultModel
}

// EffectiveMaxTokens returns the configured completion cap, or 0 for the
// client default.
func (c *Config) EffectiveMaxTokens() int {
	if c.Rating.MaxTokens != nil {
		return *c.Rating.MaxTokens
	}
	return 0
}

// EffectiveTimeout returns the configured request timeout, or 0 for the
// client default.
func (c *Config) EffectiveTimeout() time.Duration {
	if c.Rating.TimeoutSeconds != nil {
		return time.Duration(*c.Rating.TimeoutSeconds) * time.Second
	}
	return 0
}

// APIKey resolves the bearer token from the configured environment variable.
func (c *Config) APIKey() string {
	if c.Rating.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Rating.APIKeyEnv)
}

// ClientOptions assembles rating client options from the config.
func (c *Config) ClientOptions() rating.Options {
	return rating.Options{
		BaseURL:   c.EffectiveBaseURL(),
		Model:     c.EffectiveModel(),
		APIKey:    c.APIKey(),
		MaxTokens: c.EffectiveMaxTokens(),
		Timeout:   c.EffectiveTimeout(),
	}
}
