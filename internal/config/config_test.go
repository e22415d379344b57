package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/veralabs/method-critic/internal/rating"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg := Load(t.TempDir())
	if cfg.EffectiveBaseURL() != rating.DefaultBaseURL {
		t.Errorf("base url = %q", cfg.EffectiveBaseURL())
	}
	if cfg.EffectiveModel() != rating.DefaultModel {
		t.Errorf("model = %q", cfg.EffectiveModel())
	}
	if cfg.EffectiveMaxTokens() != 0 || cfg.EffectiveTimeout() != 0 {
		t.Error("unset limits must report 0 (client default)")
	}
}

func TestLoadValid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `rating:
  base_url: http://example.test/v1/chat/completions
  model: custom-model
  api_key_env: METHOD_CRITIC_TEST_KEY
  max_tokens: 500
  timeout_seconds: 30
cache:
  path: /tmp/custom.db
`)
	t.Setenv("METHOD_CRITIC_TEST_KEY", "sekrit")

	cfg := Load(dir)
	if cfg.EffectiveBaseURL() != "http://example.test/v1/chat/completions" {
		t.Errorf("base url = %q", cfg.EffectiveBaseURL())
	}
	if cfg.EffectiveModel() != "custom-model" {
		t.Errorf("model = %q", cfg.EffectiveModel())
	}
	if cfg.EffectiveMaxTokens() != 500 {
		t.Errorf("max tokens = %d", cfg.EffectiveMaxTokens())
	}
	if cfg.EffectiveTimeout() != 30*time.Second {
		t.Errorf("timeout = %v", cfg.EffectiveTimeout())
	}
	if cfg.APIKey() != "sekrit" {
		t.Errorf("api key = %q", cfg.APIKey())
	}
	if cfg.Cache.Path != "/tmp/custom.db" {
		t.Errorf("cache path = %q", cfg.Cache.Path)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "rating: [not: a: mapping\n")

	cfg := Load(dir)
	if cfg.EffectiveModel() != rating.DefaultModel {
		t.Error("invalid YAML must fall back to defaults")
	}
}

func TestClientOptions(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "rating:\n  model: m1\n")

	opts := Load(dir).ClientOptions()
	if opts.Model != "m1" {
		t.Errorf("model = %q", opts.Model)
	}
	if opts.BaseURL != rating.DefaultBaseURL {
		t.Errorf("base url = %q", opts.BaseURL)
	}
}
