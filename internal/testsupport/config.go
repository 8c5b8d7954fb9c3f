package testsupport

import (
	"path/filepath"
	"testing"

	"tubenotes/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.LLM.APIKey = "test"
	cfg.Embeddings.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithLanguages sets the subtitle language preference on the test config.
func WithLanguages(languages ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.YouTube.Languages = languages
	}
}

// WithEmbeddingsDisabled turns off the vector index on the test config.
func WithEmbeddingsDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Embeddings.Enabled = false
	}
}
