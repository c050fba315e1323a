package testsupport

import (
	"path/filepath"
	"testing"

	"rewindtrack/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Show.Name = "Rewind"
	cfgVal.Show.Slug = "rewind"
	cfgVal.Show.Subreddits = []string{"television"}
	cfgVal.Show.QueryTerms = []string{"Rewind"}
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.OutDir = filepath.Join(base, "out")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithShow overrides the tracked show's name, slug, and query terms.
func WithShow(name, slug string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Show.Name = name
		b.cfg.Show.Slug = slug
		b.cfg.Show.QueryTerms = []string{name}
	}
}

// WithSubreddits overrides the searched subreddits on the test config.
func WithSubreddits(subreddits ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Show.Subreddits = subreddits
	}
}

// WithBaseURL points the test config at a stub search endpoint.
func WithBaseURL(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Search.BaseURL = baseURL
	}
}
