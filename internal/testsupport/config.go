package testsupport

import (
	"path/filepath"
	"testing"

	"stride/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Credentials are filled with dummies so environment fallbacks never apply,
// and the request pause is zeroed to keep tests fast.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "streams")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Strava.ClientID = "test-client"
	cfgVal.Strava.ClientSecret = "test-secret"
	cfgVal.Strava.RefreshToken = "test-refresh"
	cfgVal.Strava.TokenPath = filepath.Join(base, "strava_token.json")
	cfgVal.Strava.PauseMS = 0
	cfgVal.StreamCache.Path = filepath.Join(base, "streams_cache.json")
	cfgVal.LLM.APIKey = "test-key"

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStravaBaseURL points the Strava client at a test server.
func WithStravaBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Strava.BaseURL = url
	}
}

// WithLLMBaseURL points the configured analysis provider at a test server.
func WithLLMBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.BaseURL = url
	}
}

// WithStreamCache enables the stream cache on the test config.
func WithStreamCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.StreamCache.Enabled = true
	}
}

// WithLinkedAccount seeds a valid token state at the config's token path so
// client calls never hit the refresh grant.
func WithLinkedAccount() ConfigOption {
	return func(b *configBuilder) {
		SeedToken(b.t, b.cfg.Strava.TokenPath)
	}
}
