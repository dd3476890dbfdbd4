package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Strava contains credentials and connection settings for the Strava API.
type Strava struct {
	ClientID       string `toml:"client_id"`
	ClientSecret   string `toml:"client_secret"`
	RefreshToken   string `toml:"refresh_token"`
	BaseURL        string `toml:"base_url"`
	TokenPath      string `toml:"token_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	PerPage        int    `toml:"per_page"`
	DaysBack       int    `toml:"days_back"`
	PauseMS        int    `toml:"pause_ms"`
}

// Export contains settings for the stream compaction pass.
type Export struct {
	IntervalSeconds int `toml:"interval_seconds"`
}

// StreamCache contains configuration for the raw stream payload cache.
type StreamCache struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: ~/.cache/stride/streams_cache.json
}

// LLM contains connection settings for the chat-completion provider used by
// the analyze command.
type LLM struct {
	Provider       string `toml:"provider"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Gemini contains connection settings for the Gemini provider.
type Gemini struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Stride.
//
// Configuration sections by subsystem:
//   - Paths: output and log directories
//   - Strava: API credentials, token state location, listing window
//   - Export: sampling interval for stream compaction
//   - StreamCache: raw stream payload cache
//   - LLM: chat-completion provider for activity analysis
//   - Gemini: Gemini-specific provider settings
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Strava      Strava      `toml:"strava"`
	Export      Export      `toml:"export"`
	StreamCache StreamCache `toml:"stream_cache"`
	LLM         LLM         `toml:"llm"`
	Gemini      Gemini      `toml:"gemini"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/stride/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("stride.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories commands rely on.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.StreamCache.Enabled && strings.TrimSpace(c.StreamCache.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.StreamCache.Path), 0o755); err != nil {
			return fmt.Errorf("create stream cache directory %q: %w", filepath.Dir(c.StreamCache.Path), err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultStreamCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "stride", "streams_cache.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/stride/streams_cache.json"
	}
	return filepath.Join(home, ".cache", "stride", "streams_cache.json")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains resolved chat-completion provider settings.
type LLMConfig struct {
	Provider       string
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// GetLLM returns the chat-completion provider settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider:       strings.TrimSpace(c.LLM.Provider),
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
}

// GetLLMFor returns chat-completion settings for a specific provider. When the
// requested provider matches the configured one the configured values apply;
// otherwise the provider's defaults and environment API key are used.
func (c *Config) GetLLMFor(provider string) LLMConfig {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" || provider == c.LLM.Provider {
		resolved := c.GetLLM()
		if provider != "" {
			resolved.Provider = provider
		}
		return resolved
	}
	resolved := LLMConfig{Provider: provider, TimeoutSeconds: c.LLM.TimeoutSeconds}
	switch provider {
	case "deepseek":
		resolved.APIKey = strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY"))
		resolved.BaseURL = defaultDeepSeekBaseURL
		resolved.Model = defaultDeepSeekModel
	default:
		resolved.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		resolved.BaseURL = defaultOpenAIBaseURL
		resolved.Model = defaultOpenAIModel
	}
	return resolved
}

// GeminiConfig contains resolved Gemini provider settings.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// GetGemini returns the Gemini provider settings.
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:  strings.TrimSpace(c.Gemini.APIKey),
		BaseURL: strings.TrimSpace(c.Gemini.BaseURL),
		Model:   strings.TrimSpace(c.Gemini.Model),
	}
}
