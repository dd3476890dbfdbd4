package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Credentials are checked where
// each client is constructed so commands that do not touch the API can run
// against an otherwise empty config.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStrava(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateStreamCache(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateStrava() error {
	if err := ensurePositiveMap(map[string]int{
		"strava.timeout_seconds": c.Strava.TimeoutSeconds,
		"strava.per_page":        c.Strava.PerPage,
		"strava.days_back":       c.Strava.DaysBack,
	}); err != nil {
		return err
	}
	if c.Strava.PerPage > 200 {
		return errors.New("strava.per_page must be at most 200")
	}
	if c.Strava.PauseMS < 0 {
		return errors.New("strava.pause_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.IntervalSeconds <= 0 {
		return errors.New("export.interval_seconds must be positive")
	}
	return nil
}

func (c *Config) validateStreamCache() error {
	if c.StreamCache.Enabled && strings.TrimSpace(c.StreamCache.Path) == "" {
		return errors.New("stream_cache.path must be set when stream_cache.enabled is true")
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case "openai", "deepseek", "gemini":
	default:
		return fmt.Errorf("llm.provider must be one of openai, deepseek, gemini (got %q)", c.LLM.Provider)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
