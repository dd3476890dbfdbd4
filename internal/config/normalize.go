package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeStrava(); err != nil {
		return err
	}
	c.normalizeExport()
	if err := c.normalizeStreamCache(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeGemini()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStrava() error {
	if c.Strava.ClientID == "" {
		if value, ok := os.LookupEnv("STRAVA_CLIENT_ID"); ok {
			c.Strava.ClientID = strings.TrimSpace(value)
		}
	}
	if c.Strava.ClientSecret == "" {
		if value, ok := os.LookupEnv("STRAVA_CLIENT_SECRET"); ok {
			c.Strava.ClientSecret = strings.TrimSpace(value)
		}
	}
	if c.Strava.RefreshToken == "" {
		if value, ok := os.LookupEnv("STRAVA_REFRESH_TOKEN"); ok {
			c.Strava.RefreshToken = strings.TrimSpace(value)
		}
	}
	c.Strava.ClientID = strings.TrimSpace(c.Strava.ClientID)
	c.Strava.ClientSecret = strings.TrimSpace(c.Strava.ClientSecret)
	c.Strava.RefreshToken = strings.TrimSpace(c.Strava.RefreshToken)
	c.Strava.BaseURL = strings.TrimSpace(c.Strava.BaseURL)
	if c.Strava.BaseURL == "" {
		c.Strava.BaseURL = defaultStravaBaseURL
	}
	c.Strava.BaseURL = strings.TrimRight(c.Strava.BaseURL, "/")
	if strings.TrimSpace(c.Strava.TokenPath) == "" {
		c.Strava.TokenPath = defaultStravaTokenPath
	}
	var err error
	if c.Strava.TokenPath, err = expandPath(c.Strava.TokenPath); err != nil {
		return fmt.Errorf("strava.token_path: %w", err)
	}
	if c.Strava.TimeoutSeconds <= 0 {
		c.Strava.TimeoutSeconds = defaultStravaTimeout
	}
	if c.Strava.PerPage <= 0 {
		c.Strava.PerPage = defaultStravaPerPage
	}
	if c.Strava.DaysBack <= 0 {
		c.Strava.DaysBack = defaultStravaDaysBack
	}
	if c.Strava.PauseMS < 0 {
		c.Strava.PauseMS = defaultStravaPauseMS
	}
	return nil
}

func (c *Config) normalizeExport() {
	if c.Export.IntervalSeconds <= 0 {
		c.Export.IntervalSeconds = defaultExportInterval
	}
}

func (c *Config) normalizeStreamCache() error {
	var err error
	if strings.TrimSpace(c.StreamCache.Path) == "" {
		c.StreamCache.Path = defaultStreamCachePath()
	}
	if c.StreamCache.Path, err = expandPath(c.StreamCache.Path); err != nil {
		return fmt.Errorf("stream_cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultLLMProvider
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "deepseek":
			if value, ok := os.LookupEnv("DEEPSEEK_API_KEY"); ok {
				c.LLM.APIKey = strings.TrimSpace(value)
			}
		default:
			if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
				c.LLM.APIKey = strings.TrimSpace(value)
			}
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		switch c.LLM.Provider {
		case "deepseek":
			c.LLM.BaseURL = defaultDeepSeekBaseURL
		default:
			c.LLM.BaseURL = defaultOpenAIBaseURL
		}
	}
	c.LLM.BaseURL = strings.TrimRight(c.LLM.BaseURL, "/")
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case "deepseek":
			c.LLM.Model = defaultDeepSeekModel
		default:
			c.LLM.Model = defaultOpenAIModel
		}
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeGemini() {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if c.Gemini.APIKey == "" {
		if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		}
	}
	c.Gemini.BaseURL = strings.TrimSpace(c.Gemini.BaseURL)
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = defaultGeminiBaseURL
	}
	c.Gemini.BaseURL = strings.TrimRight(c.Gemini.BaseURL, "/")
	c.Gemini.Model = strings.TrimSpace(c.Gemini.Model)
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaultGeminiModel
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
