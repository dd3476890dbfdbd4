package config

const (
	defaultOutputDir         = "~/streams"
	defaultLogDir            = "~/.local/share/stride/logs"
	defaultStravaBaseURL     = "https://www.strava.com/api/v3"
	defaultStravaTokenPath   = "~/.config/stride/strava_token.json"
	defaultStravaTimeout     = 30
	defaultStravaPerPage     = 200
	defaultStravaDaysBack    = 365
	defaultStravaPauseMS     = 250
	defaultExportInterval    = 5
	defaultLLMProvider       = "openai"
	defaultOpenAIBaseURL     = "https://api.openai.com/v1"
	defaultDeepSeekBaseURL   = "https://api.deepseek.com"
	defaultOpenAIModel       = "gpt-4o"
	defaultDeepSeekModel     = "deepseek-chat"
	defaultLLMTimeoutSeconds = 60
	defaultGeminiBaseURL     = "https://generativelanguage.googleapis.com"
	defaultGeminiModel       = "gemini-1.5-flash"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Strava: Strava{
			BaseURL:        defaultStravaBaseURL,
			TokenPath:      defaultStravaTokenPath,
			TimeoutSeconds: defaultStravaTimeout,
			PerPage:        defaultStravaPerPage,
			DaysBack:       defaultStravaDaysBack,
			PauseMS:        defaultStravaPauseMS,
		},
		Export: Export{
			IntervalSeconds: defaultExportInterval,
		},
		StreamCache: StreamCache{
			Enabled: false,
			Path:    defaultStreamCachePath(),
		},
		LLM: LLM{
			Provider:       defaultLLMProvider,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Gemini: Gemini{
			BaseURL: defaultGeminiBaseURL,
			Model:   defaultGeminiModel,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
