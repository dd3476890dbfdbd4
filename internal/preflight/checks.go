package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"stride/internal/config"
	"stride/internal/services/gemini"
	"stride/internal/services/llm"
	"stride/internal/services/strava"
)

// healthChecker is the slice of a provider client the checks need.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CheckStrava verifies that Strava credentials are configured and the API
// accepts them, by fetching the authenticated athlete. A single attempt with
// a short timeout so a down API fails fast.
func CheckStrava(ctx context.Context, cfg *config.Config) Result {
	const name = "Strava API"

	tokens, err := strava.NewTokenManager(cfg)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("token state unavailable (%v)", err)}
	}
	if !tokens.HasCredentials() {
		return Result{Name: name, Detail: "credentials not configured (client id, secret, or refresh token missing)"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := strava.NewClient(cfg, tokens, strava.WithRetryMaxAttempts(1))
	athlete, err := client.Athlete(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeAPIError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("authenticated as %s", athlete.DisplayName())}
}

// CheckAnalysisLLM verifies that the configured analysis provider is
// reachable and the key is valid. It uses a 30-second timeout and a single
// attempt (no retries).
func CheckAnalysisLLM(ctx context.Context, cfg *config.Config) Result {
	const name = "Analysis LLM"

	provider := cfg.GetLLM().Provider
	var checker healthChecker
	switch provider {
	case "gemini":
		geminiCfg := cfg.GetGemini()
		if geminiCfg.APIKey == "" {
			return Result{Name: name, Detail: "gemini API key missing"}
		}
		checker = gemini.NewClient(geminiCfg)
	case "openai", "deepseek":
		resolved := cfg.GetLLM()
		if resolved.APIKey == "" {
			return Result{Name: name, Detail: fmt.Sprintf("%s API key missing", provider)}
		}
		checker = llm.NewClient(llm.Config{
			APIKey:         resolved.APIKey,
			BaseURL:        resolved.BaseURL,
			Model:          resolved.Model,
			TimeoutSeconds: resolved.TimeoutSeconds,
		}, llm.WithRetryMaxAttempts(1))
	default:
		return Result{Name: name, Detail: fmt.Sprintf("unknown provider %q", provider)}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := checker.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeAPIError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable", provider)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// summarizeAPIError produces a human-readable summary for API check failures.
func summarizeAPIError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (API unreachable)"
	}
	return err.Error()
}
