package preflight

import (
	"fmt"
	"strings"
	"time"

	"stride/internal/config"
	"stride/internal/services/strava"
	"stride/internal/streamcache"
)

// CheckAuthStateFromConfig reports the persisted Strava authorization state
// without touching the network.
func CheckAuthStateFromConfig(cfg *config.Config) Result {
	const name = "Strava authorization"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.Strava.ClientID) == "" || strings.TrimSpace(cfg.Strava.ClientSecret) == "" {
		return Result{Name: name, Detail: "Client credentials not configured"}
	}

	state, err := strava.NewFileTokenStore(cfg.Strava.TokenPath).Load()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("Token state unreadable (%v)", err)}
	}

	switch {
	case state.AccessToken != "" && time.Until(state.ExpiresAt) > 0:
		return Result{Name: name, Passed: true,
			Detail: fmt.Sprintf("Access token valid until %s", state.ExpiresAt.Local().Format("2006-01-02 15:04"))}
	case state.RefreshToken != "" || strings.TrimSpace(cfg.Strava.RefreshToken) != "":
		return Result{Name: name, Passed: true, Detail: "Refresh token on file"}
	default:
		return Result{Name: name, Detail: "Not linked (run the auth command with an authorization code)"}
	}
}

// CheckStreamCacheFromConfig reports the stream cache state from config and
// disk.
func CheckStreamCacheFromConfig(cfg *config.Config) Result {
	const name = "Stream cache"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if !cfg.StreamCache.Enabled {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	if strings.TrimSpace(cfg.StreamCache.Path) == "" {
		return Result{Name: name, Detail: "Missing path"}
	}

	cache := streamcache.NewCache(cfg.StreamCache.Path, nil)
	count := cache.Count()
	if count == 1 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("1 cached payload at %s", cfg.StreamCache.Path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d cached payloads at %s", count, cfg.StreamCache.Path)}
}
