package testsupport

import (
	"testing"
	"time"

	"stride/internal/services/strava"
)

// SeedToken writes a token state with a comfortably valid access token so
// client calls never hit the refresh endpoint.
func SeedToken(t testing.TB, path string) {
	t.Helper()

	state := strava.TokenState{
		AccessToken:  "seeded-token",
		RefreshToken: "seeded-refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := strava.NewFileTokenStore(path).Save(state); err != nil {
		t.Fatalf("seed token state: %v", err)
	}
}
