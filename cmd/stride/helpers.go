package main

import (
	"fmt"
	"time"

	"stride/internal/activity"
	"stride/internal/config"
	"stride/internal/services/strava"
)

func newStravaClient(cfg *config.Config) (*strava.Client, error) {
	tokens, err := strava.NewTokenManager(cfg)
	if err != nil {
		return nil, err
	}
	return strava.NewClient(cfg, tokens), nil
}

// listWindow returns the lower time bound for activity listings. A zero
// daysBack falls back to the configured window.
func listWindow(cfg *config.Config, daysBack int) time.Time {
	if daysBack <= 0 {
		daysBack = cfg.Strava.DaysBack
	}
	if daysBack <= 0 {
		return time.Time{}
	}
	return time.Now().AddDate(0, 0, -daysBack)
}

func classLabel(name, sportType string) string {
	class, err := activity.Classify(name, sportType)
	if err != nil {
		return "-"
	}
	return class.DisplayName()
}

func formatDistance(meters *float64) string {
	if meters == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f km", *meters/1000)
}

func formatSeconds(seconds *int64) string {
	if seconds == nil {
		return "-"
	}
	total := *seconds
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

func formatStartDate(value string) string {
	if value == "" {
		return "-"
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return parsed.Format("2006-01-02 15:04")
}

func formatHeartRate(bpm *float64) string {
	if bpm == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f", *bpm)
}
