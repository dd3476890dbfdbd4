package main

import (
	"strings"
	"testing"

	"stride/internal/streamcache"
	"stride/internal/testsupport"
)

func TestCLICacheDisabled(t *testing.T) {
	cfg := newTestConfig(t)
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"cache", "show"}, configPath)
	if err != nil {
		t.Fatalf("cache show: %v", err)
	}
	requireContains(t, out, "Stream cache is disabled")
}

func TestCLICacheShowClearRemove(t *testing.T) {
	cfg := newTestConfig(t, testsupport.WithStreamCache())
	configPath := writeTestConfig(t, cfg)

	seed := streamcache.NewCache(cfg.StreamCache.Path, nil)
	if err := seed.Store(42, "time,heartrate", []byte(`[]`)); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	if err := seed.Store(77, "time,heartrate,altitude", []byte(`[{"type":"time"}]`)); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	out, _, err := runCLI(t, []string{"cache", "show"}, configPath)
	if err != nil {
		t.Fatalf("cache show: %v", err)
	}
	requireContains(t, out, "42")
	requireContains(t, out, "time,heartrate,altitude")

	out, _, err = runCLI(t, []string{"cache", "remove", "42"}, configPath)
	if err != nil {
		t.Fatalf("cache remove: %v", err)
	}
	requireContains(t, out, "Removed cached payloads for activity 42")

	_, _, err = runCLI(t, []string{"cache", "remove", "42"}, configPath)
	if err == nil || !strings.Contains(err.Error(), "not found in cache") {
		t.Fatalf("second remove error = %v, want not found", err)
	}

	out, _, err = runCLI(t, []string{"cache", "clear"}, configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 1 cached payload")

	out, _, err = runCLI(t, []string{"cache", "clear"}, configPath)
	if err != nil {
		t.Fatalf("cache clear again: %v", err)
	}
	requireContains(t, out, "Stream cache is already empty")
}

func TestCLICacheRemoveRejectsBadID(t *testing.T) {
	cfg := newTestConfig(t, testsupport.WithStreamCache())
	configPath := writeTestConfig(t, cfg)

	_, _, err := runCLI(t, []string{"cache", "remove", "not-a-number"}, configPath)
	if err == nil || !strings.Contains(err.Error(), "parse activity id") {
		t.Fatalf("remove error = %v, want parse failure", err)
	}
}
