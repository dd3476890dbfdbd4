package preflight

import (
	"context"
	"path/filepath"
	"strings"

	"stride/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Directory checks always run; the stream cache directory is only checked
// when caching is enabled. The API checks dial out, so RunAll can take a
// few seconds against unreachable endpoints.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := directoryChecks(cfg)
	results = append(results, CheckStrava(ctx, cfg))
	results = append(results, CheckAnalysisLLM(ctx, cfg))

	return results
}

// RunOffline executes only the checks that never leave the host.
func RunOffline(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return directoryChecks(cfg)
}

func directoryChecks(cfg *config.Config) []Result {
	results := []Result{
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if cfg.StreamCache.Enabled && strings.TrimSpace(cfg.StreamCache.Path) != "" {
		results = append(results, CheckDirectoryAccess("Stream cache directory", filepath.Dir(cfg.StreamCache.Path)))
	}
	return results
}
