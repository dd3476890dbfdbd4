package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stride/internal/logging"
	"stride/internal/streamcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the stream payload cache",
	}

	cacheCmd.AddCommand(newCacheShowCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))

	return cacheCmd
}

func newCacheShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cached stream payloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, warn, err := openStreamCache(ctx)
			if warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			if err != nil || cache == nil {
				return err
			}

			entries := cache.List()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cached payloads: none")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				cached := "unknown"
				if !entry.CachedAt.IsZero() {
					cached = entry.CachedAt.Local().Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{
					strconv.FormatInt(entry.ActivityID, 10),
					entry.Fingerprint,
					humanBytes(int64(len(entry.Payload))),
					cached,
				})
			}
			table := renderTable(
				[]string{"Activity", "Channels", "Size", "Cached"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
			)
			fmt.Fprintln(out, table)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, warn, err := openStreamCache(ctx)
			if warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			if err != nil || cache == nil {
				return err
			}

			count := cache.Count()
			if count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Stream cache is already empty")
				return nil
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			if count == 1 {
				fmt.Fprintln(cmd.OutOrStdout(), "Removed 1 cached payload")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached payloads\n", count)
			return nil
		},
	}
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <activity-id>",
		Short: "Remove the cached payloads for one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse activity id %q: %w", args[0], err)
			}

			cache, warn, err := openStreamCache(ctx)
			if warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			if err != nil || cache == nil {
				return err
			}

			if err := cache.Remove(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed cached payloads for activity %d\n", id)
			return nil
		},
	}
}

// openStreamCache opens the configured cache. The warn string is a user
// message for a disabled or unconfigured cache; the cache is nil in that case.
func openStreamCache(ctx *commandContext) (*streamcache.Cache, string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	if cfg == nil || !cfg.StreamCache.Enabled {
		return nil, "Stream cache is disabled (set enabled = true under [stream_cache] in config.toml)", nil
	}
	if strings.TrimSpace(cfg.StreamCache.Path) == "" {
		return nil, "Stream cache path is not configured", nil
	}
	logger, err := logging.New(logging.Options{Level: "info", Format: "console"})
	if err != nil {
		return nil, "", fmt.Errorf("init logger: %w", err)
	}
	return streamcache.NewCache(cfg.StreamCache.Path, logging.NewComponentLogger(logger, "cli-cache")), "", nil
}

func humanBytes(v int64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	div := int64(unit)
	exp := 0
	for n := v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(v) / float64(div)
	return fmt.Sprintf("%.1f %ciB", value, "KMGTPEZY"[exp])
}
