package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stride/internal/export"
	"stride/internal/logging"
	"stride/internal/streamcache"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var person string
	var interval float64
	var daysBack int
	var outPath string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export compacted activity streams to JSONL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			client, err := newStravaClient(cfg)
			if err != nil {
				return err
			}

			var cache export.PayloadCache
			useCache := cfg.StreamCache.Enabled && !noCache && strings.TrimSpace(cfg.StreamCache.Path) != ""
			if useCache {
				cache = streamcache.NewCache(cfg.StreamCache.Path, logger)
			}

			pipeline, err := export.NewPipeline(cfg, client, cache, logger)
			if err != nil {
				return err
			}

			opts := export.Options{
				Person:     person,
				Interval:   interval,
				After:      listWindow(cfg, daysBack),
				OutputPath: strings.TrimSpace(outPath),
				UseCache:   useCache,
			}

			start := time.Now()
			summary, err := pipeline.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Wrote %d records to %s in %s\n",
				summary.Written, summary.Output, time.Since(start).Round(time.Millisecond))
			if summary.Skipped > 0 || summary.Failed > 0 {
				fmt.Fprintf(stdout, "Skipped %d unclassified, failed %d (see logs for details)\n",
					summary.Skipped, summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&person, "person", "p", "", "Only export activities for this owner initial")
	cmd.Flags().Float64VarP(&interval, "interval", "i", 0, "Sampling interval in seconds (0 uses the configured value)")
	cmd.Flags().IntVar(&daysBack, "days-back", 0, "Listing window in days (0 uses the configured value)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file path (defaults to the output directory)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the stream payload cache for this run")
	return cmd
}
