package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stride/internal/logging"
	"stride/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Display recent log output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := logging.FilePath(cfg)
			if path == "" {
				return errors.New("log directory is not configured")
			}

			out := cmd.OutOrStdout()
			snapshot, offset, err := logs.Snapshot(path, lines)
			if err != nil {
				return err
			}
			for _, line := range snapshot {
				fmt.Fprintln(out, line)
			}
			if !follow {
				if len(snapshot) == 0 {
					fmt.Fprintln(out, "No log entries available")
				}
				return nil
			}

			for {
				batch, next, err := logs.Poll(cmd.Context(), path, offset, time.Second)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
				for _, line := range batch {
					fmt.Fprintln(out, line)
				}
				offset = next
			}
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow log output")
	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "Number of lines to show (0 for all)")
	return cmd
}
