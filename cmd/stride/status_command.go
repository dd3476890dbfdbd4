package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stride/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show account state and connectivity checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Account", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderResultLine(preflight.CheckAuthStateFromConfig(cfg), colorize))
			fmt.Fprintln(stdout, renderResultLine(preflight.CheckStreamCacheFromConfig(cfg), colorize))

			var results []preflight.Result
			if offline {
				results = preflight.RunOffline(cfg)
			} else {
				results = preflight.RunAll(cmd.Context(), cfg)
			}

			fmt.Fprintln(stdout)
			for _, line := range renderSectionHeader("System Checks", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, result := range results {
				fmt.Fprintln(stdout, renderResultLine(result, colorize))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip checks that dial external APIs")
	return cmd
}
