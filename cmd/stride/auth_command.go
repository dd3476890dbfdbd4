package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stride/internal/services/strava"
)

func newAuthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "auth <code>",
		Short: "Exchange an authorization code for API tokens",
		Long: "Exchange a one-time authorization code for access and refresh tokens.\n" +
			"Obtain the code by visiting the OAuth authorize URL for your API\n" +
			"application and copying the code parameter from the redirect.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			tokens, err := strava.NewTokenManager(cfg)
			if err != nil {
				return err
			}

			athlete, err := tokens.ExchangeCode(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if athlete != nil {
				fmt.Fprintf(out, "Linked athlete %s\n", athlete.DisplayName())
			}
			fmt.Fprintf(out, "Token state saved to %s\n", cfg.Strava.TokenPath)
			return nil
		},
	}
}
