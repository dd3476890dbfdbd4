package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stride/internal/services/strava"
)

func newAthleteCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "athlete",
		Short: "Show the authenticated athlete",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := newStravaClient(cfg)
			if err != nil {
				return err
			}
			athlete, err := client.Athlete(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, athlete)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Athlete:  %s (id %d)\n", athlete.DisplayName(), athlete.ID)
			if location := athleteLocation(athlete); location != "" {
				fmt.Fprintf(out, "Location: %s\n", location)
			}
			if athlete.Weight > 0 {
				fmt.Fprintf(out, "Weight:   %.1f kg\n", athlete.Weight)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func athleteLocation(athlete *strava.Athlete) string {
	parts := make([]string, 0, 2)
	if city := strings.TrimSpace(athlete.City); city != "" {
		parts = append(parts, city)
	}
	if country := strings.TrimSpace(athlete.Country); country != "" {
		parts = append(parts, country)
	}
	return strings.Join(parts, ", ")
}
