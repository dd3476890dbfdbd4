package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"stride/internal/services/strava"
)

func newActivitiesCommand(ctx *commandContext) *cobra.Command {
	var person string
	var daysBack int
	var jsonOut bool
	var activityID int64

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List recent activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := newStravaClient(cfg)
			if err != nil {
				return err
			}

			if activityID > 0 {
				detail, err := client.ActivityDetails(cmd.Context(), activityID)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, detail)
				}
				printActivityDetail(cmd.OutOrStdout(), detail)
				return nil
			}

			opts := strava.ListOptions{
				PerPage: cfg.Strava.PerPage,
				After:   listWindow(cfg, daysBack),
			}
			activities, err := client.ActivitiesByPerson(cmd.Context(), person, opts)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, activities)
			}
			if len(activities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activities found")
				return nil
			}

			table := renderTable(
				[]string{"ID", "Name", "Class", "Start", "Distance", "Time", "Avg HR"},
				buildActivityRows(activities),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().StringVarP(&person, "person", "p", "", "Only list activities for this owner initial")
	cmd.Flags().IntVar(&daysBack, "days-back", 0, "Listing window in days (0 uses the configured value)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().Int64Var(&activityID, "id", 0, "Show the detail view for one activity")
	return cmd
}

func buildActivityRows(activities []strava.Activity) [][]string {
	rows := make([][]string, 0, len(activities))
	for _, act := range activities {
		rows = append(rows, []string{
			strconv.FormatInt(act.ID, 10),
			act.Name,
			classLabel(act.Name, act.SportType),
			formatStartDate(act.StartDate),
			formatDistance(act.Distance),
			formatSeconds(act.MovingTime),
			formatHeartRate(act.AverageHeartrate),
		})
	}
	return rows
}

func printActivityDetail(out io.Writer, act *strava.Activity) {
	fmt.Fprintf(out, "Activity %d: %s\n", act.ID, act.Name)
	fmt.Fprintf(out, "  Class:      %s\n", classLabel(act.Name, act.SportType))
	fmt.Fprintf(out, "  Start:      %s\n", formatStartDate(act.StartDate))
	fmt.Fprintf(out, "  Distance:   %s\n", formatDistance(act.Distance))
	fmt.Fprintf(out, "  Moving:     %s\n", formatSeconds(act.MovingTime))
	fmt.Fprintf(out, "  Elapsed:    %s\n", formatSeconds(act.ElapsedTime))
	fmt.Fprintf(out, "  Heart rate: avg %s, max %s\n",
		formatHeartRate(act.AverageHeartrate), formatHeartRate(act.MaxHeartrate))
	if act.Calories != nil {
		fmt.Fprintf(out, "  Calories:   %.0f\n", *act.Calories)
	}
	if act.TotalElevationGain != nil {
		fmt.Fprintf(out, "  Elevation:  %.0f m\n", *act.TotalElevationGain)
	}
}
