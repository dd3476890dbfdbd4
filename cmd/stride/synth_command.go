package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stride/internal/export"
)

func newSynthCommand() *cobra.Command {
	synthCmd := &cobra.Command{
		Use:         "synth",
		Short:       "Generate synthetic export variants",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	synthCmd.AddCommand(newSynthAbnormalHRCommand())

	return synthCmd
}

func newSynthAbnormalHRCommand() *cobra.Command {
	var minHR int
	var maxHR int

	cmd := &cobra.Command{
		Use:   "abnormal-hr <in> <out>",
		Short: "Rewrite heart rate samples into an abnormal range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := export.SynthesizeAbnormalHR(args[0], args[1], minHR, maxHR)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", count, args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&minHR, "min", export.DefaultAbnormalMinHR, "Lowest synthetic heart rate in bpm")
	cmd.Flags().IntVar(&maxHR, "max", export.DefaultAbnormalMaxHR, "Highest synthetic heart rate in bpm")
	return cmd
}
