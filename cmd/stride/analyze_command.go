package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stride/internal/analysis"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var provider string
	var prompt string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Send a JSONL export to the analysis provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			analyzer, err := analysis.NewAnalyzer(cfg, provider)
			if err != nil {
				return err
			}

			answer, err := analyzer.AnalyzeFile(cmd.Context(), args[0], prompt)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Provider: %s\n\n", analyzer.ProviderName())
			fmt.Fprintln(out, strings.TrimSpace(answer))
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Analysis provider (openai, deepseek, gemini)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Override the analysis request prompt")
	return cmd
}
