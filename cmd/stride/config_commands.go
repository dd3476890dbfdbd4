package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stride/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set the Strava credentials (or export STRAVA_CLIENT_ID,")
			fmt.Fprintln(out, "STRAVA_CLIENT_SECRET, and STRAVA_REFRESH_TOKEN) before running stride.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Show the effective configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			source := path
			if !exists {
				source += " (not found, defaults in effect)"
			}

			llm := cfg.GetLLM()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path:      %s\n", source)
			fmt.Fprintf(out, "Output directory: %s\n", cfg.Paths.OutputDir)
			fmt.Fprintf(out, "Log directory:    %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "Strava API:       %s (credentials set: %s)\n",
				cfg.Strava.BaseURL, yesNo(stravaCredentialsSet(cfg)))
			fmt.Fprintf(out, "Listing window:   last %d days, %d per page\n",
				cfg.Strava.DaysBack, cfg.Strava.PerPage)
			fmt.Fprintf(out, "Export interval:  %ds\n", cfg.Export.IntervalSeconds)
			fmt.Fprintf(out, "Stream cache:     %s\n", streamCacheSummary(cfg))
			fmt.Fprintf(out, "Analysis LLM:     %s (model %s, key set: %s)\n",
				llm.Provider, llm.Model, yesNo(llm.APIKey != ""))
			fmt.Fprintf(out, "Gemini:           model %s, key set: %s\n",
				cfg.Gemini.Model, yesNo(cfg.GetGemini().APIKey != ""))
			fmt.Fprintf(out, "Logging:          %s at %s\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func stravaCredentialsSet(cfg *config.Config) bool {
	return cfg.Strava.ClientID != "" && cfg.Strava.ClientSecret != "" && cfg.Strava.RefreshToken != ""
}

func streamCacheSummary(cfg *config.Config) string {
	if !cfg.StreamCache.Enabled {
		return "disabled"
	}
	if strings.TrimSpace(cfg.StreamCache.Path) == "" {
		return "enabled, no path configured"
	}
	return "enabled at " + cfg.StreamCache.Path
}
