package main

import (
	"fmt"

	"rpc-speed-bot/internal/adapter/storage/targetfile"
	"rpc-speed-bot/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [targets-file]",
		Short: "Validate a targets file",
		Long: `Load and validate a targets file without polling anything.

When no file is given, monitor.targets_file from the configuration is used.

Exit codes:
  0 - file is valid
  1 - file is missing or invalid (error printed to stderr)`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		configDir, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("failed to load configuration from %s: %w", configDir, err)
		}
		path = cfg.Monitor.TargetsFile
	}

	targets, err := targetfile.NewRepository(path, zap.NewNop()).LoadTargets(cmd.Context())
	if err != nil {
		return fmt.Errorf("invalid targets file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Targets file is valid!\n")
	fmt.Fprintf(out, "  Path:    %s\n", path)
	fmt.Fprintf(out, "  Targets: %d\n", len(targets))
	for _, t := range targets {
		fmt.Fprintf(out, "    - %s (%s)\n", t.Name, t.Endpoint)
	}
	return nil
}
