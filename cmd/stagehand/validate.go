package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/calder-games/stagehand/internal/config"
	"github.com/urfave/cli/v3"
)

var validateCmd = newValidateCmd()

func newValidateCmd() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"lint"},
		Usage:   "Validate a machine configuration file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "tree",
				Aliases: []string{"t"},
				Usage:   "Show detailed tree view of the validated configuration",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file",
			},
		},
		Suggest: true,
		Action:  validateAction,
	}
}

func validateAction(_ context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		if cmd.Args().Len() < 1 {
			return fmt.Errorf(
				"config file path required (use the --config flag, or provide the config file as positional argument)",
			)
		}
		configPath = cmd.Args().Get(0)
	}

	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Configuration file %s is valid\n", configPath)

	if cmd.Bool("tree") {
		// Use the Stringer interface to print the config in a fancy tree format
		fmt.Println(cfg)
		return nil
	}

	fmt.Println(renderConfigSummary(configPath, cfg))
	return nil
}

// renderConfigSummary creates a formatted summary string for the configuration
func renderConfigSummary(path string, cfg *config.Config) string {
	var summary strings.Builder

	summary.WriteString("\nConfig Summary:\n")
	summary.WriteString(fmt.Sprintf("- Path: %s\n", path))
	summary.WriteString(fmt.Sprintf("- Version: %s\n", cfg.Version))
	summary.WriteString(fmt.Sprintf("- Machine: %s\n", cfg.Machine.Name))
	summary.WriteString(fmt.Sprintf("- States: %d\n", len(cfg.States)))
	if cfg.Machine.Initial != "" {
		summary.WriteString(fmt.Sprintf("- Initial: %s\n", cfg.Machine.Initial))
	}
	summary.WriteString("\nUse --tree for a more detailed view of the config.")

	return summary.String()
}
