package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/calder-games/stagehand/cmd/stagehand/engine"
	"github.com/calder-games/stagehand/internal/config"
	"github.com/calder-games/stagehand/internal/logging"
	"github.com/urfave/cli/v3"
)

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "Run a machine from a configuration file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to TOML configuration file",
			Aliases: []string{"c"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Override the configured log level (trace, debug, info, warn, error)",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		configPath := cmd.String("config")
		if configPath == "" {
			if cmd.Args().Len() < 1 {
				return cli.Exit("config file path required", 1)
			}
			configPath = cmd.Args().Get(0)
		}

		cfg, err := config.NewConfig(configPath)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to load config: %w", err), 1)
		}

		logLevel := cfg.Logging.Level
		if lvl := cmd.String("log-level"); lvl != "" {
			logLevel = lvl
		}
		handler, err := logging.SetupHandler(cfg.Logging.Format, logLevel, cfg.Logging.Output)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to set up logging: %w", err), 1)
		}
		logger := slog.New(handler)
		slog.SetDefault(logger)

		if err := engine.Run(ctx, logger, cfg); err != nil {
			return cli.Exit(err, 1)
		}
		return nil
	},
}
