// Package main is the entry point for the HBnB API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/prn-tf/hbnb/internal/config"
	"github.com/prn-tf/hbnb/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "hbnb-server",
		Short:        "HBnB REST API server",
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				log.Error().Err(err).Msg("failed to load configuration")
				return err
			}

			logger, err := logging.Setup(cfg.Logging)
			if err != nil {
				return err
			}

			logger.Info().
				Str("version", Version).
				Str("build_time", BuildTime).
				Str("git_commit", GitCommit).
				Msg("starting HBnB server")

			app, err := newApplication(cfg, logger)
			if err != nil {
				logger.Error().Err(err).Msg("failed to initialize server")
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.run(ctx)
		},
	}

	cmd.SetContext(context.Background())
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (default: search ., ./configs, /etc/hbnb)")
	return cmd
}
