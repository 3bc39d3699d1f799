package main

import (
	"fmt"
	"log/slog"

	"cashflow-api/internal/config"
	"cashflow-api/internal/database"
	"cashflow-api/internal/server"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Connect to the configured database, migrate it when DB_AUTO_MIGRATE is set,
seed it when DB_SEED is set, and serve the API until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Initialize(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					slog.Error("failed to close database", "error", err)
				}
			}()

			srv, err := server.New(cfg, db, version, slog.Default())
			if err != nil {
				return err
			}

			return srv.Run(ctx)
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
