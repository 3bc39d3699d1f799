package main

import (
	"fmt"

	"cashflow-api/internal/config"
	"cashflow-api/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		Long: `Apply the SQL migrations in DB_MIGRATIONS_PATH with golang-migrate on postgres,
or AutoMigrate on sqlite. Runs regardless of DB_AUTO_MIGRATE.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Database.AutoMigrate = true

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default categories and sample account",
		Long:  `Insert the twelve default categories and the sample FNB cheque account. Existing rows are kept.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Seed(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories and 1 account\n", len(database.DefaultCategories()))
			return nil
		},
	}
}

func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.New(&cfg.Database, logger.Warn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
