package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/config"
	"github.com/dindin-app/dindin/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has all the required
tables and indexes for the application to function properly.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	session := config.NewSession(viper.GetString("profile"))

	slog.Info("Starting database migration",
		"database", dbPath,
		"profile", session.Profile)

	store, err := storage.NewSQLiteStorage(dbPath, session.Profile)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	common.LogInfo("Database migrations completed", common.Fields{
		"database":       dbPath,
		"profile":        session.Profile,
		"schema_version": storage.ExpectedSchemaVersion,
	})

	return nil
}
