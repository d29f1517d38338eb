package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pageza/portfolio/backend/config"
	"github.com/pageza/portfolio/backend/internal/database"
	"github.com/pageza/portfolio/backend/internal/service"
	"github.com/pageza/portfolio/backend/internal/storage"
	"github.com/pageza/portfolio/backend/internal/types"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "manage",
		Short:         "Administrative tasks for the portfolio backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCommand(), newSeedCommand(), newCreateAdminCommand())
	return root
}

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Manage the PostgreSQL schema",
	}

	run := func(fn func(cmd *cobra.Command, db *sql.DB) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			db, err := openPostgres()
			if err != nil {
				return err
			}
			defer db.Close()
			return fn(cmd, db)
		}
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: run(func(cmd *cobra.Command, db *sql.DB) error {
				return database.MigrateUp(cmd.Context(), db)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: run(func(cmd *cobra.Command, db *sql.DB) error {
				return database.MigrateDown(cmd.Context(), db)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the state of every migration",
			RunE: run(func(cmd *cobra.Command, db *sql.DB) error {
				return database.MigrationStatus(cmd.Context(), db)
			}),
		},
	)
	return migrate
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate, insert the default profile and create the configured admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			db, err := database.New(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := cmd.Context()
			if err := database.RunMigrations(ctx, db); err != nil {
				return err
			}
			store := storage.NewDatabaseStorage(db)
			if err := store.Initialize(ctx); err != nil {
				return err
			}
			return service.NewAuthService(store, cfg.JWTSecret).EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		},
	}
}

func newCreateAdminCommand() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			db, err := database.New(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			store := storage.NewDatabaseStorage(db)
			creds := types.Credentials{Username: username, Password: password}
			_, err = service.NewAuthService(store, cfg.JWTSecret).Register(cmd.Context(), creds)
			if errors.Is(err, storage.ErrConflict) {
				return fmt.Errorf("user %q already exists", username)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %q created\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}

// openPostgres connects with lib/pq for goose, which works on database/sql.
func openPostgres() (*sql.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(cfg.DatabaseURL, "sqlite://") {
		return nil, errors.New("migrate commands need PostgreSQL; SQLite schemas are created automatically")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
