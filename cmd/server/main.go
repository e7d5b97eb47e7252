// Package main implements the entry point for the taskboard API server,
// a small HTTP service for creating, listing, updating and deleting tasks.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/phrazzld/taskboard-api/internal/platform/sqldoc"
	"github.com/spf13/cobra"
)

// main is the entry point for the taskboard server.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Each call returns fresh commands so
// tests can execute them in isolation.
func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Taskboard - a task management HTTP API",
		Long: `Taskboard serves a JSON API for creating, listing, updating and
deleting tasks. Tasks are kept in memory or in an external store
(SQLite, Postgres, Redis or Neo4j) selected through configuration.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfgFile)
		},
	}

	migrateCmd := &cobra.Command{
		Use:       "migrate <up|down|status|version>",
		Short:     "Run document table migrations for the sqlite and postgres backends",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "status", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := sqldoc.ParseMigrationCommand(args[0])
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), cfgFile, command)
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd)
	return rootCmd
}

// runServe loads configuration, builds the application and serves until
// a shutdown signal arrives or ctx is canceled.
func runServe(ctx context.Context, cfgFile string) error {
	cfg, err := loadAppConfig(cfgFile)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// runMigrate loads configuration and applies a migration command.
func runMigrate(ctx context.Context, cfgFile string, command sqldoc.MigrationCommand) error {
	cfg, err := loadAppConfig(cfgFile)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	return handleMigrations(ctx, cfg, command, logger)
}
