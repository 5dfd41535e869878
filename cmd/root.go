package cmd

import (
	"fmt"
	"os"

	"github.com/projecthub/config"
	"github.com/projecthub/database"
	"github.com/projecthub/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewRootCommand builds the CLI. Running it without a subcommand serves the API.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "projecthub",
		Short: "Project management API server",
		Long: `ProjectHub serves the project management REST API: users, projects,
tasks, bugs, categories, notifications and file uploads.

Configuration comes from the environment, optionally loaded from a .env file.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file to load before reading the environment")

	serve := newServeCommand(&envFile)
	root.RunE = serve.RunE

	root.AddCommand(serve)
	root.AddCommand(newMigrateCommand(&envFile))
	root.AddCommand(newSeedCommand(&envFile))
	root.AddCommand(newTransferCommand(&envFile))
	return root
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the environment and builds the config and logger shared by every command
func bootstrap(envFile string) (*config.Config, zerolog.Logger, error) {
	envErr := config.LoadEnv(envFile)

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.New(cfg.LogLevel, cfg.IsDevelopment())

	if envErr != nil {
		log.Debug().Err(envErr).Msg("no env file")
	}
	if cfg.UsingDevToken {
		log.Warn().Msg("JWT_SECRET not set, using the development secret")
	}
	return cfg, log, nil
}

// openStore opens the configured store and brings its schema up to date
func openStore(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
