package cmd

import (
	"github.com/projecthub/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			db, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			log.Info().Msg("database schema is up to date")
			return nil
		},
	}
}
