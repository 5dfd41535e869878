package cmd

import (
	"errors"
	"fmt"

	"github.com/projecthub/database"
	"github.com/spf13/cobra"
)

func newTransferCommand(envFile *string) *cobra.Command {
	var sourceURL, targetURL string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Copy every row from one database to another",
		Long: `Transfer migrates the target schema and copies all tables from the source
database, for example to move a SQLite deployment to PostgreSQL. Rows that
already exist in the target are skipped, so the command can be re-run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sourceURL == "" || targetURL == "" {
				return errors.New("both --source and --target are required")
			}
			if sourceURL == targetURL {
				return errors.New("source and target must be different databases")
			}
			_, log, err := bootstrap(*envFile)
			if err != nil {
				return err
			}

			source, err := database.NewDBConnection("source", sourceURL, log)
			if err != nil {
				return err
			}
			defer source.Close()

			target, err := database.NewDBConnection("target", targetURL, log)
			if err != nil {
				return err
			}
			defer target.Close()

			if err := target.Migrate(); err != nil {
				return err
			}
			if err := database.MigrateDataBetweenDatabases(cmd.Context(), source, target); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "transfer complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&sourceURL, "source", "", "Source database URL or SQLite path")
	cmd.Flags().StringVar(&targetURL, "target", "", "Target database URL or SQLite path")
	return cmd
}
