package cmd

import (
	"fmt"

	"github.com/projecthub/database"
	"github.com/spf13/cobra"
)

func newSeedCommand(envFile *string) *cobra.Command {
	var fixturesFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and demo data in an empty database",
		Long: `Seed migrates the schema, then inserts the admin account, demo users,
categories and a demo project. Nothing is written when users already exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			fixtures, err := database.LoadFixtures(fixturesFile)
			if err != nil {
				return err
			}

			db, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			seeded, err := database.Seed(cmd.Context(), db, fixtures, log)
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintf(cmd.OutOrStdout(), "database seeded, admin login: %s\n", fixtures.Admin.Email)
				if fixtures.GeneratedPassword {
					fmt.Fprintf(cmd.OutOrStdout(), "generated admin password: %s\n", fixtures.Admin.Password)
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "database already contains users, nothing to seed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturesFile, "file", "", "YAML fixtures file (defaults to the built-in demo data)")
	return cmd
}
