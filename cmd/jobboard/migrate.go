package main

import (
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Create every table and index the API needs. Safe to run more than once.`,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, store, _, cleanup, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	if err := store.Migrate(cmd.Context()); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}

	backend := "postgres"
	if cfg.IsSQLite() {
		backend = "sqlite"
	}
	pterm.Success.Printf("Schema applied (%s)\n", backend)
	return nil
}
