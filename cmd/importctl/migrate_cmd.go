package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mohammadpnp/appraisal-import/internal/config"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/db"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if databaseURL == "" {
				if _, err := config.LoadEnvFiles(config.DefaultEnvFiles); err != nil {
					return err
				}
				databaseURL = os.Getenv("DATABASE_URL")
			}
			if databaseURL == "" {
				return errors.New("--database-url or DATABASE_URL is required")
			}

			gdb, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if err := db.Migrate(cmd.Context(), gdb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres DSN (defaults to DATABASE_URL)")
	return cmd
}
