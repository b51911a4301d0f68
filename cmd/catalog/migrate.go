package main

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var listMigrations bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listMigrations {
			names, err := migrations.Names()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		_, appLogger, db, err := bootstrap()
		defer appLogger.Sync()
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := migrations.Apply(context.Background(), db)
		if err != nil {
			return err
		}
		appLogger.Info("Migrations applied", zap.Strings("files", applied))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&listMigrations, "list", false, "print the embedded migration files and exit")
}
