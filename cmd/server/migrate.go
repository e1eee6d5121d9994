package main

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/restaurant-dashboard/internal/config"
	"github.com/iliyamo/restaurant-dashboard/internal/database"
)

func migrateCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadDB()
			db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
			log.Printf("schema applied to %s", cfg.DBName)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "maximum time to apply the schema")
	return cmd
}
