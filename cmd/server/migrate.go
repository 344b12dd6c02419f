package main

import (
	"github.com/anonto42/book-hearts/backend/internal/models"
	"github.com/anonto42/book-hearts/backend/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the PostgreSQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := models.Migrate(db.Postgres); err != nil {
				return err
			}
			logrus.Info("Migrations completed.")
			return nil
		},
	}
}
