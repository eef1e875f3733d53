package main

import (
	"github.com/deppfellow/petstore/internal/config"
	"github.com/deppfellow/petstore/internal/database"
	"github.com/deppfellow/petstore/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the PostgreSQL schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		log := logger.NewLogger(cfg.Observability)
		if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
			log.Error().Err(err).Msg("migration failed")
			return err
		}
		return nil
	},
}
