package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/logger"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the PostgreSQL migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}
			if cfg.DatabaseURI == "" {
				return errors.New("DATABASE_URI is required")
			}
			return postgres.Migrate(cmd.Context(), cfg.DatabaseURI, logger.New(cfg))
		},
	}
}
