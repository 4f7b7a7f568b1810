package main

import (
	"github.com/spf13/cobra"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage/local"
)

func newResetLocalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-local",
		Short: "Delete the local fallback database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}
			if err := local.Reset(cfg.LocalDatabasePath); err != nil {
				return err
			}
			cmd.Printf("removed %s\n", cfg.LocalDatabasePath)
			return nil
		},
	}
}
