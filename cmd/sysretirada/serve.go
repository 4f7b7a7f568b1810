package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/di"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "serve",
		Short:              "Start the HTTP API",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app := fx.New(
				fx.Provide(func() context.Context { return ctx }),
				fx.Supply(config.Args(args)),
				di.Module(),
			)
			return run(ctx, app)
		},
	}
}
