package di

import (
	"go.uber.org/fx"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/app"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/logger"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/router"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
