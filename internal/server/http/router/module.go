package router

import (
	"go.uber.org/fx"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/app"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.Facade) handlers.Facade { return f }),
	fx.Provide(Setup),
)
