package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	pkgAuth "github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/report"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/usecase"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewFacade,
		newHTTPServer,
		newJanitor,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type janitorParams struct {
	fx.In

	Denylist *pkgAuth.Denylist
	Reports  *report.Cache
	Config   *config.Config
	Logger   *slog.Logger
}

func newJanitor(p janitorParams) *worker.Janitor {
	return worker.NewJanitor(map[string]worker.Sweeper{
		"token_denylist": p.Denylist,
		"report_cache":   p.Reports,
	}, p.Config.JanitorInterval, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Janitor    *worker.Janitor
	Facade     *Facade
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	var release func()

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Config.SeedsAdmin() {
				if _, err := p.Facade.EnsureAdmin(ctx, p.Config.AdminName, p.Config.AdminEmail, p.Config.AdminPassword); err != nil {
					return err
				}
			}

			release = p.Facade.SubscribeSessions(func(ev usecase.SessionEvent) {
				p.Logger.Info("session changed",
					slog.String("event", string(ev.Kind)),
					slog.String("user", ev.Identity.UserID),
					slog.String("level", string(ev.Identity.Level)),
				)
			})

			p.Logger.Info("starting sysretirada",
				slog.String("addr", p.Server.Addr),
				slog.String("storage", p.Config.StorageBackend),
			)
			p.Janitor.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if release != nil {
				release()
			}
			p.Janitor.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("sysretirada stopped")
			return nil
		},
	})
}
