package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/app"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		StorageBackend:     config.BackendLocal,
		JWTSecret:          "secret",
		TokenTTL:           time.Hour,
		ShutdownTimeout:    time.Millisecond,
		ReportLocation:     time.UTC,
		ReportCacheTTL:     time.Minute,
		JanitorInterval:    time.Minute,
		GeolocationTimeout: time.Second,
		MaxReceiptBytes:    1 << 20,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	factory := test.NewFactoryStub()

	var facade *app.Facade
	var users repository.UserRepository
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		fx.Supply(config.Args(nil)),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(repository.Factory(factory)),
		),
		fx.Populate(&facade, &users),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected facade instance")
	}
	if users != factory.UserRepo {
		t.Fatal("expected repositories to come from the replaced factory")
	}
}
