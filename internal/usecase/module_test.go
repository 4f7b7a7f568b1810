package usecase

import (
	"testing"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
	pkgAuth "github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
	testhelpers "github.com/gustavo230282-a11y/controle-de-retiradas/internal/test"
)

func TestModuleProvidesUseCases(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:          "secret",
		ReportLocation:     time.UTC,
		ReportCacheTTL:     time.Minute,
		GeolocationTimeout: time.Second,
	}
	factory := testhelpers.NewFactoryStub()

	var (
		auth        *AuthUseCase
		users       *UserUseCase
		withdrawals *WithdrawalUseCase
		reports     *ReportUseCase
	)
	app := fxtest.New(t,
		fx.Supply(cfg, discardLogger()),
		fx.Provide(
			func() repository.UserRepository { return factory.UserRepo },
			func() repository.WithdrawalRepository { return factory.WithdrawalRepo },
			func() repository.ReceiptStore { return factory.ReceiptRepo },
		),
		pkgAuth.Module,
		Module,
		fx.Populate(&auth, &users, &withdrawals, &reports),
	)
	app.RequireStart()
	defer app.RequireStop()

	if auth == nil || users == nil || withdrawals == nil || reports == nil {
		t.Fatal("expected all use cases to be provided")
	}
	if withdrawals.geoTimeout != time.Second || reports.location != time.UTC {
		t.Fatal("expected configuration to reach the use cases")
	}
}
