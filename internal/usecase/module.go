package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/report"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewSessionEvents,
	NewAuthUseCase,
	NewUserUseCase,
	newWithdrawalUseCase,
	newReportCache,
	newReportUseCase,
)

type withdrawalParams struct {
	fx.In

	Withdrawals repository.WithdrawalRepository
	Receipts    repository.ReceiptStore
	Config      *config.Config
	Logger      *slog.Logger
}

func newWithdrawalUseCase(p withdrawalParams) *WithdrawalUseCase {
	return NewWithdrawalUseCase(p.Withdrawals, p.Receipts, p.Config.GeolocationTimeout, p.Config.ReportLocation, p.Logger)
}

func newReportCache(cfg *config.Config) *report.Cache {
	return report.NewCache(cfg.ReportCacheTTL)
}

type reportParams struct {
	fx.In

	Withdrawals repository.WithdrawalRepository
	Cache       *report.Cache
	Config      *config.Config
	Logger      *slog.Logger
}

func newReportUseCase(p reportParams) *ReportUseCase {
	return NewReportUseCase(p.Withdrawals, p.Cache, p.Config.ReportLocation, p.Logger)
}
