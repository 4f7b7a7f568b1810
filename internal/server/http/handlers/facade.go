package handlers

import (
	"context"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	pkgAuth "github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/report"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/share"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	SignIn(ctx context.Context, email, password string) (pkgAuth.Token, *model.User, error)
	SignOut(session pkgAuth.Session)
	ParseToken(token string) (pkgAuth.Session, error)
}

// UserFacade covers account administration.
type UserFacade interface {
	CreateUser(ctx context.Context, actor model.Identity, in usecase.NewUser) (model.User, error)
	ListUsers(ctx context.Context, actor model.Identity) ([]model.User, error)
}

// WithdrawalFacade encapsulates withdrawal operations exposed via HTTP.
type WithdrawalFacade interface {
	RecordWithdrawal(ctx context.Context, author model.Identity, in usecase.CaptureInput) (usecase.Captured, error)
	Withdrawals(ctx context.Context, query string) ([]model.Withdrawal, error)
	DeleteWithdrawal(ctx context.Context, actor model.Identity, id string) error
	ShareWithdrawal(ctx context.Context, id, userAgent string) (model.Withdrawal, share.Links, error)
}

// ReportFacade runs and exports report queries.
type ReportFacade interface {
	RunReport(ctx context.Context, actor model.Identity, start, end, tz string) (*report.Result, error)
	CurrentReport(actor model.Identity) *report.Result
	ExportReport(actor model.Identity, format string) (usecase.Export, error)
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	AuthFacade
	UserFacade
	WithdrawalFacade
	ReportFacade
}
