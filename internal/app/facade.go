package app

import (
	"context"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	pkgAuth "github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/report"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/share"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/usecase"
)

// Facade is the single entry point of the HTTP layer into the use cases.
type Facade struct {
	auth        *usecase.AuthUseCase
	users       *usecase.UserUseCase
	withdrawals *usecase.WithdrawalUseCase
	reports     *usecase.ReportUseCase
}

func NewFacade(auth *usecase.AuthUseCase, users *usecase.UserUseCase, withdrawals *usecase.WithdrawalUseCase, reports *usecase.ReportUseCase) *Facade {
	return &Facade{auth: auth, users: users, withdrawals: withdrawals, reports: reports}
}

func (f *Facade) SignIn(ctx context.Context, email, password string) (pkgAuth.Token, *model.User, error) {
	return f.auth.SignIn(ctx, email, password)
}

func (f *Facade) SignOut(session pkgAuth.Session) {
	f.auth.SignOut(session)
}

func (f *Facade) ParseToken(token string) (pkgAuth.Session, error) {
	return f.auth.ParseToken(token)
}

func (f *Facade) SubscribeSessions(fn func(usecase.SessionEvent)) (release func()) {
	return f.auth.Events().Subscribe(fn)
}

func (f *Facade) CreateUser(ctx context.Context, actor model.Identity, in usecase.NewUser) (model.User, error) {
	return f.users.CreateUser(ctx, actor, in)
}

func (f *Facade) ListUsers(ctx context.Context, actor model.Identity) ([]model.User, error) {
	return f.users.ListUsers(ctx, actor)
}

func (f *Facade) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	return f.users.EnsureAdmin(ctx, name, email, password)
}

func (f *Facade) RecordWithdrawal(ctx context.Context, author model.Identity, in usecase.CaptureInput) (usecase.Captured, error) {
	return f.withdrawals.Record(ctx, author, in)
}

func (f *Facade) Withdrawals(ctx context.Context, query string) ([]model.Withdrawal, error) {
	return f.withdrawals.List(ctx, query)
}

func (f *Facade) DeleteWithdrawal(ctx context.Context, actor model.Identity, id string) error {
	return f.withdrawals.Delete(ctx, actor, id)
}

func (f *Facade) ShareWithdrawal(ctx context.Context, id, userAgent string) (model.Withdrawal, share.Links, error) {
	return f.withdrawals.Share(ctx, id, userAgent)
}

func (f *Facade) RunReport(ctx context.Context, actor model.Identity, start, end, tz string) (*report.Result, error) {
	return f.reports.Run(ctx, actor, start, end, tz)
}

func (f *Facade) CurrentReport(actor model.Identity) *report.Result {
	return f.reports.Current(actor)
}

func (f *Facade) ExportReport(actor model.Identity, format string) (usecase.Export, error) {
	return f.reports.Export(actor, format)
}

