// Package facade provides stubs of the HTTP facade for handler and router tests.
package facade

import (
	"context"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/capture"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	pkgAuth "github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/report"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/share"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/test"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	SignInFn  func(context.Context, string, string) (pkgAuth.Token, *model.User, error)
	SignOutFn func(pkgAuth.Session)
	ParseFn   func(string) (pkgAuth.Session, error)
}

// SignIn returns a token for an operator unless overridden.
func (s AuthFacadeStub) SignIn(ctx context.Context, email, password string) (pkgAuth.Token, *model.User, error) {
	if s.SignInFn != nil {
		return s.SignInFn(ctx, email, password)
	}
	return pkgAuth.Token{Value: "token"}, &model.User{ID: test.Operator.UserID, Name: test.Operator.Name, Email: email, Level: model.LevelOperator}, nil
}

// SignOut delegates to the override, if any.
func (s AuthFacadeStub) SignOut(session pkgAuth.Session) {
	if s.SignOutFn != nil {
		s.SignOutFn(session)
	}
}

// ParseToken treats "admin" as an administrator token and anything else as
// an operator token.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Session, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if token == "admin" {
		return test.SessionFor(test.Admin), nil
	}
	return test.SessionFor(test.Operator), nil
}

// UserFacadeStub simulates account administration.
type UserFacadeStub struct {
	CreateFn func(context.Context, model.Identity, usecase.NewUser) (model.User, error)
	ListFn   func(context.Context, model.Identity) ([]model.User, error)
}

// CreateUser echoes the input unless overridden.
func (s UserFacadeStub) CreateUser(ctx context.Context, actor model.Identity, in usecase.NewUser) (model.User, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, in)
	}
	return model.User{ID: "new-user", Name: in.Name, Email: in.Email, Level: in.Level}, nil
}

// ListUsers returns the override result or a single administrator.
func (s UserFacadeStub) ListUsers(ctx context.Context, actor model.Identity) ([]model.User, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, actor)
	}
	return []model.User{{ID: test.Admin.UserID, Name: test.Admin.Name, Email: test.Admin.Email, Level: model.LevelAdmin}}, nil
}

// WithdrawalFacadeStub provides controllable behaviour for withdrawal endpoints.
type WithdrawalFacadeStub struct {
	RecordFn func(context.Context, model.Identity, usecase.CaptureInput) (usecase.Captured, error)
	ListFn   func(context.Context, string) ([]model.Withdrawal, error)
	DeleteFn func(context.Context, model.Identity, string) error
	ShareFn  func(context.Context, string, string) (model.Withdrawal, share.Links, error)
}

// RecordWithdrawal returns a record built from the input unless overridden.
func (s WithdrawalFacadeStub) RecordWithdrawal(ctx context.Context, author model.Identity, in usecase.CaptureInput) (usecase.Captured, error) {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, author, in)
	}
	return usecase.Captured{
		Withdrawal: model.Withdrawal{ID: "w-1", UserID: author.UserID, UserName: author.Name, RecipientName: in.RecipientName, NFNumber: in.NFNumber},
		Location:   capture.LocationIdle,
	}, nil
}

// Withdrawals returns predefined records.
func (s WithdrawalFacadeStub) Withdrawals(ctx context.Context, query string) ([]model.Withdrawal, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, query)
	}
	return []model.Withdrawal{{ID: "w-1", NFNumber: "123", RecipientName: "João"}}, nil
}

// DeleteWithdrawal succeeds unless overridden.
func (s WithdrawalFacadeStub) DeleteWithdrawal(ctx context.Context, actor model.Identity, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actor, id)
	}
	return nil
}

// ShareWithdrawal returns fixed links unless overridden.
func (s WithdrawalFacadeStub) ShareWithdrawal(ctx context.Context, id, userAgent string) (model.Withdrawal, share.Links, error) {
	if s.ShareFn != nil {
		return s.ShareFn(ctx, id, userAgent)
	}
	w := model.Withdrawal{ID: id}
	return w, share.Links{Message: "msg", MessageURL: "https://web.whatsapp.com/send?text=msg"}, nil
}

// ReportFacadeStub simulates report operations.
type ReportFacadeStub struct {
	RunFn     func(context.Context, model.Identity, string, string, string) (*report.Result, error)
	CurrentFn func(model.Identity) *report.Result
	ExportFn  func(model.Identity, string) (usecase.Export, error)
}

// RunReport returns an empty result for the period unless overridden.
func (s ReportFacadeStub) RunReport(ctx context.Context, actor model.Identity, start, end, tz string) (*report.Result, error) {
	if s.RunFn != nil {
		return s.RunFn(ctx, actor, start, end, tz)
	}
	period, err := report.NewPeriod(start, end, nil)
	if err != nil {
		return nil, err
	}
	return report.Build(start, end, period, nil, period.Start), nil
}

// CurrentReport returns the override result or nil.
func (s ReportFacadeStub) CurrentReport(actor model.Identity) *report.Result {
	if s.CurrentFn != nil {
		return s.CurrentFn(actor)
	}
	return nil
}

// ExportReport returns a tiny document unless overridden.
func (s ReportFacadeStub) ExportReport(actor model.Identity, format string) (usecase.Export, error) {
	if s.ExportFn != nil {
		return s.ExportFn(actor, format)
	}
	return usecase.Export{Filename: "relatorio_retiradas_a_b." + format, ContentType: "application/octet-stream", Data: []byte("doc")}, nil
}

// FacadeStub aggregates facade dependencies for HTTP layer tests.
type FacadeStub struct {
	AuthFacadeStub
	UserFacadeStub
	WithdrawalFacadeStub
	ReportFacadeStub
}
