package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/capture"
	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/share"
)

// CaptureInput carries the four inputs of one withdrawal as received from a
// client. Photo may be nil; Latitude and Longitude are the device fix, if any.
type CaptureInput struct {
	RecipientName string
	NFNumber      string
	Photo         io.Reader
	PhotoName     string
	Latitude      *float64
	Longitude     *float64
}

// Captured is a stored withdrawal with the geolocation state it ended in.
type Captured struct {
	Withdrawal model.Withdrawal
	Location   capture.LocationState
}

// WithdrawalUseCase records, lists, shares and deletes withdrawals.
type WithdrawalUseCase struct {
	withdrawals repository.WithdrawalRepository
	receipts    repository.ReceiptStore
	guard       *capture.Guard
	geoTimeout  time.Duration
	location    *time.Location
	logger      *slog.Logger
}

// NewWithdrawalUseCase constructs WithdrawalUseCase. Share messages render
// times in loc.
func NewWithdrawalUseCase(
	withdrawals repository.WithdrawalRepository,
	receipts repository.ReceiptStore,
	geoTimeout time.Duration,
	loc *time.Location,
	logger *slog.Logger,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		withdrawals: withdrawals,
		receipts:    receipts,
		guard:       capture.NewGuard(),
		geoTimeout:  geoTimeout,
		location:    loc,
		logger:      logger,
	}
}

// Record runs the capture workflow for author. Only one submission per user
// may be in flight; a concurrent one fails with ErrSubmissionInProgress.
func (u *WithdrawalUseCase) Record(ctx context.Context, author model.Identity, in CaptureInput) (Captured, error) {
	release, ok := u.guard.Acquire(author.UserID)
	if !ok {
		return Captured{}, domainErrors.ErrSubmissionInProgress
	}
	defer release()

	draft := capture.NewDraft(u.geoTimeout)
	draft.SetRecipient(in.RecipientName)
	draft.SetInvoice(in.NFNumber)
	if in.Photo != nil {
		if err := draft.AttachPhoto(in.Photo, in.PhotoName); err != nil && !domainErrors.IsValidation(err) {
			return Captured{}, err
		}
	}
	if err := draft.Validate(); err != nil {
		return Captured{}, err
	}

	state := capture.LocationIdle
	if in.Latitude != nil || in.Longitude != nil {
		draft.Locate(ctx, capture.FixedLocator{Latitude: in.Latitude, Longitude: in.Longitude})
		state = draft.AwaitLocation(ctx)
		if state == capture.LocationError {
			_, _, locErr := draft.Location()
			u.logger.Debug("withdrawal recorded without location", slog.String("reason", errString(locErr)))
		}
	}

	w, err := draft.Submit(ctx, author, u.receipts, u.withdrawals)
	if err != nil {
		return Captured{}, err
	}
	u.logger.Info("withdrawal recorded",
		slog.String("id", w.ID),
		slog.String("user", author.UserID),
		slog.Bool("located", w.HasLocation()),
	)
	return Captured{Withdrawal: w, Location: state}, nil
}

// List returns the recent withdrawals, newest first. A non-empty query keeps
// records whose invoice number or recipient contains it, ignoring case.
func (u *WithdrawalUseCase) List(ctx context.Context, query string) ([]model.Withdrawal, error) {
	records, err := u.withdrawals.ListRecent(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records, nil
	}

	filtered := make([]model.Withdrawal, 0, len(records))
	for _, w := range records {
		if strings.Contains(strings.ToLower(w.NFNumber), query) ||
			strings.Contains(strings.ToLower(w.RecipientName), query) {
			filtered = append(filtered, w)
		}
	}
	return filtered, nil
}

// Delete removes id on behalf of an administrator. Deleting an absent id
// succeeds.
func (u *WithdrawalUseCase) Delete(ctx context.Context, actor model.Identity, id string) error {
	if !actor.IsAdmin() {
		return domainErrors.ErrForbidden
	}
	if err := u.withdrawals.Delete(ctx, id); err != nil {
		return err
	}
	u.logger.Info("withdrawal deleted", slog.String("id", id), slog.String("by", actor.UserID))
	return nil
}

// Share builds the outbound links of a recent withdrawal.
func (u *WithdrawalUseCase) Share(ctx context.Context, id, userAgent string) (model.Withdrawal, share.Links, error) {
	records, err := u.withdrawals.ListRecent(ctx)
	if err != nil {
		return model.Withdrawal{}, share.Links{}, err
	}
	for _, w := range records {
		if w.ID == id {
			return w, share.For(w, userAgent, u.location), nil
		}
	}
	return model.Withdrawal{}, share.Links{}, domainErrors.ErrNotFound
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
