package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/report"
)

// Export formats.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

const (
	fieldTimezone = "timezone"
	fieldFormat   = "format"
)

// Export is a rendered report document.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportUseCase runs report queries and exports the caller's current one.
type ReportUseCase struct {
	withdrawals repository.WithdrawalRepository
	cache       *report.Cache
	location    *time.Location
	logger      *slog.Logger
	now         func() time.Time
}

// NewReportUseCase constructs ReportUseCase. Periods default to loc.
func NewReportUseCase(withdrawals repository.WithdrawalRepository, cache *report.Cache, loc *time.Location, logger *slog.Logger) *ReportUseCase {
	return &ReportUseCase{
		withdrawals: withdrawals,
		cache:       cache,
		location:    loc,
		logger:      logger,
		now:         time.Now,
	}
}

// Run selects the recent withdrawals inside [start, end] and makes the
// result the caller's current report. An empty tz uses the default zone.
func (u *ReportUseCase) Run(ctx context.Context, actor model.Identity, start, end, tz string) (*report.Result, error) {
	loc := u.location
	if tz = strings.TrimSpace(tz); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, &domainErrors.ValidationError{Fields: []string{fieldTimezone}}
		}
		loc = l
	}

	period, err := report.NewPeriod(start, end, loc)
	if err != nil {
		return nil, err
	}

	records, err := u.withdrawals.ListRecent(ctx)
	if err != nil {
		return nil, err
	}

	now := u.now()
	result := report.Build(strings.TrimSpace(start), strings.TrimSpace(end), period, records, now)
	u.cache.Put(actor.UserID, result, now)
	u.logger.Debug("report generated",
		slog.String("user", actor.UserID),
		slog.String("start", result.StartDate),
		slog.String("end", result.EndDate),
		slog.Int("records", len(result.Records)),
	)
	return result, nil
}

// Current returns the caller's current report, or nil before any query.
func (u *ReportUseCase) Current(actor model.Identity) *report.Result {
	result, ok := u.cache.Get(actor.UserID, u.now())
	if !ok {
		return nil
	}
	return result
}

// Export renders the caller's current report. It fails with
// ErrPeriodRequired before any query and ErrNothingToExport when the
// current report is empty.
func (u *ReportUseCase) Export(actor model.Identity, format string) (Export, error) {
	result := u.Current(actor)
	if result == nil {
		return Export{}, domainErrors.ErrPeriodRequired
	}

	var (
		buf bytes.Buffer
		out Export
		err error
	)
	switch strings.ToLower(format) {
	case FormatPDF:
		err = report.WritePDF(&buf, result)
		out = Export{Filename: result.Filename(FormatPDF), ContentType: "application/pdf"}
	case FormatXLSX:
		err = report.WriteXLSX(&buf, result)
		out = Export{
			Filename:    result.Filename(FormatXLSX),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		}
	default:
		return Export{}, &domainErrors.ValidationError{Fields: []string{fieldFormat}}
	}
	if err != nil {
		return Export{}, err
	}
	out.Data = buf.Bytes()
	return out, nil
}

