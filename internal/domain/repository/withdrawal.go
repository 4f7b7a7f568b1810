package repository

import (
	"context"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
)

// WithdrawalRepository persists withdrawal records.
type WithdrawalRepository interface {
	Save(ctx context.Context, w model.Withdrawal) error
	// ListRecent returns at most RecentLimit records, newest first.
	ListRecent(ctx context.Context) ([]model.Withdrawal, error)
	// Delete removes a record; an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// ReceiptStore keeps receipt photos and hands out public URLs for them.
type ReceiptStore interface {
	Upload(ctx context.Context, data []byte, originalName string) (string, error)
}
