package repository

import (
	"context"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	// Create appends a user. The remote backend rejects a duplicate id with
	// ErrAlreadyExists; the local fallback accepts it.
	Create(ctx context.Context, user model.User) error
	// List returns every known user.
	List(ctx context.Context) ([]model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
