package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
	pkgAuth "github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
)

// Input field names reported by user validation.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldLevel    = "level"
)

// NewUser is the input of an administrator creating an account.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Level    model.Level
}

// UserUseCase manages accounts.
type UserUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	logger *slog.Logger
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, logger *slog.Logger) *UserUseCase {
	return &UserUseCase{users: users, hasher: hasher, logger: logger}
}

// CreateUser stores a new account on behalf of an administrator.
func (u *UserUseCase) CreateUser(ctx context.Context, actor model.Identity, in NewUser) (model.User, error) {
	if !actor.IsAdmin() {
		return model.User{}, domainErrors.ErrForbidden
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	if in.Level == "" {
		in.Level = model.LevelOperator
	}

	var missing []string
	if in.Name == "" {
		missing = append(missing, FieldName)
	}
	if in.Email == "" {
		missing = append(missing, FieldEmail)
	}
	if in.Password == "" {
		missing = append(missing, FieldPassword)
	}
	if !in.Level.Valid() {
		missing = append(missing, FieldLevel)
	}
	if len(missing) > 0 {
		return model.User{}, &domainErrors.ValidationError{Fields: missing}
	}

	// Sign-in resolves accounts by email, so an email maps to one user on
	// every backend.
	switch _, err := u.users.GetByEmail(ctx, in.Email); {
	case err == nil:
		return model.User{}, domainErrors.Storage("create user", domainErrors.ErrAlreadyExists)
	case !errors.Is(err, domainErrors.ErrNotFound):
		return model.User{}, err
	}

	return u.create(ctx, in)
}

func (u *UserUseCase) create(ctx context.Context, in NewUser) (model.User, error) {
	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, err
	}

	usr := model.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Level:        in.Level,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return model.User{}, err
	}
	return usr, nil
}

// ListUsers returns every account. Read failures are logged and answered
// with an empty list.
func (u *UserUseCase) ListUsers(ctx context.Context, actor model.Identity) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	users, err := u.users.List(ctx)
	if err != nil {
		u.logger.Warn("list users failed", slog.String("error", err.Error()))
		return []model.User{}, nil
	}
	return users, nil
}

// EnsureAdmin creates the bootstrap administrator unless an account with
// email already exists. It reports whether a user was created.
func (u *UserUseCase) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}

	_, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return false, err
	}

	if strings.TrimSpace(name) == "" {
		name = "Administrador"
	}
	if _, err := u.create(ctx, NewUser{Name: strings.TrimSpace(name), Email: email, Password: password, Level: model.LevelAdmin}); err != nil {
		return false, err
	}
	u.logger.Info("bootstrap administrator created", slog.String("email", email))
	return true, nil
}
