package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
	pkgAuth "github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
)

// AuthUseCase handles sign-in, sign-out and token verification.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	denylist *pkgAuth.Denylist
	events   *SessionEvents
	now      func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
	denylist *pkgAuth.Denylist,
	events *SessionEvents,
) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		hasher:   hasher,
		tokens:   strategy,
		denylist: denylist,
		events:   events,
		now:      time.Now,
	}
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignIn checks credentials and issues a session token. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (u *AuthUseCase) SignIn(ctx context.Context, email, password string) (pkgAuth.Token, *model.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return pkgAuth.Token{}, nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return pkgAuth.Token{}, nil, domainErrors.ErrInvalidCredentials
		}
		return pkgAuth.Token{}, nil, err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return pkgAuth.Token{}, nil, domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.Identity())
	if err != nil {
		return pkgAuth.Token{}, nil, err
	}

	u.events.Publish(SessionEvent{Kind: SessionSignedIn, Identity: usr.Identity(), At: u.now()})
	return token, usr, nil
}

// SignOut revokes the session's token until it would have expired.
func (u *AuthUseCase) SignOut(session pkgAuth.Session) {
	u.denylist.Revoke(session.TokenID, session.ExpiresAt)
	u.events.Publish(SessionEvent{Kind: SessionSignedOut, Identity: session.Identity, At: u.now()})
}

// ParseToken verifies token and rejects revoked ones.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Session, error) {
	if token == "" {
		return pkgAuth.Session{}, pkgAuth.ErrInvalidToken
	}
	session, err := u.tokens.ParseToken(token)
	if err != nil {
		return pkgAuth.Session{}, err
	}
	if u.denylist.Revoked(session.TokenID) {
		return pkgAuth.Session{}, pkgAuth.ErrInvalidToken
	}
	return session, nil
}

// Events exposes the session broadcaster.
func (u *AuthUseCase) Events() *SessionEvents {
	return u.events
}
