package auth

import (
	"errors"
	"time"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Token is an issued session token.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Session is what a valid token proves about its bearer.
type Session struct {
	Identity  model.Identity
	TokenID   string
	ExpiresAt time.Time
}

type Strategy interface {
	IssueToken(identity model.Identity) (Token, error)
	ParseToken(token string) (Session, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
