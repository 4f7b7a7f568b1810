package test

import (
	"strings"
	"time"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	pkgAuth "github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// StrategyStub issues "token-<user id>" tokens that it can parse back.
type StrategyStub struct {
	IssueFn func(model.Identity) (pkgAuth.Token, error)
	ParseFn func(string) (pkgAuth.Session, error)
	NameVal string
	// Known maps issued token values to identities for the default parser.
	Known map[string]model.Identity
}

// NewStrategyStub creates a stub that remembers issued tokens.
func NewStrategyStub() *StrategyStub {
	return &StrategyStub{Known: make(map[string]model.Identity)}
}

// IssueToken returns deterministic tokens for tests.
func (s *StrategyStub) IssueToken(identity model.Identity) (pkgAuth.Token, error) {
	if s.IssueFn != nil {
		return s.IssueFn(identity)
	}
	value := "token-" + identity.UserID
	if s.Known != nil {
		s.Known[value] = identity
	}
	return pkgAuth.Token{Value: value, ID: "jti-" + identity.UserID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// ParseToken parses previously issued token strings.
func (s *StrategyStub) ParseToken(token string) (pkgAuth.Session, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	identity, ok := s.Known[token]
	if !ok || !strings.HasPrefix(token, "token-") {
		return pkgAuth.Session{}, pkgAuth.ErrInvalidToken
	}
	return pkgAuth.Session{
		Identity:  identity,
		TokenID:   "jti-" + identity.UserID,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// Name returns the strategy identifier used in tests.
func (s *StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements the middleware token parsing contract.
type TokenParserStub struct {
	Session pkgAuth.Session
	Err     error
	ParseFn func(string) (pkgAuth.Session, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (pkgAuth.Session, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return pkgAuth.Session{}, s.Err
	}
	return s.Session, nil
}

// Admin and Operator are ready-made identities.
var (
	Admin    = model.Identity{UserID: "admin-1", Name: "Admin", Email: "admin@example.com", Level: model.LevelAdmin}
	Operator = model.Identity{UserID: "op-1", Name: "Operador", Email: "op@example.com", Level: model.LevelOperator}
)

// SessionFor wraps identity in a session valid for an hour.
func SessionFor(identity model.Identity) pkgAuth.Session {
	return pkgAuth.Session{Identity: identity, TokenID: "jti-" + identity.UserID, ExpiresAt: time.Now().Add(time.Hour)}
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = (*StrategyStub)(nil)
