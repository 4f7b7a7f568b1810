package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
)

const issuer = "sysretirada"

// Claims carries the session identity inside a JWT.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Level string `json:"level"`
	jwt.RegisteredClaims
}

// JWTStrategy issues and verifies HS256 tokens.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken signs a token for identity.
func (s *JWTStrategy) IssueToken(identity model.Identity) (Token, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	id := uuid.NewString()

	claims := Claims{
		Name:  identity.Name,
		Email: identity.Email,
		Level: string(identity.Level),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   identity.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ID: id, ExpiresAt: expires}, nil
}

// ParseToken validates token and returns the session it carries.
func (s *JWTStrategy) ParseToken(token string) (Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}

	level := model.Level(claims.Level)
	if claims.Subject == "" || claims.ID == "" || !level.Valid() {
		return Session{}, ErrInvalidToken
	}

	return Session{
		Identity: model.Identity{
			UserID: claims.Subject,
			Name:   claims.Name,
			Email:  claims.Email,
			Level:  level,
		},
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
