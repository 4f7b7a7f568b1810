package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
)

const (
	// SessionContextKey is a gin context key for the authenticated session.
	SessionContextKey = "session"
	// TokenContextKey is a gin context key for the raw bearer token.
	TokenContextKey = "token"
	authCookieName  = "sysretirada_token"
)

// TokenParser verifies session tokens.
type TokenParser interface {
	ParseToken(token string) (pkgAuth.Session, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		session, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(SessionContextKey, session)
		c.Set(TokenContextKey, token)
		c.Next()
	}
}

// AdminRequired lets only administrators through. It must run after
// AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !session.Identity.IsAdmin() {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by AuthRequired.
func CurrentSession(c *gin.Context) (pkgAuth.Session, bool) {
	val, ok := c.Get(SessionContextKey)
	if !ok {
		return pkgAuth.Session{}, false
	}
	session, ok := val.(pkgAuth.Session)
	return session, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(authCookieName, token, maxAge, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearAuthCookie removes the auth token cookie.
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", false, true)
}
