package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/dto"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/middleware"
)

// AuthHandler processes sign-in and sign-out.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, user, err := h.facade.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	maxAge := int(time.Until(token.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	middleware.SetAuthCookie(c, token.Value, maxAge)
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      toUserResponse(*user),
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if session, ok := middleware.CurrentSession(c); ok {
		h.facade.SignOut(session)
	}
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := CurrentIdentity(c)
	c.JSON(http.StatusOK, dto.UserResponse{
		ID:    identity.UserID,
		Name:  identity.Name,
		Email: identity.Email,
		Level: string(identity.Level),
	})
}

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Level: string(u.Level)}
}
