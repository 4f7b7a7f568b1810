package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/dto"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/usecase"
)

// UserHandler serves account administration.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// List handles GET /api/admin/users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.facade.ListUsers(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u))
	}
	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/admin/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.facade.CreateUser(c.Request.Context(), CurrentIdentity(c), usecase.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Level:    model.Level(req.Level),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}
