package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	pkgAuth "github.com/gustavo230282-a11y/controle-de-retiradas/internal/pkg/auth"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/dto"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated caller from context.
func CurrentIdentity(c *gin.Context) model.Identity {
	session, _ := middleware.CurrentSession(c)
	return session.Identity
}

// StatusFor maps a use case error to an HTTP status.
func StatusFor(err error) int {
	var validation *domainErrors.ValidationError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials), errors.Is(err, pkgAuth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrSubmissionInProgress),
		errors.Is(err, domainErrors.ErrNothingToExport),
		errors.Is(err, domainErrors.ErrPeriodRequired):
		return http.StatusConflict
	case domainErrors.IsStorage(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := StatusFor(err)
	body := dto.ErrorResponse{Error: err.Error()}

	var validation *domainErrors.ValidationError
	if errors.As(err, &validation) {
		body.Fields = validation.Fields
	}
	if status == http.StatusInternalServerError {
		body.Error = http.StatusText(status)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}
