package app

import (
	"errors"
	"net/http"

	"socialbook/internal/service"
	"socialbook/internal/util"

	"github.com/gin-gonic/gin"
)

// handleServiceError converts a service error kind into the HTTP status
// the API contract promises. Authorization failures map to 400, not 403.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		util.NotFound(c, err.Error())
	case errors.Is(err, service.ErrRateLimited):
		util.TooManyRequests(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		util.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrConflict):
		util.BadRequest(c, err.Error())
	default:
		util.ErrorResponse(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
