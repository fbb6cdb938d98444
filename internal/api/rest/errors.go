package rest

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citypass-labs/ticketd/internal/api/shared/errors"
	"github.com/citypass-labs/ticketd/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error, passing structured
// APIErrors through unchanged
func respondValidationError(c *gin.Context, err error) {
	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		c.JSON(http.StatusBadRequest, apiErr)
		return
	}
	c.JSON(http.StatusBadRequest, errors.NewValidationError(err.Error()))
}

// respondForbidden responds with a forbidden error
func respondForbidden(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusForbidden, errors.NewForbiddenError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.NewNotFoundError(message, details...))
}

// respondConflict responds with a conflict error
func respondConflict(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusConflict, errors.NewConflictError(message, details...))
}

// respondExhausted responds with 410 Gone for exhausted supply
func respondExhausted(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusGone, errors.NewExhaustedError(message, details...))
}

// respondUpstreamError responds with 500 for a collaborator failure, logging
// the detail instead of echoing it to the caller
func respondUpstreamError(c *gin.Context, err error, message string) {
	logger.Error(err)
	c.JSON(http.StatusInternalServerError, errors.NewUpstreamError(message))
}

// respondInternalError responds with an internal server error, logging the
// detail instead of echoing it to the caller
func respondInternalError(c *gin.Context, err error, message string) {
	logger.Error(err)
	c.JSON(http.StatusInternalServerError, errors.NewInternalError(message))
}
