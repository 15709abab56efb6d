package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/api/shared/errors"
	"github.com/feral-file/brainrot-ledger/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, errors.NewValidationError(message))
}

// respondUnauthorized responds with an authentication error
func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, errors.NewUnauthorizedError(message))
}

// respondError maps an executor error to its HTTP response.
// Ledger rejections are expected and logged at debug; anything else is logged as an error.
func respondError(c *gin.Context, err error, message string) {
	status, apiErr := errors.FromError(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("operation", message))
	} else {
		logger.DebugCtx(c.Request.Context(), message, zap.Error(err), zap.Int("status", status))
	}
	c.JSON(status, apiErr)
}
