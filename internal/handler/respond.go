package handler

import (
	"net/http"

	"github.com/ashdowne/daybook/internal/constants"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/ashdowne/daybook/pkg/validation"
	"github.com/gin-gonic/gin"
)

// respondError maps a classified error to its status code. Server-side
// failures are logged in full and returned with a generic message; client
// errors carry their message through.
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	status := apperrors.ToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		logger.ErrorWithContext(ctx, "Request failed").
			String("path", c.Request.URL.Path).
			Int("http_status", status).
			Err(err).
			Log()
		c.JSON(status, constants.BuildErrorResponse("internal server error", nil))
		return
	}

	logger.WarnWithContext(ctx, "Request rejected").
		String("path", c.Request.URL.Path).
		Int("http_status", status).
		Err(err).
		Log()
	c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
}

// respondBindError reports a malformed request body or query string.
func respondBindError(c *gin.Context, err error) {
	logger.WarnWithContext(c.Request.Context(), "Request binding failed").
		String("path", c.Request.URL.Path).
		Err(err).
		Log()
	c.JSON(http.StatusUnprocessableEntity, constants.BuildErrorResponse("invalid request", validation.Describe(err)))
}
