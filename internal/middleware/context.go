package middleware

import (
	"context"
	"time"

	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ContextMiddleware seeds the request context with logging metadata and a
// per-request timeout, and logs request start/completion.
func ContextMiddleware(module string, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, module, c.Request.URL.Path)
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		logger.DebugWithContext(ctx, "Request started").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			String("query", c.Request.URL.RawQuery).
			Log()

		c.Next()

		logger.InfoWithContext(ctx, "Request completed").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			Int("status_code", c.Writer.Status()).
			Int("response_size", c.Writer.Size()).
			Duration(time.Since(start)).
			Log()
	}
}
