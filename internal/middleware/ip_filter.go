package middleware

import (
	"net/http"
	"strings"

	"github.com/ashdowne/daybook/config"
	"github.com/ashdowne/daybook/internal/constants"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/gin-gonic/gin"
)

// IPFilter restricts the API to the configured client IPs. With an empty
// allow-list it is a pass-through. The X-Forwarded-For header takes
// precedence over the socket address: the deployment sits behind a load
// balancer that sets it.
func IPFilter(cfg config.SecurityConfig) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.AllowedIPs))
	for _, ip := range cfg.AllowedIPs {
		allowed[ip] = true
	}

	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}

		clientIP := resolveClientIP(c)
		if clientIP == "" {
			logger.WarnWithContext(c.Request.Context(), "Could not determine client IP").
				String("path", c.Request.URL.Path).
				Log()
			c.AbortWithStatusJSON(http.StatusForbidden,
				constants.BuildErrorResponse("could not determine client IP address", nil))
			return
		}

		if !allowed[clientIP] {
			logger.WarnWithContext(c.Request.Context(), "Request from unauthorized IP").
				String("client_ip", clientIP).
				String("path", c.Request.URL.Path).
				Log()
			c.AbortWithStatusJSON(http.StatusForbidden,
				constants.BuildErrorResponse("IP address not allowed", nil))
			return
		}

		c.Next()
	}
}

func resolveClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		// X-Forwarded-For can list multiple hops, the client is first.
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	return c.ClientIP()
}
