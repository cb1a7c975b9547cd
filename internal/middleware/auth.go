package middleware

import (
	"net/http"

	"github.com/ashdowne/daybook/internal/constants"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/ashdowne/daybook/internal/service"
	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates requests from the access-token cookie.
type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth loads the user behind the access-token cookie into the gin
// context, or aborts with a generic 401. No failure detail reaches the
// client.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		accessToken, err := c.Cookie(constants.AccessTokenCookie)
		if err != nil || accessToken == "" {
			logger.WarnWithContext(ctx, "Missing access token cookie").
				String("path", c.Request.URL.Path).
				Log()
			abortUnauthorized(c)
			return
		}

		user, err := m.auth.VerifyAccess(ctx, accessToken)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(constants.GinKeyCurrentUser, user)
		c.Request = c.Request.WithContext(ctxutil.WithUserID(ctx, user.ID))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, constants.BuildErrorResponse("authentication failed", nil))
}

// CurrentUser returns the authenticated user set by RequireAuth.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(constants.GinKeyCurrentUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
