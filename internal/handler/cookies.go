package handler

import (
	"net/http"
	"time"

	"github.com/ashdowne/daybook/config"
	"github.com/ashdowne/daybook/internal/constants"
	"github.com/gin-gonic/gin"
)

// Session cookies are HttpOnly and scoped to the API base path; javascript
// never sees a token.

func sameSiteMode(name string) http.SameSite {
	switch name {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func setAuthCookies(c *gin.Context, cfg config.CookieConfig, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	c.SetSameSite(sameSiteMode(cfg.SameSite))
	c.SetCookie(constants.AccessTokenCookie, accessToken, int(accessTTL.Seconds()), cfg.Path, "", cfg.Secure, true)
	c.SetCookie(constants.RefreshTokenCookie, refreshToken, int(refreshTTL.Seconds()), cfg.Path, "", cfg.Secure, true)
}

func clearAuthCookies(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(sameSiteMode(cfg.SameSite))
	c.SetCookie(constants.AccessTokenCookie, "", -1, cfg.Path, "", cfg.Secure, true)
	c.SetCookie(constants.RefreshTokenCookie, "", -1, cfg.Path, "", cfg.Secure, true)
}
