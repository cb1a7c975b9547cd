package handler

import (
	"net/http"

	"github.com/ashdowne/daybook/config"
	"github.com/ashdowne/daybook/internal/constants"
	"github.com/ashdowne/daybook/internal/dto"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/middleware"
	"github.com/ashdowne/daybook/internal/service"
	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth      *service.AuthService
	cookieCfg config.CookieConfig
}

func NewAuthHandler(auth *service.AuthService, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookieCfg: cookieCfg}
}

// Login exchanges a Google ID token for a cookie session.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")
	c.Request = c.Request.WithContext(ctx)

	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.auth.Login(ctx, req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	setAuthCookies(c, h.cookieCfg, session.AccessToken, session.RefreshToken,
		h.auth.AccessTTL(), h.auth.RefreshTTL())
	c.JSON(http.StatusOK, dto.NewSingleItem(dto.AuthResponse{
		User: dto.NewUserResponse(session.User),
	}))
}

// Refresh rotates the refresh token and reissues both cookies.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Refresh")
	c.Request = c.Request.WithContext(ctx)

	refreshSecret, err := c.Cookie(constants.RefreshTokenCookie)
	if err != nil || refreshSecret == "" {
		logger.WarnWithContext(ctx, "Missing refresh token cookie").Log()
		clearAuthCookies(c, h.cookieCfg)
		respondError(c, apperrors.ErrInvalidRefreshToken)
		return
	}

	session, err := h.auth.Refresh(ctx, refreshSecret)
	if err != nil {
		clearAuthCookies(c, h.cookieCfg)
		respondError(c, err)
		return
	}

	setAuthCookies(c, h.cookieCfg, session.AccessToken, session.RefreshToken,
		h.auth.AccessTTL(), h.auth.RefreshTTL())
	c.JSON(http.StatusOK, dto.NewSingleItem(dto.AuthResponse{
		User: dto.NewUserResponse(session.User),
	}))
}

// Logout revokes every active refresh token and clears both cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")
	c.Request = c.Request.WithContext(ctx)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.auth.Logout(ctx, user.ID); err != nil {
		respondError(c, err)
		return
	}

	clearAuthCookies(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(dto.NewUserResponse(*user)))
}

// CleanupTokens purges refresh rows that can never be redeemed again.
func (h *AuthHandler) CleanupTokens(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CleanupTokens")
	c.Request = c.Request.WithContext(ctx)

	purged, err := h.auth.CleanupTokens(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSingleItem(map[string]int64{"purged": purged}))
}
