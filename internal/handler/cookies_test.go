package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ashdowne/daybook/config"
	"github.com/ashdowne/daybook/internal/constants"
	"github.com/gin-gonic/gin"
)

func TestSameSiteMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want http.SameSite
	}{
		{"Strict", "strict", http.SameSiteStrictMode},
		{"None", "none", http.SameSiteNoneMode},
		{"Lax", "lax", http.SameSiteLaxMode},
		{"Unknown falls back to lax", "whatever", http.SameSiteLaxMode},
		{"Empty falls back to lax", "", http.SameSiteLaxMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameSiteMode(tt.mode); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSetAuthCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", nil)

	cfg := config.CookieConfig{Secure: true, SameSite: "strict", Path: "/api"}
	setAuthCookies(c, cfg, "access-jwt", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	cookies := w.Result().Cookies()
	access := cookieByName(cookies, constants.AccessTokenCookie)
	refresh := cookieByName(cookies, constants.RefreshTokenCookie)

	if access == nil || refresh == nil {
		t.Fatalf("Expected both cookies, got %v", cookies)
	}
	if access.Value != "access-jwt" {
		t.Errorf("Expected access cookie value access-jwt, got %s", access.Value)
	}
	if access.MaxAge != int((15 * time.Minute).Seconds()) {
		t.Errorf("Expected access max-age 900, got %d", access.MaxAge)
	}
	if refresh.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Errorf("Expected refresh max-age 604800, got %d", refresh.MaxAge)
	}

	for _, ck := range []*http.Cookie{access, refresh} {
		if !ck.HttpOnly {
			t.Errorf("Expected %s to be HttpOnly", ck.Name)
		}
		if !ck.Secure {
			t.Errorf("Expected %s to be Secure", ck.Name)
		}
		if ck.Path != "/api" {
			t.Errorf("Expected %s path /api, got %s", ck.Name, ck.Path)
		}
		if ck.SameSite != http.SameSiteStrictMode {
			t.Errorf("Expected %s SameSite strict, got %v", ck.Name, ck.SameSite)
		}
	}
}

func TestClearAuthCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)

	clearAuthCookies(c, config.CookieConfig{SameSite: "lax", Path: "/api"})

	for _, name := range []string{constants.AccessTokenCookie, constants.RefreshTokenCookie} {
		ck := cookieByName(w.Result().Cookies(), name)
		if ck == nil {
			t.Fatalf("Expected %s cookie to be written", name)
		}
		if ck.Value != "" {
			t.Errorf("Expected %s to be emptied, got %q", name, ck.Value)
		}
		if ck.MaxAge >= 0 {
			t.Errorf("Expected %s max-age below zero, got %d", name, ck.MaxAge)
		}
	}
}
