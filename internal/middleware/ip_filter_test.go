package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ashdowne/daybook/config"
	"github.com/gin-gonic/gin"
)

func ipFilterEngine(allowed []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IPFilter(config.SecurityConfig{AllowedIPs: allowed}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestIPFilter(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		headers    map[string]string
		remoteAddr string
		wantStatus int
	}{
		{
			name:       "Empty allow list passes everything",
			allowed:    nil,
			remoteAddr: "203.0.113.9:1234",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Allowed socket address",
			allowed:    []string{"203.0.113.9"},
			remoteAddr: "203.0.113.9:1234",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Disallowed socket address",
			allowed:    []string{"203.0.113.9"},
			remoteAddr: "198.51.100.7:1234",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Forwarded-for first hop wins",
			allowed:    []string{"203.0.113.9"},
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			remoteAddr: "10.0.0.1:1234",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Forwarded-for disallowed client",
			allowed:    []string{"203.0.113.9"},
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.7"},
			remoteAddr: "203.0.113.9:1234",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Real-IP header honored",
			allowed:    []string{"203.0.113.9"},
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			remoteAddr: "10.0.0.1:1234",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ipFilterEngine(tt.allowed)

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestResolveClientIPPrecedence(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ping", nil)
	c.Request.RemoteAddr = "10.0.0.1:1234"
	c.Request.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.2")
	c.Request.Header.Set("X-Real-IP", "198.51.100.7")

	if got := resolveClientIP(c); got != "203.0.113.9" {
		t.Errorf("Expected forwarded-for to take precedence, got %s", got)
	}

	c.Request.Header.Del("X-Forwarded-For")
	if got := resolveClientIP(c); got != "198.51.100.7" {
		t.Errorf("Expected real-ip fallback, got %s", got)
	}
}
