package config

import (
	"strings"
	"testing"
	"time"
)

func validTestConfig() *Config {
	return &Config{
		JWT: JWTConfig{
			Secret:     "secret",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
		},
		Auth:       AuthConfig{GoogleClientID: "client-id.apps.googleusercontent.com"},
		Encryption: EncryptionConfig{Key: "base64-key"},
		Cookie:     CookieConfig{SameSite: "lax", Path: "/api"},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "Valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "Missing JWT secret",
			mutate:  func(c *Config) { c.JWT.Secret = "" },
			wantErr: "JWT_SECRET",
		},
		{
			name:    "Missing encryption key",
			mutate:  func(c *Config) { c.Encryption.Key = "" },
			wantErr: "ENCRYPTION_KEY",
		},
		{
			name:    "Refresh TTL not longer than access TTL",
			mutate:  func(c *Config) { c.JWT.RefreshTTL = c.JWT.AccessTTL },
			wantErr: "JWT_REFRESH_TTL",
		},
		{
			name:    "No Google client without dev mode",
			mutate:  func(c *Config) { c.Auth.GoogleClientID = "" },
			wantErr: "GOOGLE_CLIENT_ID",
		},
		{
			name: "Dev mode lifts the Google client requirement",
			mutate: func(c *Config) {
				c.Auth.GoogleClientID = ""
				c.Auth.DevMode = true
			},
		},
		{
			name:    "Bad same-site value",
			mutate:  func(c *Config) { c.Cookie.SameSite = "sideways" },
			wantErr: "COOKIE_SAME_SITE",
		},
		{
			name:   "Same-site none accepted",
			mutate: func(c *Config) { c.Cookie.SameSite = "none" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConnectionStrings(t *testing.T) {
	cfg := validTestConfig()
	cfg.Database = DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		Name:     "daybook",
		User:     "svc",
		Password: "pw",
		SSLMode:  "require",
	}
	cfg.Redis = RedisConfig{Host: "cache.internal", Port: 6380}

	dsn := cfg.DatabaseConnectionString()
	want := "host=db.internal port=5433 user=svc password=pw dbname=daybook sslmode=require"
	if dsn != want {
		t.Errorf("Expected %q, got %q", want, dsn)
	}

	if addr := cfg.RedisAddress(); addr != "cache.internal:6380" {
		t.Errorf("Expected cache.internal:6380, got %s", addr)
	}
}
