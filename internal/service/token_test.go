package service

import (
	"testing"
	"time"

	"github.com/ashdowne/daybook/config"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/google/uuid"
)

func newTestTokenService() *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:     "test-secret-key-for-signing",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, time.Now())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a non-empty token")
	}

	got, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if got != userID {
		t.Errorf("Expected subject %s, got %s", userID, got)
	}
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	svc := newTestTokenService()

	// Issued long enough ago that the access TTL has lapsed.
	token, err := svc.GenerateAccessToken(uuid.New(), time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Fatal("Expected expired token to be rejected")
	} else if !apperrors.IsCode(err, apperrors.CodeUnauthorized) {
		t.Errorf("Expected unauthorized error, got %v", err)
	}
}

func TestAccessTokenWrongSecretRejected(t *testing.T) {
	signer := newTestTokenService()
	verifier := NewTokenService(config.JWTConfig{
		Secret:     "a-different-secret-entirely",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})

	token, err := signer.GenerateAccessToken(uuid.New(), time.Now())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := verifier.ValidateAccessToken(token); err == nil {
		t.Fatal("Expected token signed with another secret to be rejected")
	}
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	svc := newTestTokenService()

	tests := []struct {
		name  string
		token string
	}{
		{"Empty string", ""},
		{"Not a JWT", "definitely-not-a-jwt"},
		{"Truncated JWT", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateAccessToken(tt.token); err == nil {
				t.Error("Expected an error for malformed token")
			} else if !apperrors.IsCode(err, apperrors.CodeUnauthorized) {
				t.Errorf("Expected unauthorized error, got %v", err)
			}
		})
	}
}

func TestGenerateRefreshTokenUnique(t *testing.T) {
	svc := newTestTokenService()

	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		token, err := svc.GenerateRefreshToken()
		if err != nil {
			t.Fatalf("GenerateRefreshToken failed: %v", err)
		}
		if seen[token] {
			t.Fatal("Expected refresh tokens to be unique")
		}
		seen[token] = true
	}
}

func TestHashRefreshTokenDeterministic(t *testing.T) {
	svc := newTestTokenService()

	a := svc.HashRefreshToken("some-refresh-secret")
	b := svc.HashRefreshToken("some-refresh-secret")
	c := svc.HashRefreshToken("another-refresh-secret")

	if a != b {
		t.Errorf("Expected stable hash, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected different inputs to hash differently")
	}
	// hex-encoded 256-bit digest
	if len(a) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(a))
	}
	if a == "some-refresh-secret" {
		t.Error("Expected the hash not to equal the input")
	}
}
