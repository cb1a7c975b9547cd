package service

import (
	"context"
	"testing"

	"github.com/ashdowne/daybook/config"
	"github.com/ashdowne/daybook/internal/constants"
	apperrors "github.com/ashdowne/daybook/internal/errors"
)

func TestDevVerifierAcceptsSentinelToken(t *testing.T) {
	v := &DevVerifier{}

	identity, err := v.Verify(context.Background(), constants.MockGoogleIDToken)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if identity.Subject != "mock-dev-user-123" {
		t.Errorf("Expected subject mock-dev-user-123, got %s", identity.Subject)
	}
	if identity.Email != "dev@localhost.com" {
		t.Errorf("Expected email dev@localhost.com, got %s", identity.Email)
	}
	if identity.Name == nil || *identity.Name != "Dev User" {
		t.Errorf("Expected name Dev User, got %v", identity.Name)
	}
}

func TestDevVerifierRejectsOtherTokens(t *testing.T) {
	v := &DevVerifier{}

	tests := []struct {
		name  string
		token string
	}{
		{"Empty token", ""},
		{"Arbitrary string", "some-real-looking-token"},
		{"Sentinel with suffix", constants.MockGoogleIDToken + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Verify(context.Background(), tt.token); err == nil {
				t.Error("Expected token to be rejected")
			} else if !apperrors.IsCode(err, apperrors.CodeUnauthorized) {
				t.Errorf("Expected unauthorized error, got %v", err)
			}
		})
	}
}

func TestNewIdentityVerifierDevMode(t *testing.T) {
	v, err := NewIdentityVerifier(context.Background(), config.AuthConfig{DevMode: true})
	if err != nil {
		t.Fatalf("NewIdentityVerifier failed: %v", err)
	}
	if _, ok := v.(*DevVerifier); !ok {
		t.Errorf("Expected DevVerifier in dev mode, got %T", v)
	}
}
