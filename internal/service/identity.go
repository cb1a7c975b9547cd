package service

import (
	"context"
	"fmt"

	"github.com/ashdowne/daybook/config"
	"github.com/ashdowne/daybook/internal/constants"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/coreos/go-oidc/v3/oidc"
)

const googleIssuer = "https://accounts.google.com"

// Identity is the verified result of an external login token.
type Identity struct {
	Subject string
	Email   string
	Name    *string
	Picture *string
}

// IdentityVerifier checks an opaque external token and extracts the identity
// it asserts.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// NewIdentityVerifier picks the verifier for the configured mode. The dev
// verifier is only ever constructed when dev mode is explicitly on, so the
// sentinel-token bypass is unreachable in normal deployments.
func NewIdentityVerifier(ctx context.Context, cfg config.AuthConfig) (IdentityVerifier, error) {
	if cfg.DevMode {
		logger.WarnWithContext(ctx, "Auth dev mode enabled, sentinel login token accepted").Log()
		return &DevVerifier{}, nil
	}
	return NewGoogleVerifier(ctx, cfg.GoogleClientID)
}

// GoogleVerifier validates Google ID tokens: signature against Google's JWKS,
// issuer, audience and expiry.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google OIDC provider: %w", err)
	}
	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	identity := &Identity{
		Subject: idToken.Subject,
		Email:   claims.Email,
	}
	if claims.Name != "" {
		identity.Name = &claims.Name
	}
	if claims.Picture != "" {
		identity.Picture = &claims.Picture
	}
	return identity, nil
}

// DevVerifier accepts only the fixed sentinel token and returns a fixed
// synthetic identity. Anything else fails exactly like a bad Google token.
type DevVerifier struct{}

func (v *DevVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	if rawToken != constants.MockGoogleIDToken {
		return nil, apperrors.ErrInvalidToken
	}
	name := "Dev User"
	return &Identity{
		Subject: "mock-dev-user-123",
		Email:   "dev@localhost.com",
		Name:    &name,
	}, nil
}
