package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ashdowne/daybook/config"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

// TokenService mints and verifies the two session credentials: short-lived
// signed access tokens and long-lived opaque refresh tokens. Refresh tokens
// are stored only as a one-way hash; the hash is deterministic so the stored
// row can be found by hashing the presented secret.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// GenerateAccessToken mints an HS256 token with the user id as subject.
func (s *TokenService) GenerateAccessToken(userID uuid.UUID, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken verifies signature and expiry, returning the user id
// from the subject claim. All failure modes surface as the same unauthorized
// error; callers log the detail, clients only ever see "invalid token".
func (s *TokenService) ValidateAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, apperrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}
	return userID, nil
}

// GenerateRefreshToken returns a high-entropy opaque token secret.
func (s *TokenService) GenerateRefreshToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// HashRefreshToken produces the deterministic one-way hash stored in place of
// the secret. The secret already carries full entropy, so an unsalted digest
// is sufficient and keeps the lookup a single indexed equality match.
func (s *TokenService) HashRefreshToken(refreshToken string) string {
	digest := sha3.Sum256([]byte(refreshToken))
	return hex.EncodeToString(digest[:])
}
