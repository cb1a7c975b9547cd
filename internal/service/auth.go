package service

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/ashdowne/daybook/internal/store"
	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/google/uuid"
)

// AuthService drives the login, refresh, logout and access-verification
// flows. Every failure a client can trigger surfaces as a generic 401; the
// distinguishing detail goes to the log only.
type AuthService struct {
	verifier      IdentityVerifier
	tokens        *TokenService
	users         *store.Store[model.User]
	refreshTokens *store.Store[model.RefreshToken]
	tokenQueries  *store.RefreshTokenQueries
}

func NewAuthService(
	verifier IdentityVerifier,
	tokens *TokenService,
	users *store.Store[model.User],
	refreshTokens *store.Store[model.RefreshToken],
	tokenQueries *store.RefreshTokenQueries,
) *AuthService {
	return &AuthService{
		verifier:      verifier,
		tokens:        tokens,
		users:         users,
		refreshTokens: refreshTokens,
		tokenQueries:  tokenQueries,
	}
}

// Cookie max-ages mirror the token lifetimes.
func (s *AuthService) AccessTTL() time.Duration  { return s.tokens.AccessTTL() }
func (s *AuthService) RefreshTTL() time.Duration { return s.tokens.RefreshTTL() }

// Session is the outcome of a successful login or refresh. The token strings
// are handed to the transport layer for cookie delivery and appear nowhere
// else.
type Session struct {
	User         model.User
	AccessToken  string
	RefreshToken string
}

// Login verifies the external identity token, resolves or creates the user,
// and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, idToken string) (*Session, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Login")

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeUnauthorized) {
			logger.WarnWithContext(ctx, "Identity verification failed").
				Err(err).
				Log()
			return nil, apperrors.ErrUnauthorized
		}
		logger.ErrorWithContext(ctx, "Unexpected error during identity verification").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	session, err := s.issueSession(ctx, *user)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "User logged in").
		String("user_id", user.ID.String()).
		String("email", user.Email).
		Log()
	return session, nil
}

// resolveUser maps a verified identity onto a user row: patch mutable profile
// fields when the subject is known, upsert a new row when it is not. Profile
// fields are only overwritten with non-empty values.
func (s *AuthService) resolveUser(ctx context.Context, identity *Identity) (*model.User, error) {
	now := time.Now().UTC()

	existing, err := s.users.GetOneByColumn(ctx, "external_auth_sub", identity.Subject)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		changes := map[string]any{"last_login_at": now}
		if identity.Email != "" {
			changes["email"] = identity.Email
		}
		if identity.Name != nil {
			changes["name"] = *identity.Name
		}
		if identity.Picture != nil {
			changes["picture"] = *identity.Picture
		}

		patched, err := s.users.PatchByIDs(ctx, []store.Patch{{ID: existing.ID, Changes: changes}}, now)
		if err != nil {
			return nil, err
		}
		return &patched[0], nil
	}

	if identity.Email == "" {
		return nil, apperrors.Validation("email is required for account creation")
	}

	row := map[string]any{
		"email":             identity.Email,
		"external_auth_sub": identity.Subject,
		"name":              identity.Name,
		"picture":           identity.Picture,
		"last_login_at":     now,
	}
	created, err := s.users.Upsert(ctx, []map[string]any{row},
		[]string{"email", "external_auth_sub"}, []string{"id", "created_at"}, now)
	if err != nil {
		return nil, err
	}
	if len(created) != 1 {
		return nil, apperrors.Internal(fmt.Sprintf(
			"expected exactly one user from login upsert, got %d", len(created)))
	}

	logger.InfoWithContext(ctx, "New user created from login").
		String("user_id", created[0].ID.String()).
		Log()
	return &created[0], nil
}

func (s *AuthService) issueSession(ctx context.Context, user model.User) (*Session, error) {
	now := time.Now().UTC()

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, now)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate access token").
			String("user_id", user.ID.String()).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshSecret, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate refresh token").
			String("user_id", user.ID.String()).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	row := &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: s.tokens.HashRefreshToken(refreshSecret),
		ExpiresAt: now.Add(s.tokens.RefreshTTL()),
	}
	if _, err := s.refreshTokens.Create(ctx, []*model.RefreshToken{row}); err != nil {
		return nil, err
	}

	return &Session{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshSecret,
	}, nil
}

// Refresh redeems a refresh-token secret for a new token pair. The matched
// row is revoked first, so a secret can never be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshSecret string) (*Session, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Refresh")

	if refreshSecret == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	now := time.Now().UTC()
	hash := s.tokens.HashRefreshToken(refreshSecret)

	row, err := s.tokenQueries.GetActiveByHash(ctx, hash, now)
	if err != nil {
		return nil, err
	}
	if row == nil {
		logger.WarnWithContext(ctx, "Refresh token not found, expired or revoked").Log()
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if err := s.tokenQueries.Revoke(ctx, row.ID, now); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logger.WarnWithContext(ctx, "Refresh token references a missing user").
			String("user_id", row.UserID.String()).
			Log()
		return nil, apperrors.ErrUnauthorized
	}

	session, err := s.issueSession(ctx, *user)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "Session refreshed").
		String("user_id", user.ID.String()).
		Log()
	return session, nil
}

// Logout revokes every active refresh token the user holds, in one statement.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	ctx = ctxutil.WithOperation(ctx, "service", "Logout")

	revoked, err := s.tokenQueries.RevokeAllForUser(ctx, userID, time.Now().UTC())
	if err != nil {
		return err
	}

	logger.InfoWithContext(ctx, "User logged out").
		String("user_id", userID.String()).
		Int64("revoked_tokens", revoked).
		Log()
	return nil
}

// VerifyAccess authenticates one request: validate the access token, load the
// user. Malformed and expired tokens log as warnings, unexpected failures as
// errors; the caller always receives the same generic 401.
func (s *AuthService) VerifyAccess(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	userID, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		logger.WarnWithContext(ctx, "Access token rejected").
			Err(err).
			Log()
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to load user for access token").
			String("user_id", userID.String()).
			Err(err).
			Log()
		return nil, apperrors.ErrUnauthorized
	}
	if user == nil {
		logger.WarnWithContext(ctx, "Access token references a missing user").
			String("user_id", userID.String()).
			Log()
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// CleanupTokens removes refresh rows that can never be redeemed again.
// Idempotent and safe to call at any time.
func (s *AuthService) CleanupTokens(ctx context.Context) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CleanupTokens")

	purged, err := s.tokenQueries.DeleteExpiredAndRevoked(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	logger.InfoWithContext(ctx, "Refresh token cleanup completed").
		Int64("purged", purged).
		Log()
	return purged, nil
}
