package store

import (
	"context"
	"time"

	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenQueries holds the token-state reads and writes that go beyond
// the generic store: active-token lookup, bulk revocation and cleanup.
type RefreshTokenQueries struct {
	db *gorm.DB
}

func NewRefreshTokenQueries(db *gorm.DB) *RefreshTokenQueries {
	return &RefreshTokenQueries{db: db}
}

// GetActiveByHash returns the non-revoked, non-expired token row matching the
// hash, or nil.
func (q *RefreshTokenQueries) GetActiveByHash(ctx context.Context, tokenHash string, now time.Time) (*model.RefreshToken, error) {
	var rows []model.RefreshToken
	err := q.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Where("revoked_at IS NULL").
		Where("expires_at > ?", now).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, classify(err, "refresh_tokens")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Revoke stamps one token as revoked. The update only matches while
// revoked_at is still null, so of two concurrent redemptions of the same
// secret exactly one wins; the loser sees zero affected rows and fails.
func (q *RefreshTokenQueries) Revoke(ctx context.Context, tokenID uuid.UUID, now time.Time) error {
	result := q.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("id = ?", tokenID).
		Where("revoked_at IS NULL").
		Updates(map[string]any{"revoked_at": now, "updated_at": now})
	if result.Error != nil {
		return classify(result.Error, "refresh_tokens")
	}
	return revocationOutcome(result.RowsAffected)
}

// revocationOutcome maps the revocation update's row count to an error. Zero
// rows means another request already consumed the token.
func revocationOutcome(affected int64) error {
	if affected == 0 {
		return apperrors.ErrInvalidRefreshToken
	}
	return nil
}

// RevokeAllForUser stamps every active token of the user as revoked in one
// statement.
func (q *RefreshTokenQueries) RevokeAllForUser(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	result := q.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("user_id = ?", userID).
		Where("revoked_at IS NULL").
		Where("expires_at > ?", now).
		Updates(map[string]any{"revoked_at": now, "updated_at": now})
	if result.Error != nil {
		return 0, classify(result.Error, "refresh_tokens")
	}
	return result.RowsAffected, nil
}

// DeleteExpiredAndRevoked removes rows that can never be redeemed again.
// Idempotent; returns the number of rows purged.
func (q *RefreshTokenQueries) DeleteExpiredAndRevoked(ctx context.Context, now time.Time) (int64, error) {
	result := q.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", now).
		Delete(&model.RefreshToken{})
	if result.Error != nil {
		return 0, classify(result.Error, "refresh_tokens")
	}
	return result.RowsAffected, nil
}
