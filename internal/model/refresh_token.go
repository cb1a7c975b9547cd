package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken stores a one-way hash of an issued refresh token. The token
// secret itself never touches the database.
type RefreshToken struct {
	Base
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:ix_refresh_tokens_user_id" json:"user_id"`
	TokenHash string     `gorm:"column:token_hash;not null;unique" json:"-"`
	ExpiresAt time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at" json:"revoked_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Active reports whether the token can still be redeemed at the given time.
func (t *RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}
