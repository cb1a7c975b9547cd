package model

import (
	"time"

	"github.com/google/uuid"
)

// Thread is the per-user-per-day grouping that entries and metrics attach to.
// At most one thread exists per (user, date); the database enforces it.
type Thread struct {
	Base
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_threads_user_id_date" json:"user_id"`
	Date   time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_threads_user_id_date" json:"date"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Thread) TableName() string {
	return "threads"
}
