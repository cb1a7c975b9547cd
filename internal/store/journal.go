package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryWithDate is an entry row joined to its thread's calendar date.
type EntryWithDate struct {
	ID                uuid.UUID `gorm:"column:id"`
	ThreadID          uuid.UUID `gorm:"column:thread_id"`
	EncryptedMarkdown *string   `gorm:"column:encrypted_markdown"`
	WrittenAt         time.Time `gorm:"column:written_at"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
	Date              time.Time `gorm:"column:date"`
}

// JournalQueries holds the cross-table reads the generic store cannot
// express: entry/thread joins for date and calendar views.
type JournalQueries struct {
	db *gorm.DB
}

func NewJournalQueries(db *gorm.DB) *JournalQueries {
	return &JournalQueries{db: db}
}

// EntriesByDate returns all of a user's entries for one calendar date,
// oldest first, joined to the owning thread.
func (q *JournalQueries) EntriesByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]EntryWithDate, error) {
	var rows []EntryWithDate
	err := q.db.WithContext(ctx).
		Table("entries").
		Select("entries.id, entries.thread_id, entries.encrypted_markdown, entries.written_at, entries.created_at, entries.updated_at, threads.date").
		Joins("JOIN threads ON threads.id = entries.thread_id").
		Where("threads.user_id = ?", userID).
		Where("threads.date = ?", date).
		Order("entries.created_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err, "entries")
	}
	return rows, nil
}

// DaysWithEntries returns the distinct dates in the inclusive range that have
// at least one entry for the user.
func (q *JournalQueries) DaysWithEntries(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := q.db.WithContext(ctx).
		Table("threads").
		Distinct("threads.date").
		Joins("JOIN entries ON entries.thread_id = threads.id").
		Where("threads.user_id = ?", userID).
		Where("threads.date >= ?", startDate).
		Where("threads.date <= ?", endDate).
		Pluck("threads.date", &dates).Error
	if err != nil {
		return nil, classify(err, "threads")
	}
	return dates, nil
}
