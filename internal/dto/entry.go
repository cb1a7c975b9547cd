package dto

import (
	"time"

	"github.com/ashdowne/daybook/internal/model"
	"github.com/google/uuid"
)

// EntryResponse carries the decrypted markdown. It is a read-only projection:
// the persisted model only ever holds ciphertext.
type EntryResponse struct {
	ID          uuid.UUID `json:"id"`
	ThreadID    uuid.UUID `json:"thread_id"`
	RawMarkdown *string   `json:"raw_markdown"`
	WrittenAt   time.Time `json:"written_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewEntryResponse(e model.Entry, rawMarkdown *string) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		ThreadID:    e.ThreadID,
		RawMarkdown: rawMarkdown,
		WrittenAt:   e.WrittenAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EntryWithDateResponse additionally carries the owning thread's date.
type EntryWithDateResponse struct {
	ID          uuid.UUID `json:"id"`
	ThreadID    uuid.UUID `json:"thread_id"`
	RawMarkdown *string   `json:"raw_markdown"`
	Date        Date      `json:"date"`
	WrittenAt   time.Time `json:"written_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateEntryRequest struct {
	ThreadID    uuid.UUID  `json:"thread_id" binding:"required"`
	RawMarkdown *string    `json:"raw_markdown"`
	WrittenAt   *time.Time `json:"written_at"`
}

// CreateEntryWithDateRequest creates an entry and its thread in one call,
// keyed on (user_id, date).
type CreateEntryWithDateRequest struct {
	UserID      uuid.UUID  `json:"user_id" binding:"required"`
	Date        Date       `json:"date" binding:"required"`
	RawMarkdown *string    `json:"raw_markdown"`
	WrittenAt   *time.Time `json:"written_at"`
}

// CalendarDay reports entry presence for one date in a requested range.
type CalendarDay struct {
	Date     Date `json:"date"`
	HasEntry bool `json:"hasEntry"`
}

type CalendarQuery struct {
	UserID    string `form:"user_id" binding:"required,uuid"`
	StartDate string `form:"start_date" binding:"required,dateformat"`
	EndDate   string `form:"end_date" binding:"required,dateformat"`
}

type EntriesByDateQuery struct {
	UserID string `form:"user_id" binding:"required,uuid"`
}
