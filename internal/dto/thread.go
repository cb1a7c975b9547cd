package dto

import (
	"time"

	"github.com/ashdowne/daybook/internal/model"
	"github.com/google/uuid"
)

type ThreadResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Date      Date      `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewThreadResponse(t model.Thread) ThreadResponse {
	return ThreadResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Date:      NewDate(t.Date),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

type CreateThreadRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Date   Date      `json:"date" binding:"required"`
}

func (r CreateThreadRequest) ToModel() *model.Thread {
	return &model.Thread{UserID: r.UserID, Date: r.Date.Time}
}

// UpsertThreadRequest targets the (user_id, date) uniqueness group.
type UpsertThreadRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Date   Date      `json:"date" binding:"required"`
}

func (r UpsertThreadRequest) ToRow() map[string]any {
	return map[string]any{
		"user_id": r.UserID,
		"date":    r.Date.Time,
	}
}
