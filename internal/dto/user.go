package dto

import (
	"time"

	"github.com/ashdowne/daybook/internal/model"
	"github.com/google/uuid"
)

type UserResponse struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	ExternalAuthSub string     `json:"external_auth_sub"`
	Name            *string    `json:"name"`
	Picture         *string    `json:"picture"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		ExternalAuthSub: u.ExternalAuthSub,
		Name:            u.Name,
		Picture:         u.Picture,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

type CreateUserRequest struct {
	Email           string  `json:"email" binding:"required,email"`
	ExternalAuthSub string  `json:"external_auth_sub" binding:"required"`
	Name            *string `json:"name"`
	Picture         *string `json:"picture"`
}

func (r CreateUserRequest) ToModel() *model.User {
	return &model.User{
		Email:           r.Email,
		ExternalAuthSub: r.ExternalAuthSub,
		Name:            r.Name,
		Picture:         r.Picture,
	}
}

// UpsertUserRequest targets the (email, external_auth_sub) uniqueness group.
type UpsertUserRequest struct {
	Email           string     `json:"email" binding:"required,email"`
	ExternalAuthSub string     `json:"external_auth_sub" binding:"required"`
	Name            *string    `json:"name"`
	Picture         *string    `json:"picture"`
	LastLoginAt     *time.Time `json:"last_login_at"`
}

// ToRow produces the column map for the upsert statement. Every updatable
// column is present so multi-row inserts share one column list.
func (r UpsertUserRequest) ToRow() map[string]any {
	return map[string]any{
		"email":             r.Email,
		"external_auth_sub": r.ExternalAuthSub,
		"name":              r.Name,
		"picture":           r.Picture,
		"last_login_at":     r.LastLoginAt,
	}
}
