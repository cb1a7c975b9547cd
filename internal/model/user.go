package model

import (
	"time"
)

// User is the root of the authorization scope: threads, entries, metrics and
// refresh tokens all hang off a user and are never visible across users.
// The composite unique index on email and external_auth_sub is the arbiter
// for the login-provisioning upsert; the single-column indexes enforce
// uniqueness of each value on its own.
type User struct {
	Base
	Email           string     `gorm:"column:email;not null;unique;uniqueIndex:uq_users_external_auth_sub_email" json:"email"`
	ExternalAuthSub string     `gorm:"column:external_auth_sub;not null;unique;uniqueIndex:uq_users_external_auth_sub_email" json:"external_auth_sub"`
	Name            *string    `gorm:"column:name" json:"name"`
	Picture         *string    `gorm:"column:picture" json:"picture"`
	LastLoginAt     *time.Time `gorm:"column:last_login_at" json:"last_login_at"`
}

func (User) TableName() string {
	return "users"
}
