package database

import (
	"github.com/ashdowne/daybook/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Thread{},
		&model.Entry{},
		&model.Metric{},
	)
}
