package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Metric is a structured daily log of sleep/mood/activity numbers, one per
// thread. Qualitative ratings are on a 1-7 scale; AdditionalMetrics is an
// open-ended key/value map for anything the fixed columns don't cover.
type Metric struct {
	Base
	ThreadID          uuid.UUID         `gorm:"column:thread_id;type:uuid;not null;unique" json:"thread_id"`
	AsleepBy          *time.Time        `gorm:"column:asleep_by" json:"asleep_by"`
	AwokeAt           *time.Time        `gorm:"column:awoke_at" json:"awoke_at"`
	SleepQuality      *float64          `gorm:"column:sleep_quality" json:"sleep_quality"`
	PhysicalActivity  *float64          `gorm:"column:physical_activity" json:"physical_activity"`
	OverallMood       *float64          `gorm:"column:overall_mood" json:"overall_mood"`
	HoursPaidWork     *float64          `gorm:"column:hours_paid_work" json:"hours_paid_work"`
	HoursPersonalWork *float64          `gorm:"column:hours_personal_work" json:"hours_personal_work"`
	AdditionalMetrics datatypes.JSONMap `gorm:"column:additional_metrics;type:jsonb" json:"additional_metrics"`

	Thread Thread `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Metric) TableName() string {
	return "metrics"
}
