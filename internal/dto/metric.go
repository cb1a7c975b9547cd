package dto

import (
	"time"

	"github.com/ashdowne/daybook/internal/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MetricResponse struct {
	ID                uuid.UUID         `json:"id"`
	ThreadID          uuid.UUID         `json:"thread_id"`
	AsleepBy          *time.Time        `json:"asleep_by"`
	AwokeAt           *time.Time        `json:"awoke_at"`
	SleepQuality      *float64          `json:"sleep_quality"`
	PhysicalActivity  *float64          `json:"physical_activity"`
	OverallMood       *float64          `json:"overall_mood"`
	HoursPaidWork     *float64          `json:"hours_paid_work"`
	HoursPersonalWork *float64          `json:"hours_personal_work"`
	AdditionalMetrics datatypes.JSONMap `json:"additional_metrics"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func NewMetricResponse(m model.Metric) MetricResponse {
	return MetricResponse{
		ID:                m.ID,
		ThreadID:          m.ThreadID,
		AsleepBy:          m.AsleepBy,
		AwokeAt:           m.AwokeAt,
		SleepQuality:      m.SleepQuality,
		PhysicalActivity:  m.PhysicalActivity,
		OverallMood:       m.OverallMood,
		HoursPaidWork:     m.HoursPaidWork,
		HoursPersonalWork: m.HoursPersonalWork,
		AdditionalMetrics: m.AdditionalMetrics,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// Qualitative ratings (sleep quality, physical activity, overall mood) are on
// a 1-7 scale; work hours are unbounded non-negative durations.
type CreateMetricRequest struct {
	ThreadID          uuid.UUID         `json:"thread_id" binding:"required"`
	AsleepBy          *time.Time        `json:"asleep_by"`
	AwokeAt           *time.Time        `json:"awoke_at"`
	SleepQuality      *float64          `json:"sleep_quality" binding:"omitempty,gte=1,lte=7"`
	PhysicalActivity  *float64          `json:"physical_activity" binding:"omitempty,gte=1,lte=7"`
	OverallMood       *float64          `json:"overall_mood" binding:"omitempty,gte=1,lte=7"`
	HoursPaidWork     *float64          `json:"hours_paid_work" binding:"omitempty,gte=0"`
	HoursPersonalWork *float64          `json:"hours_personal_work" binding:"omitempty,gte=0"`
	AdditionalMetrics datatypes.JSONMap `json:"additional_metrics"`
}

func (r CreateMetricRequest) ToModel() *model.Metric {
	return &model.Metric{
		ThreadID:          r.ThreadID,
		AsleepBy:          r.AsleepBy,
		AwokeAt:           r.AwokeAt,
		SleepQuality:      r.SleepQuality,
		PhysicalActivity:  r.PhysicalActivity,
		OverallMood:       r.OverallMood,
		HoursPaidWork:     r.HoursPaidWork,
		HoursPersonalWork: r.HoursPersonalWork,
		AdditionalMetrics: r.AdditionalMetrics,
	}
}

// UpsertMetricRequest targets the thread_id uniqueness constraint: one metric
// row per thread, updated in place on re-submission.
type UpsertMetricRequest struct {
	ThreadID          uuid.UUID         `json:"thread_id" binding:"required"`
	AsleepBy          *time.Time        `json:"asleep_by"`
	AwokeAt           *time.Time        `json:"awoke_at"`
	SleepQuality      *float64          `json:"sleep_quality" binding:"omitempty,gte=1,lte=7"`
	PhysicalActivity  *float64          `json:"physical_activity" binding:"omitempty,gte=1,lte=7"`
	OverallMood       *float64          `json:"overall_mood" binding:"omitempty,gte=1,lte=7"`
	HoursPaidWork     *float64          `json:"hours_paid_work" binding:"omitempty,gte=0"`
	HoursPersonalWork *float64          `json:"hours_personal_work" binding:"omitempty,gte=0"`
	AdditionalMetrics datatypes.JSONMap `json:"additional_metrics"`
}

func (r UpsertMetricRequest) ToRow() map[string]any {
	var extra any
	if r.AdditionalMetrics != nil {
		extra = r.AdditionalMetrics
	}
	return map[string]any{
		"thread_id":           r.ThreadID,
		"asleep_by":           r.AsleepBy,
		"awoke_at":            r.AwokeAt,
		"sleep_quality":       r.SleepQuality,
		"physical_activity":   r.PhysicalActivity,
		"overall_mood":        r.OverallMood,
		"hours_paid_work":     r.HoursPaidWork,
		"hours_personal_work": r.HoursPersonalWork,
		"additional_metrics":  extra,
	}
}
