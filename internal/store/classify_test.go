package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "Record not found",
			err:      gorm.ErrRecordNotFound,
			wantCode: apperrors.CodeNotFound,
		},
		{
			name:     "Foreign key violation reads as missing reference",
			err:      &pgconn.PgError{Code: "23503", ConstraintName: "fk_entries_thread"},
			wantCode: apperrors.CodeNotFound,
		},
		{
			name:     "Unique violation",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "uq_threads_user_id_date"},
			wantCode: apperrors.CodeConflict,
		},
		{
			name:     "Not null violation",
			err:      &pgconn.PgError{Code: "23502", ConstraintName: "email"},
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "Check violation",
			err:      &pgconn.PgError{Code: "23514", ConstraintName: "ck_quality_range"},
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "Undefined column",
			err:      &pgconn.PgError{Code: "42703"},
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "Other postgres error",
			err:      &pgconn.PgError{Code: "57014"},
			wantCode: apperrors.CodeInternal,
		},
		{
			name:     "Context cancellation",
			err:      context.Canceled,
			wantCode: apperrors.CodeInternal,
		},
		{
			name:     "Deadline exceeded",
			err:      context.DeadlineExceeded,
			wantCode: apperrors.CodeInternal,
		},
		{
			name:     "Unknown error",
			err:      errors.New("connection reset"),
			wantCode: apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err, "widgets")
			if got == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !apperrors.IsCode(got, tt.wantCode) {
				t.Errorf("Expected code %s, got %v", tt.wantCode, got)
			}
			// The original error stays reachable for logging.
			if !errors.Is(got, tt.err) {
				t.Errorf("Expected wrapped error to match original %v", tt.err)
			}
		})
	}
}

func TestClassifyNil(t *testing.T) {
	if got := classify(nil, "widgets"); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}

func TestClassifyWrappedPgError(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505"}
	err := fmt.Errorf("insert failed: %w", inner)

	got := classify(err, "widgets")
	if !apperrors.IsCode(got, apperrors.CodeConflict) {
		t.Errorf("Expected conflict for wrapped unique violation, got %v", got)
	}
}
