package store

import (
	"errors"
	"testing"

	apperrors "github.com/ashdowne/daybook/internal/errors"
)

func TestRevocationOutcome(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"One row revoked", 1, nil},
		{"Token already consumed", 0, apperrors.ErrInvalidRefreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := revocationOutcome(tt.affected)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
