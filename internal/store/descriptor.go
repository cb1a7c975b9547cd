package store

import (
	"fmt"
	"sort"

	"github.com/ashdowne/daybook/internal/constants"
	apperrors "github.com/ashdowne/daybook/internal/errors"
)

// Descriptor statically enumerates a table's columns for the generic store.
// Sort columns, patch fields and upsert rows are all validated against it, so
// an unknown column name is caught as a client error before any SQL runs.
type Descriptor struct {
	Table   string
	Columns []string
}

// timestampColumns are managed by the store itself. They are stripped from
// patches and, together with the id, never updated on upsert conflict.
var (
	blockedPatchColumns  = []string{"id", "created_at", "updated_at"}
	blockedUpsertColumns = []string{"id", "created_at"}
)

// HasColumn reports whether name is a known column of the table.
func (d Descriptor) HasColumn(name string) bool {
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// ValidateSort checks the sort column and direction of a list request.
func (d Descriptor) ValidateSort(sortBy, direction string) error {
	if !d.HasColumn(sortBy) {
		return apperrors.Validation(fmt.Sprintf(
			"invalid sort column %q for %s, valid columns: %v", sortBy, d.Table, d.Columns))
	}
	if direction != constants.SortAsc && direction != constants.SortDesc {
		return apperrors.Validation(fmt.Sprintf(
			"sort_direction must be 'asc' or 'desc', got %q", direction))
	}
	return nil
}

// StripBlockedPatchFields removes the identifier and timestamp columns from a
// changes map; callers may not set them directly.
func StripBlockedPatchFields(changes map[string]any) map[string]any {
	out := make(map[string]any, len(changes))
	for k, v := range changes {
		if !contains(blockedPatchColumns, k) {
			out[k] = v
		}
	}
	return out
}

// ValidatePatchFields rejects changes naming columns the table does not have.
func (d Descriptor) ValidatePatchFields(changes map[string]any) error {
	var unknown []string
	for k := range changes {
		if !d.HasColumn(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return apperrors.Validation(fmt.Sprintf(
			"unknown fields %v for %s, valid fields: %v", unknown, d.Table, d.Columns))
	}
	return nil
}

// SafeUpdateColumns returns the columns eligible for update on upsert
// conflict: every table column minus the blocked set minus the conflict
// columns themselves.
func (d Descriptor) SafeUpdateColumns(blocked, unique []string) []string {
	var safe []string
	for _, col := range d.Columns {
		if contains(blocked, col) || contains(blockedUpsertColumns, col) || contains(unique, col) {
			continue
		}
		safe = append(safe, col)
	}
	return safe
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
