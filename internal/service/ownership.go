package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/ashdowne/daybook/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ownership enforcement for journal data. Threads belong to a user; entries
// and metrics belong to a thread and inherit its owner. Acting on another
// user's rows is rejected with a 403 before any mutation runs.

// ownThreads narrows a thread query to one owner.
func ownThreads(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("threads.user_id = ?", userID)
	}
}

// ownViaThread narrows a child-table query to rows whose thread belongs to
// the owner.
func ownViaThread(table string, userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins(fmt.Sprintf("JOIN threads ON threads.id = %s.thread_id", table)).
			Where("threads.user_id = ?", userID)
	}
}

// requireOwnedThreads loads the given threads and verifies every one exists
// and belongs to userID.
func requireOwnedThreads(ctx context.Context, threads *store.Store[model.Thread], threadIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]model.Thread, error) {
	unique := make([]uuid.UUID, 0, len(threadIDs))
	seen := make(map[uuid.UUID]bool, len(threadIDs))
	for _, id := range threadIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	rows, err := threads.GetManyByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.Thread, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	var missing []string
	for _, id := range unique {
		row, ok := byID[id]
		if !ok {
			missing = append(missing, id.String())
			continue
		}
		if row.UserID != userID {
			return nil, apperrors.ErrForbidden
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, apperrors.NotFound(fmt.Sprintf(
			"threads not found for ids: %s", strings.Join(missing, ", ")))
	}

	return byID, nil
}

// uuidFromPatchValue reads a uuid out of a raw patch map value.
func uuidFromPatchValue(field string, value any) (uuid.UUID, error) {
	s, ok := value.(string)
	if !ok {
		return uuid.Nil, apperrors.Validation(fmt.Sprintf("%s must be a uuid string", field))
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperrors.Validation(fmt.Sprintf("%s has an invalid uuid %q", field, s))
	}
	return id, nil
}
