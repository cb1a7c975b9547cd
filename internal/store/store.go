package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entity is the minimal surface the generic store needs from a model.
// model.Base satisfies it for every table.
type Entity interface {
	GetID() uuid.UUID
}

// PageParams bound a list request to one page.
type PageParams struct {
	CurrentPage int
	PageSize    int
}

// Offset returns the row offset for the page.
func (p PageParams) Offset() int {
	return (p.CurrentPage - 1) * p.PageSize
}

// SortParams order a list request.
type SortParams struct {
	SortBy        string
	SortDirection string
}

// Patch is a partial update for one row. Only keys present in Changes are
// touched; a key with a nil value clears the column, an absent key leaves it
// as is.
type Patch struct {
	ID      uuid.UUID
	Changes map[string]any
}

// Store is the generic data-access engine over one ORM-mapped entity. Every
// mutating operation runs in a single database transaction: either the whole
// batch commits or none of it does, and the caller sees one classified error.
type Store[T Entity] struct {
	db   *gorm.DB
	desc Descriptor
}

// New creates a store for one entity type with its column descriptor.
func New[T Entity](db *gorm.DB, desc Descriptor) *Store[T] {
	return &Store[T]{db: db, desc: desc}
}

// Descriptor exposes the table descriptor, mainly for validation in callers.
func (s *Store[T]) Descriptor() Descriptor {
	return s.desc
}

// GetByID returns the row with the given id, or nil when absent. Finding more
// than one row for an id is an internal-consistency failure, not a client
// error.
func (s *Store[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rows []T
	if err := s.db.WithContext(ctx).Where("id = ?", id).Limit(2).Find(&rows).Error; err != nil {
		return nil, classify(err, s.desc.Table)
	}

	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, apperrors.Internal(fmt.Sprintf(
			"multiple records found for id %s in %s, expected at most one", id, s.desc.Table))
	}
}

// GetOneByColumn returns at most one row matching column = value.
func (s *Store[T]) GetOneByColumn(ctx context.Context, column string, value any) (*T, error) {
	if !s.desc.HasColumn(column) {
		return nil, apperrors.Validation(fmt.Sprintf("unknown column %q for %s", column, s.desc.Table))
	}

	var rows []T
	query := fmt.Sprintf("%s = ?", column)
	if err := s.db.WithContext(ctx).Where(query, value).Limit(2).Find(&rows).Error; err != nil {
		return nil, classify(err, s.desc.Table)
	}

	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, apperrors.Internal(fmt.Sprintf(
			"multiple records found for %s=%v in %s, expected at most one", column, value, s.desc.Table))
	}
}

// GetManyByIDs returns the rows matching any of the given ids, in unspecified
// order. An empty input issues no query.
func (s *Store[T]) GetManyByIDs(ctx context.Context, ids []uuid.UUID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	var rows []T
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, classify(err, s.desc.Table)
	}
	return rows, nil
}

// ListPaginated returns one page of rows plus the total matching count. The
// sort column is validated against the descriptor before any SQL runs.
// Optional scopes narrow the query (e.g. to one owner); column references are
// table-qualified so scopes may join other tables.
func (s *Store[T]) ListPaginated(ctx context.Context, ids []uuid.UUID, page PageParams, sortParams SortParams, scopes ...func(*gorm.DB) *gorm.DB) ([]T, int64, error) {
	if err := s.desc.ValidateSort(sortParams.SortBy, sortParams.SortDirection); err != nil {
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).Model(new(T)).Scopes(scopes...)
	if len(ids) > 0 {
		query = query.Where(fmt.Sprintf("%s.id IN ?", s.desc.Table), ids)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify(err, s.desc.Table)
	}

	var rows []T
	err := query.
		Select(s.desc.Table + ".*").
		Order(fmt.Sprintf("%s.%s %s", s.desc.Table, sortParams.SortBy, sortParams.SortDirection)).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, classify(err, s.desc.Table)
	}

	return rows, total, nil
}

// Create inserts all entities in one transaction. Any integrity violation
// aborts the whole batch; generated fields are populated on return.
func (s *Store[T]) Create(ctx context.Context, entities []*T) ([]*T, error) {
	if len(entities) == 0 {
		return []*T{}, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(entities).Error
	})
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to create records").
			String("table", s.desc.Table).
			Int("count", len(entities)).
			Err(err).
			Log()
		return nil, classify(err, s.desc.Table)
	}

	return entities, nil
}

// PatchByIDs applies partial updates to many rows atomically. Results are
// returned in the same order as the requested ids. A patch whose changes map
// is empty after stripping blocked fields is a no-op for that row: no update
// statement runs and updated_at is not bumped.
func (s *Store[T]) PatchByIDs(ctx context.Context, patches []Patch, now time.Time) ([]T, error) {
	if len(patches) == 0 {
		return []T{}, nil
	}

	// Validate every patch before touching the database so a bad field name
	// in row N can't leave rows 1..N-1 modified.
	type prepared struct {
		id      uuid.UUID
		changes map[string]any
	}
	preparedPatches := make([]prepared, 0, len(patches))
	allIDs := make([]uuid.UUID, 0, len(patches))
	for _, p := range patches {
		changes := StripBlockedPatchFields(p.Changes)
		if err := s.desc.ValidatePatchFields(changes); err != nil {
			return nil, err
		}
		preparedPatches = append(preparedPatches, prepared{id: p.ID, changes: changes})
		allIDs = append(allIDs, p.ID)
	}

	var results []T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []T
		if err := tx.Where("id IN ?", allIDs).Find(&existing).Error; err != nil {
			return classify(err, s.desc.Table)
		}

		found := make(map[uuid.UUID]bool, len(existing))
		for _, row := range existing {
			found[row.GetID()] = true
		}
		var missing []string
		for _, id := range allIDs {
			if !found[id] {
				missing = append(missing, id.String())
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return apperrors.NotFound(fmt.Sprintf(
				"records not found in %s for ids: %s", s.desc.Table, strings.Join(missing, ", ")))
		}

		for _, p := range preparedPatches {
			if len(p.changes) == 0 {
				continue
			}
			changes := make(map[string]any, len(p.changes)+1)
			for k, v := range p.changes {
				changes[k] = v
			}
			changes["updated_at"] = now

			if err := tx.Table(s.desc.Table).Where("id = ?", p.id).Updates(changes).Error; err != nil {
				return classify(err, s.desc.Table)
			}
		}

		// Re-read so results reflect committed values, ordered as requested.
		var updated []T
		if err := tx.Where("id IN ?", allIDs).Find(&updated).Error; err != nil {
			return classify(err, s.desc.Table)
		}
		byID := make(map[uuid.UUID]T, len(updated))
		for _, row := range updated {
			byID[row.GetID()] = row
		}
		results = make([]T, 0, len(allIDs))
		for _, id := range allIDs {
			results = append(results, byID[id])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Upsert inserts rows, or updates them in place when the uniqueness
// constraint on uniqueCols is violated. Rows must not carry an id: upsert is
// for callers that do not know whether the record exists yet. The on-conflict
// update only fires when at least one updatable column actually differs from
// the stored value, so an identical re-upsert does not churn updated_at.
// Returned entities are re-fetched by the unique-column values; their order is
// not guaranteed to match the input.
func (s *Store[T]) Upsert(ctx context.Context, rows []map[string]any, uniqueCols []string, blockedUpdateCols []string, now time.Time) ([]T, error) {
	if len(rows) == 0 {
		logger.DebugWithContext(ctx, "No rows provided for upsert").
			String("table", s.desc.Table).
			Log()
		return []T{}, nil
	}

	for _, row := range rows {
		if _, ok := row["id"]; ok {
			return nil, apperrors.Validation(
				"upsert rows cannot include an 'id' field; " +
					"if you know the id, use PATCH instead - upsert is only for " +
					"records that may not exist yet")
		}
		if err := s.desc.ValidatePatchFields(row); err != nil {
			return nil, err
		}
	}
	for _, col := range uniqueCols {
		if !s.desc.HasColumn(col) {
			return nil, apperrors.Validation(fmt.Sprintf(
				"unknown unique column %q for %s", col, s.desc.Table))
		}
	}

	insertRows := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		copied := make(map[string]any, len(row)+2)
		for k, v := range row {
			copied[k] = v
		}
		copied["created_at"] = now
		copied["updated_at"] = now
		insertRows = append(insertRows, copied)
	}

	conflictColumns := make([]clause.Column, 0, len(uniqueCols))
	for _, col := range uniqueCols {
		conflictColumns = append(conflictColumns, clause.Column{Name: col})
	}

	safeCols := s.desc.SafeUpdateColumns(blockedUpdateCols, uniqueCols)

	onConflict := clause.OnConflict{Columns: conflictColumns}
	if len(safeCols) == 0 {
		// Nothing is allowed to change on conflict, so the existing row wins.
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(safeCols)
		if whereSQL := s.upsertDistinctnessSQL(safeCols); whereSQL != "" {
			onConflict.Where = clause.Where{Exprs: []clause.Expression{gorm.Expr(whereSQL)}}
		}
	}

	var results []T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(s.desc.Table).Clauses(onConflict).Create(&insertRows).Error; err != nil {
			return classify(err, s.desc.Table)
		}

		// Re-fetch by the unique-column values rather than parsing returned
		// rows: it is the reliable way to hand back proper ORM instances.
		fetched, err := s.fetchByUniqueValues(tx, rows, uniqueCols)
		if err != nil {
			return err
		}
		results = fetched
		return nil
	})
	if err != nil {
		logger.WarnWithContext(ctx, "Upsert failed").
			String("table", s.desc.Table).
			Int("count", len(rows)).
			Err(err).
			Log()
		return nil, err
	}

	return results, nil
}

// upsertDistinctnessSQL builds the conflict-update guard: only update when
// some updatable column's proposed value differs from what is stored.
// updated_at is excluded from the comparison, otherwise every upsert would
// count as a change.
func (s *Store[T]) upsertDistinctnessSQL(safeCols []string) string {
	diffs := make([]string, 0, len(safeCols))
	for _, col := range safeCols {
		if col == "updated_at" {
			continue
		}
		diffs = append(diffs, fmt.Sprintf(
			"%s.%s IS DISTINCT FROM excluded.%s", s.desc.Table, col, col))
	}
	return strings.Join(diffs, " OR ")
}

func (s *Store[T]) fetchByUniqueValues(tx *gorm.DB, rows []map[string]any, uniqueCols []string) ([]T, error) {
	var groups []string
	var args []any
	for _, row := range rows {
		var conds []string
		for _, col := range uniqueCols {
			if value, ok := row[col]; ok {
				conds = append(conds, fmt.Sprintf("%s = ?", col))
				args = append(args, value)
			}
		}
		if len(conds) > 0 {
			groups = append(groups, "("+strings.Join(conds, " AND ")+")")
		}
	}
	if len(groups) == 0 {
		return []T{}, nil
	}

	var out []T
	if err := tx.Where(strings.Join(groups, " OR "), args...).Find(&out).Error; err != nil {
		return nil, classify(err, s.desc.Table)
	}
	return out, nil
}

// DeleteByIDs bulk-deletes rows. An empty input is a no-op; referential
// integrity violations are surfaced classified, not swallowed.
func (s *Store[T]) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id IN ?", ids).Delete(new(T)).Error
	})
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to delete records").
			String("table", s.desc.Table).
			Int("count", len(ids)).
			Err(err).
			Log()
		return classify(err, s.desc.Table)
	}
	return nil
}

// CountByColumn counts rows where column = value.
func (s *Store[T]) CountByColumn(ctx context.Context, column string, value any) (int64, error) {
	if !s.desc.HasColumn(column) {
		return 0, apperrors.Validation(fmt.Sprintf("unknown column %q for %s", column, s.desc.Table))
	}

	var count int64
	query := fmt.Sprintf("%s = ?", column)
	if err := s.db.WithContext(ctx).Model(new(T)).Where(query, value).Count(&count).Error; err != nil {
		return 0, classify(err, s.desc.Table)
	}
	return count, nil
}
