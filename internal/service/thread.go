package service

import (
	"context"
	"time"

	"github.com/ashdowne/daybook/internal/dto"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/ashdowne/daybook/internal/store"
	"github.com/ashdowne/daybook/pkg/cache"
	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/google/uuid"
)

// ThreadService manages the per-user-per-day threads. All operations are
// scoped to the authenticated user.
type ThreadService struct {
	threads  *store.Store[model.Thread]
	calendar *cache.CalendarCache
}

func NewThreadService(threads *store.Store[model.Thread], calendar *cache.CalendarCache) *ThreadService {
	return &ThreadService{threads: threads, calendar: calendar}
}

func (s *ThreadService) List(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, page dto.PageQuery, sort dto.SortQuery) ([]dto.ThreadResponse, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListThreads")

	rows, total, err := s.threads.ListPaginated(ctx, ids, page.ToStore(), sort.ToStore(), ownThreads(userID))
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.ThreadResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.NewThreadResponse(row))
	}
	return out, total, nil
}

func (s *ThreadService) Create(ctx context.Context, userID uuid.UUID, reqs []dto.CreateThreadRequest) ([]dto.ThreadResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateThreads")

	entities := make([]*model.Thread, 0, len(reqs))
	for _, req := range reqs {
		if req.UserID != userID {
			return nil, apperrors.ErrForbidden
		}
		entities = append(entities, req.ToModel())
	}

	created, err := s.threads.Create(ctx, entities)
	if err != nil {
		return nil, err
	}
	s.calendar.InvalidateUser(ctx, userID)

	out := make([]dto.ThreadResponse, 0, len(created))
	for _, row := range created {
		out = append(out, dto.NewThreadResponse(*row))
	}
	return out, nil
}

func (s *ThreadService) Patch(ctx context.Context, userID uuid.UUID, items []map[string]any) ([]dto.ThreadResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "PatchThreads")

	patches, err := dto.ParsePatchPayloads(items)
	if err != nil {
		return nil, err
	}

	threadIDs := make([]uuid.UUID, 0, len(patches))
	for _, p := range patches {
		threadIDs = append(threadIDs, p.ID)
		// Reassigning a thread to another user is never allowed.
		if raw, ok := p.Changes["user_id"]; ok {
			target, err := uuidFromPatchValue("user_id", raw)
			if err != nil {
				return nil, err
			}
			if target != userID {
				return nil, apperrors.ErrForbidden
			}
		}
	}
	if _, err := requireOwnedThreads(ctx, s.threads, threadIDs, userID); err != nil {
		return nil, err
	}

	updated, err := s.threads.PatchByIDs(ctx, patches, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.calendar.InvalidateUser(ctx, userID)

	out := make([]dto.ThreadResponse, 0, len(updated))
	for _, row := range updated {
		out = append(out, dto.NewThreadResponse(row))
	}
	return out, nil
}

// Upsert creates or reuses threads keyed on (user_id, date).
func (s *ThreadService) Upsert(ctx context.Context, userID uuid.UUID, reqs []dto.UpsertThreadRequest) ([]dto.ThreadResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpsertThreads")

	rows := make([]map[string]any, 0, len(reqs))
	for _, req := range reqs {
		if req.UserID != userID {
			return nil, apperrors.ErrForbidden
		}
		rows = append(rows, req.ToRow())
	}

	upserted, err := s.threads.Upsert(ctx, rows,
		[]string{"user_id", "date"}, []string{"id", "created_at"}, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.calendar.InvalidateUser(ctx, userID)

	out := make([]dto.ThreadResponse, 0, len(upserted))
	for _, row := range upserted {
		out = append(out, dto.NewThreadResponse(row))
	}
	return out, nil
}

func (s *ThreadService) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteThreads")

	if _, err := requireOwnedThreads(ctx, s.threads, ids, userID); err != nil {
		// Deleting rows that are already gone is not an error.
		if !apperrors.IsCode(err, apperrors.CodeNotFound) {
			return err
		}
	}

	if err := s.threads.DeleteByIDs(ctx, ids); err != nil {
		return err
	}
	s.calendar.InvalidateUser(ctx, userID)

	logger.InfoWithContext(ctx, "Threads deleted").
		String("user_id", userID.String()).
		Int("count", len(ids)).
		Log()
	return nil
}
