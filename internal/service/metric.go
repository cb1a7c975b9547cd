package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ashdowne/daybook/internal/dto"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/ashdowne/daybook/internal/store"
	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/google/uuid"
)

// MetricService manages the one-per-thread daily metric rows, scoped to the
// authenticated user through thread ownership.
type MetricService struct {
	metrics *store.Store[model.Metric]
	threads *store.Store[model.Thread]
}

func NewMetricService(metrics *store.Store[model.Metric], threads *store.Store[model.Thread]) *MetricService {
	return &MetricService{metrics: metrics, threads: threads}
}

func (s *MetricService) List(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, page dto.PageQuery, sort dto.SortQuery) ([]dto.MetricResponse, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListMetrics")

	rows, total, err := s.metrics.ListPaginated(ctx, ids, page.ToStore(), sort.ToStore(), ownViaThread("metrics", userID))
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.MetricResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.NewMetricResponse(row))
	}
	return out, total, nil
}

func (s *MetricService) Create(ctx context.Context, userID uuid.UUID, reqs []dto.CreateMetricRequest) ([]dto.MetricResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateMetrics")

	threadIDs := make([]uuid.UUID, 0, len(reqs))
	for _, req := range reqs {
		threadIDs = append(threadIDs, req.ThreadID)
	}
	if _, err := requireOwnedThreads(ctx, s.threads, threadIDs, userID); err != nil {
		return nil, err
	}

	entities := make([]*model.Metric, 0, len(reqs))
	for _, req := range reqs {
		entities = append(entities, req.ToModel())
	}

	created, err := s.metrics.Create(ctx, entities)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MetricResponse, 0, len(created))
	for _, row := range created {
		out = append(out, dto.NewMetricResponse(*row))
	}
	return out, nil
}

func (s *MetricService) Patch(ctx context.Context, userID uuid.UUID, items []map[string]any) ([]dto.MetricResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "PatchMetrics")

	patches, err := dto.ParsePatchPayloads(items)
	if err != nil {
		return nil, err
	}

	metricIDs := make([]uuid.UUID, 0, len(patches))
	var targetThreadIDs []uuid.UUID
	for _, p := range patches {
		metricIDs = append(metricIDs, p.ID)
		if raw, ok := p.Changes["thread_id"]; ok {
			target, err := uuidFromPatchValue("thread_id", raw)
			if err != nil {
				return nil, err
			}
			targetThreadIDs = append(targetThreadIDs, target)
		}
	}

	if err := s.requireOwnedMetrics(ctx, metricIDs, userID); err != nil {
		return nil, err
	}
	if len(targetThreadIDs) > 0 {
		if _, err := requireOwnedThreads(ctx, s.threads, targetThreadIDs, userID); err != nil {
			return nil, err
		}
	}

	updated, err := s.metrics.PatchByIDs(ctx, patches, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	out := make([]dto.MetricResponse, 0, len(updated))
	for _, row := range updated {
		out = append(out, dto.NewMetricResponse(row))
	}
	return out, nil
}

// Upsert creates or updates metrics keyed on thread_id, so re-submitting a
// day's numbers updates the existing row in place.
func (s *MetricService) Upsert(ctx context.Context, userID uuid.UUID, reqs []dto.UpsertMetricRequest) ([]dto.MetricResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpsertMetrics")

	threadIDs := make([]uuid.UUID, 0, len(reqs))
	rows := make([]map[string]any, 0, len(reqs))
	for _, req := range reqs {
		threadIDs = append(threadIDs, req.ThreadID)
		rows = append(rows, req.ToRow())
	}
	if _, err := requireOwnedThreads(ctx, s.threads, threadIDs, userID); err != nil {
		return nil, err
	}

	upserted, err := s.metrics.Upsert(ctx, rows,
		[]string{"thread_id"}, []string{"id", "created_at"}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	out := make([]dto.MetricResponse, 0, len(upserted))
	for _, row := range upserted {
		out = append(out, dto.NewMetricResponse(row))
	}
	return out, nil
}

func (s *MetricService) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteMetrics")

	if err := s.requireOwnedMetrics(ctx, ids, userID); err != nil {
		if !apperrors.IsCode(err, apperrors.CodeNotFound) {
			return err
		}
	}

	return s.metrics.DeleteByIDs(ctx, ids)
}

func (s *MetricService) requireOwnedMetrics(ctx context.Context, metricIDs []uuid.UUID, userID uuid.UUID) error {
	rows, err := s.metrics.GetManyByIDs(ctx, metricIDs)
	if err != nil {
		return err
	}

	found := make(map[uuid.UUID]bool, len(rows))
	threadIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		found[row.ID] = true
		threadIDs = append(threadIDs, row.ThreadID)
	}

	var missing []string
	for _, id := range metricIDs {
		if !found[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return apperrors.NotFound(fmt.Sprintf("metrics not found for ids: %v", missing))
	}

	_, err = requireOwnedThreads(ctx, s.threads, threadIDs, userID)
	return err
}
