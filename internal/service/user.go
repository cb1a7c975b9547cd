package service

import (
	"context"
	"time"

	"github.com/ashdowne/daybook/internal/dto"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/ashdowne/daybook/internal/store"
	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/google/uuid"
)

// UserService exposes generic CRUD over user rows. These operations require
// authentication but are not self-scoped; journal data is where per-user
// isolation is enforced.
type UserService struct {
	users *store.Store[model.User]
}

func NewUserService(users *store.Store[model.User]) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, ids []uuid.UUID, page dto.PageQuery, sort dto.SortQuery) ([]dto.UserResponse, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListUsers")

	rows, total, err := s.users.ListPaginated(ctx, ids, page.ToStore(), sort.ToStore())
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.UserResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.NewUserResponse(row))
	}
	return out, total, nil
}

func (s *UserService) Create(ctx context.Context, reqs []dto.CreateUserRequest) ([]dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateUsers")

	entities := make([]*model.User, 0, len(reqs))
	for _, req := range reqs {
		entities = append(entities, req.ToModel())
	}

	created, err := s.users.Create(ctx, entities)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "Users created").
		Int("count", len(created)).
		Log()

	out := make([]dto.UserResponse, 0, len(created))
	for _, row := range created {
		out = append(out, dto.NewUserResponse(*row))
	}
	return out, nil
}

func (s *UserService) Patch(ctx context.Context, items []map[string]any) ([]dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "PatchUsers")

	patches, err := dto.ParsePatchPayloads(items)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.PatchByIDs(ctx, patches, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(updated))
	for _, row := range updated {
		out = append(out, dto.NewUserResponse(row))
	}
	return out, nil
}

// Upsert inserts or updates users keyed on the (email, external_auth_sub)
// uniqueness group.
func (s *UserService) Upsert(ctx context.Context, reqs []dto.UpsertUserRequest) ([]dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpsertUsers")

	rows := make([]map[string]any, 0, len(reqs))
	for _, req := range reqs {
		rows = append(rows, req.ToRow())
	}

	upserted, err := s.users.Upsert(ctx, rows,
		[]string{"email", "external_auth_sub"}, []string{"id", "created_at"}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(upserted))
	for _, row := range upserted {
		out = append(out, dto.NewUserResponse(row))
	}
	return out, nil
}

func (s *UserService) Delete(ctx context.Context, ids []uuid.UUID) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteUsers")

	if err := s.users.DeleteByIDs(ctx, ids); err != nil {
		return err
	}

	logger.InfoWithContext(ctx, "Users deleted").
		Int("count", len(ids)).
		Log()
	return nil
}
