package handler

import (
	"net/http"

	"github.com/ashdowne/daybook/internal/dto"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/service"
	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler exposes generic CRUD over users.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// listParams binds the shared pagination, sort and id-filter query params.
func listParams(c *gin.Context) (dto.PageQuery, dto.SortQuery, []uuid.UUID, error) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, dto.SortQuery{}, nil, err
	}
	var sort dto.SortQuery
	if err := c.ShouldBindQuery(&sort); err != nil {
		return page, sort, nil, err
	}
	var idsQuery dto.IDsQuery
	if err := c.ShouldBindQuery(&idsQuery); err != nil {
		return page, sort, nil, err
	}
	ids, err := dto.ParseUUIDList(idsQuery.IDs)
	if err != nil {
		return page, sort, nil, err
	}
	return page, sort, ids, nil
}

// requiredIDs binds the ?ids= parameter for batch deletes.
func requiredIDs(c *gin.Context) ([]uuid.UUID, error) {
	var idsQuery dto.IDsQuery
	if err := c.ShouldBindQuery(&idsQuery); err != nil {
		return nil, err
	}
	ids, err := dto.ParseUUIDList(idsQuery.IDs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperrors.Validation("at least one id is required")
	}
	return ids, nil
}

func (h *UserHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListUsers")
	c.Request = c.Request.WithContext(ctx)

	page, sort, ids, err := listParams(c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	rows, total, err := h.users.List(ctx, ids, page, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(page, sort, total, rows))
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateUsers")
	c.Request = c.Request.WithContext(ctx)

	var reqs []dto.CreateUserRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.users.Create(ctx, reqs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(created))
}

func (h *UserHandler) Patch(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "PatchUsers")
	c.Request = c.Request.WithContext(ctx)

	var items []map[string]any
	if err := c.ShouldBindJSON(&items); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.users.Patch(ctx, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(updated))
}

func (h *UserHandler) Upsert(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpsertUsers")
	c.Request = c.Request.WithContext(ctx)

	var reqs []dto.UpsertUserRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBindError(c, err)
		return
	}

	upserted, err := h.users.Upsert(ctx, reqs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(upserted))
}

func (h *UserHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteUsers")
	c.Request = c.Request.WithContext(ctx)

	ids, err := requiredIDs(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.users.Delete(ctx, ids); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
