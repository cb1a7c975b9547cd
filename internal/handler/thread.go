package handler

import (
	"net/http"

	"github.com/ashdowne/daybook/internal/dto"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/middleware"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/ashdowne/daybook/internal/service"
	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/gin-gonic/gin"
)

type ThreadHandler struct {
	threads *service.ThreadService
}

func NewThreadHandler(threads *service.ThreadService) *ThreadHandler {
	return &ThreadHandler{threads: threads}
}

// currentUser pulls the authenticated user out of the gin context, aborting
// with 401 when the auth middleware did not run.
func currentUser(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return nil, false
	}
	return user, true
}

func (h *ThreadHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListThreads")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, sort, ids, err := listParams(c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	rows, total, err := h.threads.List(ctx, user.ID, ids, page, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(page, sort, total, rows))
}

func (h *ThreadHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateThreads")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	var reqs []dto.CreateThreadRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.threads.Create(ctx, user.ID, reqs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(created))
}

func (h *ThreadHandler) Patch(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "PatchThreads")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	var items []map[string]any
	if err := c.ShouldBindJSON(&items); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.threads.Patch(ctx, user.ID, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(updated))
}

func (h *ThreadHandler) Upsert(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpsertThreads")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	var reqs []dto.UpsertThreadRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBindError(c, err)
		return
	}

	upserted, err := h.threads.Upsert(ctx, user.ID, reqs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(upserted))
}

func (h *ThreadHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteThreads")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	ids, err := requiredIDs(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.threads.Delete(ctx, user.ID, ids); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
