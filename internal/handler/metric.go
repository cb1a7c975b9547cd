package handler

import (
	"net/http"

	"github.com/ashdowne/daybook/internal/dto"
	"github.com/ashdowne/daybook/internal/service"
	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/gin-gonic/gin"
)

type MetricHandler struct {
	metrics *service.MetricService
}

func NewMetricHandler(metrics *service.MetricService) *MetricHandler {
	return &MetricHandler{metrics: metrics}
}

func (h *MetricHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListMetrics")
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

	rows, total, err := h.metrics.List(ctx, user.ID, ids, page, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(page, sort, total, rows))
}

func (h *MetricHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateMetrics")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	var reqs []dto.CreateMetricRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.metrics.Create(ctx, user.ID, reqs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(created))
}

func (h *MetricHandler) Patch(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "PatchMetrics")
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

	updated, err := h.metrics.Patch(ctx, user.ID, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(updated))
}

func (h *MetricHandler) Upsert(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpsertMetrics")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	var reqs []dto.UpsertMetricRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBindError(c, err)
		return
	}

	upserted, err := h.metrics.Upsert(ctx, user.ID, reqs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(upserted))
}

func (h *MetricHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteMetrics")
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

	if err := h.metrics.Delete(ctx, user.ID, ids); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
