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

type EntryHandler struct {
	entries *service.EntryService
}

func NewEntryHandler(entries *service.EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

func (h *EntryHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListEntries")
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

	rows, total, err := h.entries.List(ctx, user.ID, ids, page, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginated(page, sort, total, rows))
}

func (h *EntryHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateEntries")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	var reqs []dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.entries.Create(ctx, user.ID, reqs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(created))
}

func (h *EntryHandler) Patch(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "PatchEntries")
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

	updated, err := h.entries.Patch(ctx, user.ID, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(updated))
}

func (h *EntryHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteEntries")
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

	if err := h.entries.Delete(ctx, user.ID, ids); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateWithThread writes an entry for a calendar date, creating the day's
// thread when it does not exist yet.
func (h *EntryHandler) CreateWithThread(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateEntryWithThread")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateEntryWithDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.entries.CreateForDate(ctx, user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(created))
}

// DeleteWithThread removes one entry and garbage-collects its thread when the
// entry was the last one on it.
func (h *EntryHandler) DeleteWithThread(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteEntryWithThread")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(c.Param("entry_id"))
	if err != nil {
		respondError(c, apperrors.Validation("invalid entry id"))
		return
	}

	if err := h.entries.DeleteWithThreadCleanup(ctx, user.ID, entryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EntryHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetEntry")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(c.Param("entry_id"))
	if err != nil {
		respondError(c, apperrors.Validation("invalid entry id"))
		return
	}

	entry, err := h.entries.GetWithThread(ctx, user.ID, entryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(entry))
}

func (h *EntryHandler) ByDate(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "EntriesByDate")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	var query dto.EntriesByDateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	date, err := dto.ParseDate(c.Param("date"))
	if err != nil {
		respondError(c, apperrors.Validation("invalid date, expected YYYY-MM-DD"))
		return
	}

	requestedUser, err := uuid.Parse(query.UserID)
	if err != nil {
		respondError(c, apperrors.Validation("invalid user id"))
		return
	}

	entries, err := h.entries.ByDate(ctx, user.ID, requestedUser, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(entries))
}

func (h *EntryHandler) Calendar(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "EntryCalendar")
	c.Request = c.Request.WithContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		return
	}
	var query dto.CalendarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	start, err := dto.ParseDate(query.StartDate)
	if err != nil {
		respondError(c, apperrors.Validation("invalid start_date, expected YYYY-MM-DD"))
		return
	}
	end, err := dto.ParseDate(query.EndDate)
	if err != nil {
		respondError(c, apperrors.Validation("invalid end_date, expected YYYY-MM-DD"))
		return
	}

	requestedUser, err := uuid.Parse(query.UserID)
	if err != nil {
		respondError(c, apperrors.Validation("invalid user id"))
		return
	}

	days, err := h.entries.Calendar(ctx, user.ID, requestedUser, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSingleItem(days))
}
