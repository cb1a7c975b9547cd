package dto

import (
	"fmt"
	"math"
	"strings"

	"github.com/ashdowne/daybook/internal/constants"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/store"
	"github.com/google/uuid"
)

// PageQuery carries bounded pagination parameters from the query string.
type PageQuery struct {
	CurrentPage int `form:"current_page,default=1" binding:"omitempty,gte=1"`
	PageSize    int `form:"page_size,default=100" binding:"omitempty,gte=1,lte=10000"`
}

// ToStore normalizes to the documented defaults and caps, so a zero-value
// query built in code behaves like an empty query string.
func (q PageQuery) ToStore() store.PageParams {
	page := q.CurrentPage
	if page < constants.MinPage {
		page = constants.DefaultPage
	}
	size := q.PageSize
	if size < constants.MinPageSize {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	return store.PageParams{CurrentPage: page, PageSize: size}
}

// SortQuery carries sort parameters from the query string. The column name is
// validated downstream against the entity's descriptor.
type SortQuery struct {
	SortBy        string `form:"sort_by,default=id"`
	SortDirection string `form:"sort_direction,default=asc" binding:"omitempty,oneof=asc desc"`
}

func (q SortQuery) ToStore() store.SortParams {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = constants.DefaultSortBy
	}
	direction := q.SortDirection
	if direction == "" {
		direction = constants.DefaultSortDirection
	}
	return store.SortParams{SortBy: sortBy, SortDirection: direction}
}

// IDsQuery accepts repeated ?ids= query parameters.
type IDsQuery struct {
	IDs []string `form:"ids"`
}

// ParseUUIDList converts raw id strings to UUIDs, reporting every malformed
// value at once.
func ParseUUIDList(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(raw))
	var bad []string
	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			bad = append(bad, s)
			continue
		}
		ids = append(ids, id)
	}
	if len(bad) > 0 {
		return nil, apperrors.Validation(fmt.Sprintf("invalid uuid values: %s", strings.Join(bad, ", ")))
	}
	return ids, nil
}

// SingleItemResponse is the standard envelope for non-paginated payloads.
type SingleItemResponse[T any] struct {
	Data T `json:"data"`
}

func NewSingleItem[T any](data T) SingleItemResponse[T] {
	return SingleItemResponse[T]{Data: data}
}

// PaginatedResponse is the standard envelope for list payloads.
type PaginatedResponse[T any] struct {
	Data          []T    `json:"data"`
	CurrentPage   int    `json:"current_page"`
	PageSize      int    `json:"page_size"`
	TotalRecords  int64  `json:"total_records"`
	TotalPages    int    `json:"total_pages"`
	SortBy        string `json:"sort_by"`
	SortDirection string `json:"sort_direction"`
}

func NewPaginated[T any](page PageQuery, sort SortQuery, total int64, data []T) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Data:          data,
		CurrentPage:   page.CurrentPage,
		PageSize:      page.PageSize,
		TotalRecords:  total,
		TotalPages:    int(math.Ceil(float64(total) / float64(page.PageSize))),
		SortBy:        sort.SortBy,
		SortDirection: sort.SortDirection,
	}
}
