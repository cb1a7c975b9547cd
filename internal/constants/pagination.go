package constants

// Default Pagination Values
const (
	DefaultPage          = 1
	DefaultPageSize      = 100
	DefaultSortBy        = "id"
	DefaultSortDirection = "asc"
)

// Pagination Limits
const (
	MinPage     = 1
	MinPageSize = 1
	MaxPageSize = 10000
)

// Sort Directions
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)
