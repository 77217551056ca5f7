package shared

// Page size bounds shared by all listings
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination represents normalized page/limit parameters
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination normalizes raw page/limit values. A page below 1 becomes 1, a
// non-positive limit falls back to defaultLimit and limits are capped at MaxPageSize.
func NewPagination(page, limit, defaultLimit int) Pagination {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total / limit)
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}

// Filter represents query filter options
type Filter struct {
	Pagination
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Pagination: NewPagination(1, DefaultPageSize, DefaultPageSize),
		OrderBy:    "created_at",
		OrderDir:   "desc",
		Filters:    make(map[string]any),
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, p Pagination) Paginated[T] {
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}
