package domain

const (
	DefaultPerPage = 12
	MaxPerPage     = 100
)

// Page is a normalized page request.
type Page struct {
	Page    int
	PerPage int
}

// NewPage clamps page and per-page values to sane bounds.
func NewPage(page, perPage int) Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Page: page, PerPage: perPage}
}

func (p Page) Limit() int  { return p.PerPage }
func (p Page) Offset() int { return (p.Page - 1) * p.PerPage }

// PaginatedResult for list responses
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginatedResult fills in the derived page count.
func NewPaginatedResult[T any](items []T, total int64, p Page) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if p.PerPage > 0 {
		totalPages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}
	return &PaginatedResult[T]{
		Data:       items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PerPage,
		TotalPages: totalPages,
	}
}
