package query

import (
	"errors"
	"fmt"
)

// Pagination defaults and validation limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MinPage         = 1
	MinPageSize     = 1
	MaxPageSize     = 1000
)

// Common pagination validation errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = errors.New("page-size must be between 1 and 1000")
)

// Pagination is the page number and page size governing which slice of a list is requested.
type Pagination struct {
	// Page is the 1-based page number.
	Page int `json:"page" yaml:"page"`

	// PageSize is the number of items per page.
	PageSize int `json:"pageSize" yaml:"page_size"`
}

// DefaultPagination returns the first page with the default page size.
func DefaultPagination() Pagination {
	return Pagination{Page: DefaultPage, PageSize: DefaultPageSize}
}

// Normalize clamps the page to at least MinPage and replaces a non-positive
// page size with DefaultPageSize.
func (p Pagination) Normalize() Pagination {
	return p.normalizeWith(DefaultPageSize)
}

// normalizeWith is Normalize with a caller-chosen page size fallback.
func (p Pagination) normalizeWith(fallbackSize int) Pagination {
	if p.Page < MinPage {
		p.Page = MinPage
	}
	if p.PageSize < MinPageSize {
		p.PageSize = fallbackSize
	}
	if p.PageSize < MinPageSize {
		p.PageSize = DefaultPageSize
	}
	return p
}

// FirstPage returns a copy positioned on page 1 with the same page size.
func (p Pagination) FirstPage() Pagination {
	p.Page = MinPage
	return p
}

// Validate reports whether the pagination is within bounds.
func (p Pagination) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	return nil
}

// Offset returns the zero-based index of the first item on the page.
func (p Pagination) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the number of pages needed to hold total items.
func (p Pagination) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	size := p.Normalize().PageSize
	pages := total / size
	if total%size > 0 {
		pages++
	}
	return pages
}
