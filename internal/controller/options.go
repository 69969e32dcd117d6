package controller

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rshade/tablequery/internal/normalize"
	"github.com/rshade/tablequery/internal/query"
)

// FetchFunc issues a request to the external data source. It may block; a
// returned error or a panic is treated as a transport failure. Timeouts are the
// fetch function's own responsibility.
type FetchFunc func(ctx context.Context, params query.Params) (normalize.Response, error)

// Options configures a Controller. The zero value is usable: first page of
// ten, no filters, "data"/"total" fields, fetch on mount, errors logged.
type Options[T any] struct {
	// InitFilters are the filters in place before the first search.
	InitFilters query.Filters

	// InitPagination is the starting pagination (default page 1, size 10).
	InitPagination query.Pagination

	// ListField and TotalField name the response fields read by the default normalizer.
	ListField  string
	TotalField string

	// ApplyOnMount controls whether Mount issues a request. Nil means true.
	ApplyOnMount *bool

	// ExtraParams are merged into every outgoing request.
	ExtraParams map[string]any

	// ProcessTableData replaces the default normalizer when set.
	ProcessTableData normalize.Func[T]

	// Reporter surfaces failures. Nil means a LogReporter on Logger.
	Reporter Reporter

	// Logger receives controller diagnostics. Nil means a disabled logger.
	Logger *zerolog.Logger
}

// Bool returns a pointer to b, for ApplyOnMount.
func Bool(b bool) *bool {
	return &b
}
