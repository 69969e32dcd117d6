package controller

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rshade/tablequery/internal/logging"
	"github.com/rshade/tablequery/internal/normalize"
	"github.com/rshade/tablequery/internal/query"
)

// State is a consistent snapshot of a controller.
// Query mirrors the most recently issued request; Result mirrors the most
// recently accepted response.
type State[T any] struct {
	Query   query.State
	Result  normalize.Result[T]
	Loading bool
}

// Controller reconciles pagination, sort and filters into canonical requests
// and folds accepted responses back into view state.
type Controller[T any] struct {
	fetch        FetchFunc
	process      normalize.Func[T]
	reporter     Reporter
	logger       zerolog.Logger
	applyOnMount bool

	// mu guards every field below.
	mu        sync.Mutex
	query     query.State
	result    normalize.Result[T]
	inFlight  int
	issued    uint64
	applied   uint64
	observers map[uint64]func(State[T])
	nextObs   uint64
}

// New creates a controller issuing requests through fetch.
func New[T any](fetch FetchFunc, opts Options[T]) (*Controller[T], error) {
	if fetch == nil {
		return nil, ErrNilFetch
	}

	pagination := opts.InitPagination
	if pagination == (query.Pagination{}) {
		pagination = query.DefaultPagination()
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logging.ComponentLogger(logger, "controller")

	process := opts.ProcessTableData
	if process == nil {
		process = normalize.Default[T](opts.ListField, opts.TotalField)
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = LogReporter{Logger: logger}
	}

	applyOnMount := true
	if opts.ApplyOnMount != nil {
		applyOnMount = *opts.ApplyOnMount
	}

	return &Controller[T]{
		fetch:        fetch,
		process:      process,
		reporter:     reporter,
		logger:       logger,
		applyOnMount: applyOnMount,
		query:        query.NewState(pagination, opts.InitFilters, opts.ExtraParams),
		result:       normalize.Empty[T](),
		observers:    make(map[uint64]func(State[T])),
	}, nil
}

// Mount issues the initial request when ApplyOnMount is enabled.
// The boolean reports whether a request was issued.
func (c *Controller[T]) Mount(ctx context.Context) (Resolution, bool) {
	if !c.applyOnMount {
		return Resolution{}, false
	}
	return c.issue(ctx, "mount", func(s *query.State) query.Params {
		return s.Params()
	}), true
}

// RequestList issues extraParams ⊕ override as-is. The query state is not
// modified; use the handlers to move pagination, sort or filters.
func (c *Controller[T]) RequestList(ctx context.Context, override map[string]any) Resolution {
	return c.issue(ctx, "request_list", func(_ *query.State) query.Params {
		return query.Merge(override)
	})
}

// Refresh re-issues the current query with extra overlaid on top of it.
func (c *Controller[T]) Refresh(ctx context.Context, extra map[string]any) Resolution {
	return c.issue(ctx, "refresh", func(s *query.State) query.Params {
		return query.Merge(s.Params(), extra)
	})
}

// HandleSearch replaces the filters, returns to page 1 and keeps the sort.
func (c *Controller[T]) HandleSearch(ctx context.Context, filters query.Filters) Resolution {
	return c.dispatch(ctx, query.Search{Filters: filters})
}

// HandleReset replaces the filters, clears the sort and returns to page 1.
func (c *Controller[T]) HandleReset(ctx context.Context, filters query.Filters) Resolution {
	return c.dispatch(ctx, query.Reset{Filters: filters})
}

// HandleTableChange reconciles a combined page/sort event. Pass
// query.ActionUnspecified to let the page number decide between paginate and sort.
func (c *Controller[T]) HandleTableChange(
	ctx context.Context,
	pagination query.Pagination,
	sort query.Sort,
	action query.Action,
) Resolution {
	return c.dispatch(ctx, query.TableChange{
		Pagination: pagination,
		Sort:       sort,
		Action:     action,
	})
}

// ClearSort drops the sort. It does not refetch.
func (c *Controller[T]) ClearSort() {
	c.set(query.ClearSort{})
}

// SetFilters replaces the filters. It does not refetch.
func (c *Controller[T]) SetFilters(filters query.Filters) {
	c.set(query.SetFilters{Filters: filters})
}

// SetPagination replaces the pagination. It does not refetch.
func (c *Controller[T]) SetPagination(pagination query.Pagination) {
	c.set(query.SetPagination{Pagination: pagination})
}

// SetSort replaces the sort. It does not refetch.
func (c *Controller[T]) SetSort(sort query.Sort) {
	c.set(query.SetSort{Sort: sort})
}

// SetExtraParams replaces the parameters merged into every request. Only
// requests issued afterwards are affected.
func (c *Controller[T]) SetExtraParams(params map[string]any) {
	c.set(query.SetExtraParams{Params: params})
}

// SortOrder returns the sort direction for columnKey, or DirectionNone when
// another column (or none) is sorted.
func (c *Controller[T]) SortOrder(columnKey string) query.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.SortOrder(columnKey)
}

// State returns a snapshot sharing no maps with the controller.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Loading reports whether at least one request is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

// Items returns the items of the accepted result.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.result.Items)
}

// Total returns the total of the accepted result.
func (c *Controller[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result.Total
}

// Pagination returns the current pagination.
func (c *Controller[T]) Pagination() query.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Pagination
}

// Filters returns a copy of the current filters.
func (c *Controller[T]) Filters() query.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Filters.Clone()
}

// Subscribe registers fn to receive a snapshot after every issue and every
// resolution. Calls happen outside the controller lock, possibly from several
// goroutines. The returned function unsubscribes.
func (c *Controller[T]) Subscribe(fn func(State[T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextObs++
	id := c.nextObs
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// set applies a non-issuing event.
func (c *Controller[T]) set(ev query.Event) {
	_ = c.Stage(context.Background(), ev)
}

// Dispatch applies ev and, when the event issues a request, runs it. The
// boolean reports whether a request was issued.
func (c *Controller[T]) Dispatch(ctx context.Context, ev query.Event) (Resolution, bool) {
	st, issues := c.stageEvent(ctx, ev, true)
	if !issues {
		return Resolution{}, false
	}
	return c.execute(ctx, st, true), true
}

// Stage applies ev immediately and returns the request it issues without
// running it, or nil for events that issue nothing. The sequence number is
// taken now, so a staged request that runs after a later one is discarded.
// Loading only turns on once the returned function runs; a staged request
// that is never run leaves no trace beyond its sequence number.
func (c *Controller[T]) Stage(ctx context.Context, ev query.Event) func() Resolution {
	st, issues := c.stageEvent(ctx, ev, false)
	if !issues {
		return nil
	}
	return func() Resolution {
		return c.execute(ctx, st, false)
	}
}

// stageEvent reduces ev into the query and tags the request it issues.
func (c *Controller[T]) stageEvent(ctx context.Context, ev query.Event, hold bool) (staged, bool) {
	return c.stage(eventOperation(ev), func(s *query.State) (query.Params, bool) {
		if tc, ok := ev.(query.TableChange); ok {
			c.logger.Debug().Ctx(ctx).
				Stringer("action", query.Classify(tc.Pagination, s.Pagination, tc.Action)).
				Msg("classified table change")
		}
		var issues bool
		*s, issues = query.Reduce(*s, ev)
		return s.Params(), issues
	}, hold)
}

// dispatch runs an issuing event.
func (c *Controller[T]) dispatch(ctx context.Context, ev query.Event) Resolution {
	res, _ := c.Dispatch(ctx, ev)
	return res
}

func eventOperation(ev query.Event) string {
	switch ev.(type) {
	case query.Search:
		return "search"
	case query.Reset:
		return "reset"
	case query.TableChange:
		return "table_change"
	case query.ClearSort:
		return "clear_sort"
	case query.SetFilters:
		return "set_filters"
	case query.SetPagination:
		return "set_pagination"
	case query.SetSort:
		return "set_sort"
	case query.SetExtraParams:
		return "set_extra_params"
	default:
		return "unknown"
	}
}

func (c *Controller[T]) snapshotLocked() State[T] {
	return State[T]{
		Query:   c.query.Clone(),
		Result:  normalize.Result[T]{Items: slices.Clone(c.result.Items), Total: c.result.Total},
		Loading: c.inFlight > 0,
	}
}

func (c *Controller[T]) observersLocked() []func(State[T]) {
	if len(c.observers) == 0 {
		return nil
	}
	out := make([]func(State[T]), 0, len(c.observers))
	for _, fn := range c.observers {
		out = append(out, fn)
	}
	return out
}

func notify[T any](observers []func(State[T]), snap State[T]) {
	for _, fn := range observers {
		fn(snap)
	}
}
