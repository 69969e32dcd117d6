package query

import "maps"

// State is the aggregate query state: pagination, sort, filters and the
// static extra parameters merged into every outgoing request.
type State struct {
	Pagination  Pagination
	Sort        Sort
	Filters     Filters
	ExtraParams map[string]any
}

// NewState returns a State positioned on the given pagination and filters,
// unsorted, with the given extra parameters.
func NewState(pagination Pagination, filters Filters, extra map[string]any) State {
	return State{
		Pagination:  pagination.Normalize(),
		Filters:     filters.Clone(),
		ExtraParams: cloneMap(extra),
	}
}

// Clone returns a copy that shares no maps with s.
func (s State) Clone() State {
	return State{
		Pagination:  s.Pagination,
		Sort:        s.Sort,
		Filters:     s.Filters.Clone(),
		ExtraParams: cloneMap(s.ExtraParams),
	}
}

// Params builds the canonical request for this state without extra parameters.
// Filters are written first and the reserved keys after them, so a filter
// named "page" can never move the request off the page held in the state.
func (s State) Params() Params {
	out := make(Params, len(s.Filters)+3) //nolint:mnd // page, pageSize, sorter.
	maps.Copy(out, s.Filters)
	out[ParamPage] = s.Pagination.Page
	out[ParamPageSize] = s.Pagination.PageSize
	out[ParamSorter] = s.Sort.Params()
	return out
}

// SortOrder returns the active direction when key is the sorted column and
// DirectionNone otherwise. It never mutates the state.
func (s State) SortOrder(key string) Direction {
	if s.Sort.Field != key {
		return DirectionNone
	}
	return s.Sort.Direction
}

// Event is a reconciliation trigger. The set of events is closed: only the
// types declared in this package implement it.
type Event interface {
	isEvent()
}

// Search replaces the filters and returns to page 1, keeping the sort.
type Search struct {
	Filters Filters
}

// Reset replaces the filters, clears the sort and returns to page 1.
type Reset struct {
	Filters Filters
}

// TableChange is a combined page/sort event raised by a table widget.
// Action may be left unspecified to let Classify decide.
type TableChange struct {
	Pagination Pagination
	Sort       Sort
	Action     Action
}

// ClearSort drops the active sort without issuing a request.
type ClearSort struct{}

// SetFilters replaces the filters without issuing a request.
type SetFilters struct {
	Filters Filters
}

// SetPagination replaces the pagination without issuing a request.
type SetPagination struct {
	Pagination Pagination
}

// SetSort replaces the sort without issuing a request.
type SetSort struct {
	Sort Sort
}

// SetExtraParams replaces the static extra parameters without issuing a request.
type SetExtraParams struct {
	Params map[string]any
}

func (Search) isEvent()         {}
func (Reset) isEvent()          {}
func (TableChange) isEvent()    {}
func (ClearSort) isEvent()      {}
func (SetFilters) isEvent()     {}
func (SetPagination) isEvent()  {}
func (SetSort) isEvent()        {}
func (SetExtraParams) isEvent() {}

// Reduce applies e to s and returns the next state together with whether the
// event issues a request. The input state is never modified.
func Reduce(s State, e Event) (State, bool) {
	next := s.Clone()

	switch ev := e.(type) {
	case Search:
		next.Pagination = next.Pagination.FirstPage()
		next.Filters = ev.Filters.Clone()
		return next, true

	case Reset:
		next.Pagination = next.Pagination.FirstPage()
		next.Sort = Sort{}
		next.Filters = ev.Filters.Clone()
		return next, true

	case TableChange:
		switch Classify(ev.Pagination, s.Pagination, ev.Action) {
		case ActionPaginate:
			next.Pagination = ev.Pagination.normalizeWith(s.Pagination.PageSize)
		case ActionSort, ActionUnspecified:
			next.Pagination = ev.Pagination.normalizeWith(s.Pagination.PageSize).FirstPage()
			next.Sort = ev.Sort.Normalize()
		}
		return next, true

	case ClearSort:
		next.Sort = Sort{}
		return next, false

	case SetFilters:
		next.Filters = ev.Filters.Clone()
		return next, false

	case SetPagination:
		next.Pagination = ev.Pagination.normalizeWith(s.Pagination.PageSize)
		return next, false

	case SetSort:
		next.Sort = ev.Sort.Normalize()
		return next, false

	case SetExtraParams:
		next.ExtraParams = cloneMap(ev.Params)
		return next, false

	default:
		return next, false
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	maps.Copy(out, m)
	return out
}
