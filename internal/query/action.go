package query

// Action is the cause attributed to a table-change event.
type Action int

const (
	// ActionUnspecified asks Classify to infer the action.
	ActionUnspecified Action = iota
	// ActionPaginate moves to another page keeping sort and filters.
	ActionPaginate
	// ActionSort applies a new sort and returns to the first page.
	ActionSort
)

// String returns the lowercase action name.
func (a Action) String() string {
	switch a {
	case ActionPaginate:
		return "paginate"
	case ActionSort:
		return "sort"
	case ActionUnspecified:
		return "unspecified"
	default:
		return "unknown"
	}
}

// Classify decides whether a table change is a page change or a sort change.
// An explicit override wins. Otherwise a differing page number means
// ActionPaginate and anything else means ActionSort, so page intent always
// takes precedence when both page and sort move in the same event.
func Classify(proposed, current Pagination, override Action) Action {
	switch override {
	case ActionPaginate, ActionSort:
		return override
	case ActionUnspecified:
	}
	if proposed.Page != current.Page {
		return ActionPaginate
	}
	return ActionSort
}
