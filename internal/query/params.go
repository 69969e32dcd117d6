package query

import "maps"

// Reserved keys of the canonical request.
const (
	ParamPage     = "page"
	ParamPageSize = "pageSize"
	ParamSorter   = "sorter"
)

// Filters maps caller-defined keys to constraint values.
type Filters map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	maps.Copy(out, f)
	return out
}

// Params is an outgoing request handed to the data source.
type Params map[string]any

// Merge returns base overlaid by each overlay in order (right-biased, shallow).
// None of the inputs are modified.
func Merge(base map[string]any, overlays ...map[string]any) Params {
	size := len(base)
	for _, o := range overlays {
		size += len(o)
	}
	out := make(Params, size)
	maps.Copy(out, base)
	for _, o := range overlays {
		maps.Copy(out, o)
	}
	return out
}

// Page returns the page number carried by the request, or 0 if absent.
func (p Params) Page() int {
	return intParam(p[ParamPage])
}

// PageSize returns the page size carried by the request, or 0 if absent.
func (p Params) PageSize() int {
	return intParam(p[ParamPageSize])
}

// Sort returns the sort carried by the request.
func (p Params) Sort() Sort {
	return SortFromParams(p[ParamSorter])
}

// Filters returns every non-reserved key of the request.
func (p Params) Filters() Filters {
	out := Filters{}
	for k, v := range p {
		switch k {
		case ParamPage, ParamPageSize, ParamSorter:
			continue
		}
		out[k] = v
	}
	return out
}

func intParam(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
