package query

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is the ordering requested for a sorted column.
type Direction int

const (
	// DirectionNone means no ordering is requested.
	DirectionNone Direction = iota
	// Ascending orders from smallest to largest.
	Ascending
	// Descending orders from largest to smallest.
	Descending
)

// Wire forms of the sort direction.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Sorter keys written into the canonical request.
const (
	sorterFieldKey = "field"
	sorterOrderKey = "order"
)

// Sort parsing errors.
var (
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
)

// String returns "asc", "desc" or "" for DirectionNone.
func (d Direction) String() string {
	switch d {
	case Ascending:
		return SortOrderAsc
	case Descending:
		return SortOrderDesc
	case DirectionNone:
		return ""
	default:
		return ""
	}
}

// Toggle flips Ascending and Descending. DirectionNone becomes Ascending.
func (d Direction) Toggle() Direction {
	switch d {
	case Ascending:
		return Descending
	case Descending, DirectionNone:
		return Ascending
	default:
		return Ascending
	}
}

// ParseDirection parses a direction string. The empty string yields DirectionNone.
// Besides "asc" and "desc" the long forms "ascend"/"ascending" and
// "descend"/"descending" are accepted, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DirectionNone, nil
	case SortOrderAsc, "ascend", "ascending":
		return Ascending, nil
	case SortOrderDesc, "descend", "descending":
		return Descending, nil
	default:
		return DirectionNone, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, s)
	}
}

// Sort is an optional column identifier plus direction.
// The zero value means unsorted.
type Sort struct {
	Field     string
	Direction Direction
}

// Unsorted returns the empty sort.
func Unsorted() Sort {
	return Sort{}
}

// IsZero reports whether no sort is active.
func (s Sort) IsZero() bool {
	return s.Field == "" || s.Direction == DirectionNone
}

// Normalize collapses a half-specified sort (field without direction or
// direction without field) to unsorted.
func (s Sort) Normalize() Sort {
	if s.IsZero() {
		return Sort{}
	}
	return s
}

// Params returns the sorter value written into the canonical request:
// an empty map when unsorted, otherwise {"field": ..., "order": ...}.
func (s Sort) Params() map[string]any {
	if s.IsZero() {
		return map[string]any{}
	}
	return map[string]any{
		sorterFieldKey: s.Field,
		sorterOrderKey: s.Direction.String(),
	}
}

// String renders the sort as "field:order", or "" when unsorted.
func (s Sort) String() string {
	if s.IsZero() {
		return ""
	}
	return s.Field + ":" + s.Direction.String()
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// A bare field sorts ascending. The empty string yields an unsorted Sort.
func ParseSort(sortStr string) (Sort, error) {
	if strings.TrimSpace(sortStr) == "" {
		return Sort{}, nil
	}

	parts := strings.Split(sortStr, ":")
	var field, order string
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = parts[1]
	default:
		return Sort{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return Sort{}, ErrEmptySortField
	}

	dir, err := ParseDirection(order)
	if err != nil {
		return Sort{}, err
	}
	if dir == DirectionNone {
		return Sort{}, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return Sort{Field: field, Direction: dir}, nil
}

// SortFromParams reads a sorter value produced by Sort.Params back into a Sort.
// Unknown shapes yield an unsorted Sort.
func SortFromParams(v any) Sort {
	m, ok := v.(map[string]any)
	if !ok {
		return Sort{}
	}
	field, _ := m[sorterFieldKey].(string)
	order, _ := m[sorterOrderKey].(string)
	dir, err := ParseDirection(order)
	if err != nil {
		return Sort{}
	}
	return Sort{Field: field, Direction: dir}.Normalize()
}
