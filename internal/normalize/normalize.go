package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Default field names and fallbacks.
const (
	DefaultListField  = "data"
	DefaultTotalField = "total"

	// DefaultTotal is used when a response carries no total field.
	DefaultTotal = 10

	successKey = "success"
	messageKey = "message"

	defaultFailureMessage = "request failed"
)

// Normalization errors.
var (
	ErrInvalidList  = errors.New("response list field has an unexpected shape")
	ErrInvalidTotal = errors.New("response total field is not numeric")
)

// Response is a raw data-source response, typically decoded from JSON.
// The keys "success" and "message" are interpreted by the controller; the
// list and total keys are configurable.
type Response map[string]any

// Success reports whether the response carries success == true.
func (r Response) Success() bool {
	ok, _ := r[successKey].(bool)
	return ok
}

// Message returns the failure message: the "message" string if present,
// otherwise a string "data" value, otherwise a generic text.
func (r Response) Message() string {
	if msg, ok := r[messageKey].(string); ok && msg != "" {
		return msg
	}
	if msg, ok := r[DefaultListField].(string); ok && msg != "" {
		return msg
	}
	return defaultFailureMessage
}

// Result is the canonical list-plus-total view of a response.
type Result[T any] struct {
	Items []T
	Total int
}

// Empty returns the zero result with a non-nil item slice.
func Empty[T any]() Result[T] {
	return Result[T]{Items: []T{}}
}

// Func maps a response into a Result.
type Func[T any] func(resp Response) (Result[T], error)

// Default returns the standard mapping reading items from listField and the
// total from totalField. Empty names fall back to DefaultListField and
// DefaultTotalField. A missing list yields no items; a missing total yields
// DefaultTotal.
func Default[T any](listField, totalField string) Func[T] {
	if listField == "" {
		listField = DefaultListField
	}
	if totalField == "" {
		totalField = DefaultTotalField
	}

	return func(resp Response) (Result[T], error) {
		items, err := decodeItems[T](resp[listField])
		if err != nil {
			return Result[T]{}, fmt.Errorf("field %q: %w", listField, err)
		}

		total, err := decodeTotal(resp[totalField])
		if err != nil {
			return Result[T]{}, fmt.Errorf("field %q: %w", totalField, err)
		}

		return Result[T]{Items: items, Total: total}, nil
	}
}

// decodeItems accepts an already typed []T, or any JSON-compatible list that
// can be re-marshalled into []T.
func decodeItems[T any](raw any) ([]T, error) {
	switch v := raw.(type) {
	case nil:
		return []T{}, nil
	case []T:
		if v == nil {
			return []T{}, nil
		}
		return v, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidList, err)
	}

	var items []T
	if err = json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidList, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// decodeTotal accepts any numeric kind. Absent means DefaultTotal and
// negative values clamp to zero.
func decodeTotal(raw any) (int, error) {
	var total int
	switch v := raw.(type) {
	case nil:
		return DefaultTotal, nil
	case int:
		total = v
	case int32:
		total = int(v)
	case int64:
		total = int(v)
	case uint:
		total = clampUint(uint64(v))
	case uint32:
		total = int(v)
	case uint64:
		total = clampUint(v)
	case float32:
		return floatTotal(float64(v))
	case float64:
		return floatTotal(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidTotal, v.String())
			}
			return floatTotal(f)
		}
		total = int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTotal, v)
		}
		total = n
	default:
		return 0, fmt.Errorf("%w: %T", ErrInvalidTotal, raw)
	}

	if total < 0 {
		return 0, nil
	}
	return total, nil
}

// floatTotal truncates f to an int. NaN and infinities are rejected, negative
// values become 0 and values beyond math.MaxInt saturate.
func floatTotal(f float64) (int, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, fmt.Errorf("%w: %v", ErrInvalidTotal, f)
	case f <= 0:
		return 0, nil
	case f >= math.MaxInt:
		return math.MaxInt, nil
	}
	return int(f), nil
}

func clampUint(v uint64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}
