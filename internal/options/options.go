package options

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/tablequery/internal/normalize"
)

// ErrNoSource is returned by a Loader with neither Enums nor a Fetcher.
var ErrNoSource = errors.New("options loader needs enums or a fetcher")

// Option is one selectable choice.
type Option struct {
	Label string
	Value any
}

// Fetcher retrieves the raw data behind a choice list.
type Fetcher func(ctx context.Context, params map[string]any) (normalize.Response, error)

// Formatter maps a fetched response into options.
type Formatter func(resp normalize.Response) ([]Option, error)

// Loader produces a choice list from fixed enums or from a fetch.
type Loader struct {
	// Enums short-circuits the fetch when non-nil.
	Enums []Option

	Fetcher Fetcher

	// Params are passed to the Fetcher.
	Params map[string]any

	// Formatter defaults to DefaultFormatter.
	Formatter Formatter

	// OnError is called with any fetch or format error.
	OnError func(err error)

	// AfterSuccess is called with the raw response after a successful load.
	AfterSuccess func(resp normalize.Response)
}

// Load returns the options for l. On failure OnError is called and the error
// is also returned with a nil slice.
func (l Loader) Load(ctx context.Context) ([]Option, error) {
	if l.Enums != nil {
		return l.Enums, nil
	}
	if l.Fetcher == nil {
		return nil, ErrNoSource
	}

	opts, err := l.fetch(ctx)
	if err != nil {
		if l.OnError != nil {
			l.OnError(err)
		}
		return nil, err
	}
	return opts, nil
}

func (l Loader) fetch(ctx context.Context) ([]Option, error) {
	resp, err := l.Fetcher(ctx, l.Params)
	if err != nil {
		return nil, fmt.Errorf("fetching options: %w", err)
	}

	format := l.Formatter
	if format == nil {
		format = DefaultFormatter
	}
	opts, err := format(resp)
	if err != nil {
		return nil, fmt.Errorf("formatting options: %w", err)
	}
	if opts == nil {
		opts = []Option{}
	}

	if l.AfterSuccess != nil {
		l.AfterSuccess(resp)
	}
	return opts, nil
}

// DefaultFormatter maps a "data" list of scalars to options whose label and
// value are the scalar itself. A missing or non-list "data" yields no options.
func DefaultFormatter(resp normalize.Response) ([]Option, error) {
	var values []any
	switch v := resp[normalize.DefaultListField].(type) {
	case []any:
		values = v
	case []string:
		for _, s := range v {
			values = append(values, s)
		}
	default:
		return []Option{}, nil
	}

	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Label: fmt.Sprint(v), Value: v})
	}
	return out, nil
}

// FromStrings builds options whose label and value are the same string.
func FromStrings(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Label: v, Value: v})
	}
	return out
}

// LoadAll loads every named loader concurrently. It returns the lists that
// loaded and the first error encountered; one failing list does not cancel
// the others.
func LoadAll(ctx context.Context, loaders map[string]Loader) (map[string][]Option, error) {
	var (
		mu  sync.Mutex
		out = make(map[string][]Option, len(loaders))
		g   errgroup.Group
	)

	for name, l := range loaders {
		g.Go(func() error {
			opts, err := l.Load(ctx)
			if err != nil {
				return fmt.Errorf("options %q: %w", name, err)
			}
			mu.Lock()
			out[name] = opts
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return out, err
}
