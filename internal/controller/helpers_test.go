package controller

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/tablequery/internal/normalize"
	"github.com/rshade/tablequery/internal/query"
)

type row struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// recordingReporter collects reported errors.
type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Report(_ context.Context, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// recordingFetch answers every request with respond and remembers the params.
type recordingFetch struct {
	mu      sync.Mutex
	calls   []query.Params
	respond func(query.Params) (normalize.Response, error)
}

func (f *recordingFetch) Fetch(_ context.Context, p query.Params) (normalize.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	respond := f.respond
	f.mu.Unlock()
	if respond == nil {
		return normalize.Response{"success": true, "data": []row{}, "total": 0}, nil
	}
	return respond(p)
}

func (f *recordingFetch) Calls() []query.Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]query.Params(nil), f.calls...)
}

func (f *recordingFetch) Last() query.Params {
	calls := f.Calls()
	if len(calls) == 0 {
		return nil
	}
	return calls[len(calls)-1]
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{ID: i + 1, Name: "row"}
	}
	return out
}

func newTestController(
	t *testing.T,
	fetch *recordingFetch,
	opts Options[row],
) (*Controller[row], *recordingReporter) {
	t.Helper()
	reporter := &recordingReporter{}
	if opts.Reporter == nil {
		opts.Reporter = reporter
	}
	c, err := New[row](fetch.Fetch, opts)
	require.NoError(t, err)
	return c, reporter
}
