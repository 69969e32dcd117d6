package source

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/tablequery/internal/logging"
	"github.com/rshade/tablequery/internal/normalize"
	"github.com/rshade/tablequery/internal/query"
)

// SearchKey is the filter key matched as a case-insensitive substring against
// every field of a record.
const SearchKey = "q"

// Record is one row of the data set.
type Record map[string]any

// Memory answers table queries from an in-memory record set.
// Thread-safe for concurrent queries.
type Memory struct {
	mu      sync.RWMutex
	records []Record
	latency time.Duration
	logger  zerolog.Logger
}

// NewMemory creates a source over records. The slice is copied.
func NewMemory(records []Record) *Memory {
	return &Memory{
		records: slices.Clone(records),
		logger:  zerolog.Nop(),
	}
}

// WithLatency delays every query by d to simulate a remote call.
func (m *Memory) WithLatency(d time.Duration) *Memory {
	m.latency = d
	return m
}

// WithLogger sets the logger used for query diagnostics.
func (m *Memory) WithLogger(l zerolog.Logger) *Memory {
	m.logger = logging.ComponentLogger(l, "source")
	return m
}

// Len returns the number of records held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Query filters, sorts and pages the records according to params.
// It honours ctx cancellation while waiting out the configured latency.
func (m *Memory) Query(ctx context.Context, params query.Params) (normalize.Response, error) {
	if m.latency > 0 {
		timer := time.NewTimer(m.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	m.mu.RLock()
	matched := filterRecords(m.records, params.Filters())
	m.mu.RUnlock()

	sortRecords(matched, params.Sort())

	page := query.Pagination{Page: params.Page(), PageSize: params.PageSize()}.Normalize()
	items := pageRecords(matched, page)

	m.logger.Debug().Ctx(ctx).
		Str("operation", "query").
		Int("page", page.Page).
		Int("page_size", page.PageSize).
		Int("matched", len(matched)).
		Int("returned", len(items)).
		Msg("query answered")

	return normalize.Response{
		"success": true,
		"data":    items,
		"total":   len(matched),
	}, nil
}

// Values returns the distinct, sorted string forms of field across all records.
func (m *Memory) Values(field string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, r := range m.records {
		v, ok := r[field]
		if !ok || v == nil {
			continue
		}
		s := fmt.Sprint(v)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

func filterRecords(records []Record, filters query.Filters) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if matches(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

// matches reports whether r satisfies every non-empty filter. The search key
// matches any field; other keys compare string forms case-insensitively.
func matches(r Record, filters query.Filters) bool {
	for key, want := range filters {
		wantStr := strings.TrimSpace(fmt.Sprint(want))
		if want == nil || wantStr == "" {
			continue
		}
		if key == SearchKey {
			if !containsAny(r, wantStr) {
				return false
			}
			continue
		}
		got, ok := r[key]
		if !ok || !strings.EqualFold(fmt.Sprint(got), wantStr) {
			return false
		}
	}
	return true
}

func containsAny(r Record, needle string) bool {
	needle = strings.ToLower(needle)
	for _, v := range r {
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
			return true
		}
	}
	return false
}

// sortRecords sorts in place with a stable sort. Records missing the field
// always sort last regardless of direction.
func sortRecords(records []Record, s query.Sort) {
	if s.IsZero() {
		return
	}
	slices.SortStableFunc(records, func(a, b Record) int {
		av, aok := a[s.Field]
		bv, bok := b[s.Field]
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		c := compareValues(av, bv)
		if s.Direction == query.Descending {
			return -c
		}
		return c
	})
}

// compareValues compares numerically when both values are numbers and by
// string form otherwise.
func compareValues(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return cmp.Compare(af, bf)
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// pageRecords returns the slice for page p; pages beyond the end are empty.
func pageRecords(records []Record, p query.Pagination) []Record {
	offset := p.Offset()
	if offset >= len(records) {
		return []Record{}
	}
	end := min(offset+p.PageSize, len(records))
	return records[offset:end]
}
