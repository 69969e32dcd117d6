package cli

import (
	"context"
	"errors"
	"slices"

	"github.com/rshade/tablequery/internal/config"
	"github.com/rshade/tablequery/internal/controller"
	"github.com/rshade/tablequery/internal/logging"
	"github.com/rshade/tablequery/internal/normalize"
	"github.com/rshade/tablequery/internal/options"
	"github.com/rshade/tablequery/internal/query"
	"github.com/rshade/tablequery/internal/source"
	"github.com/rshade/tablequery/internal/tui"
)

var (
	// ErrNoData is returned when neither --data nor source.file names a record file.
	ErrNoData = errors.New("no record file: pass --data or set source.file in the config")

	errNoOptionField = errors.New("options request without a field")
)

// session bundles a record source with the configuration that describes it.
type session struct {
	cfg    *config.Config
	source *source.Memory
}

// openSession loads the record file named by dataPath, or by the config when
// dataPath is empty.
func openSession(cfg *config.Config, dataPath string) (*session, error) {
	if dataPath == "" {
		dataPath = cfg.Source.File
	}
	if dataPath == "" {
		return nil, ErrNoData
	}

	records, err := source.LoadRecords(dataPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("file", dataPath).Int("records", len(records)).Msg("records loaded")

	src := source.NewMemory(records).
		WithLatency(cfg.Source.Latency).
		WithLogger(logger)
	return &session{cfg: cfg, source: src}, nil
}

// controller creates a table controller over the session's source.
func (s *session) controller(reporter controller.Reporter) (*controller.Controller[source.Record], error) {
	l := logger
	opts := config.TableOptions[source.Record](s.cfg.Table, &l)
	opts.Reporter = reporter
	return controller.New[source.Record](s.source.Query, opts)
}

// columns returns the configured columns, or one sortable column per field
// of the first record when none are configured.
func (s *session) columns() []tui.Column {
	if len(s.cfg.Columns) > 0 {
		cols := make([]tui.Column, len(s.cfg.Columns))
		for i, c := range s.cfg.Columns {
			cols[i] = tui.Column{Key: c.Key, Title: c.Title, Width: c.Width, Sortable: c.Sortable}
		}
		return cols
	}

	resp, err := s.source.Query(context.Background(), query.Params{query.ParamPage: 1, query.ParamPageSize: 1})
	if err != nil {
		return nil
	}
	first, ok := resp[normalize.DefaultListField].([]source.Record)
	if !ok || len(first) == 0 {
		return nil
	}
	keys := make([]string, 0, len(first[0]))
	for k := range first[0] {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	cols := make([]tui.Column, len(keys))
	for i, k := range keys {
		cols[i] = tui.Column{Key: k, Title: k, Sortable: true}
	}
	return cols
}

// filters resolves the options of every enum filter. Filters with fixed
// enums use them; the rest are filled with the distinct values of the field.
// A filter whose options fail to load is kept without options.
func (s *session) filters(ctx context.Context) []tui.Filter {
	log := logging.FromContext(ctx)
	loaders := make(map[string]options.Loader)
	for _, f := range s.cfg.Filters {
		if f.Type != config.FilterTypeEnum {
			continue
		}
		if len(f.Enums) > 0 {
			loaders[f.Name] = options.Loader{Enums: options.FromStrings(f.Enums...)}
			continue
		}
		loaders[f.Name] = options.Loader{
			Fetcher: s.distinctValues,
			Params:  map[string]any{"field": f.Name},
			OnError: func(err error) {
				log.Warn().Ctx(ctx).Err(err).Str("filter", f.Name).Msg("loading filter options")
			},
		}
	}

	loaded, err := options.LoadAll(ctx, loaders)
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("some filter options failed to load")
	}

	out := make([]tui.Filter, 0, len(loaders))
	for _, f := range s.cfg.Filters {
		if f.Type != config.FilterTypeEnum {
			continue
		}
		out = append(out, tui.Filter{Name: f.Name, Label: f.Label, Options: loaded[f.Name]})
	}
	return out
}

// distinctValues answers an options request with the distinct values of
// params["field"].
func (s *session) distinctValues(_ context.Context, params map[string]any) (normalize.Response, error) {
	field, _ := params["field"].(string)
	if field == "" {
		return nil, errNoOptionField
	}
	return normalize.Response{"success": true, "data": s.source.Values(field)}, nil
}
