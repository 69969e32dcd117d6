package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablequery/internal/query"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tablequery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, query.Pagination{Page: 1, PageSize: 10}, cfg.Table.InitPagination)
	assert.Equal(t, "data", cfg.Table.ListField)
	assert.Equal(t, "total", cfg.Table.TotalField)
	require.NotNil(t, cfg.Table.ApplyOnMount)
	assert.True(t, *cfg.Table.ApplyOnMount)
	assert.Empty(t, cfg.Table.InitFilters)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Overlay(t *testing.T) {
	path := writeConfig(t, `
table:
  init_pagination:
    page: 2
    page_size: 25
  list_field: rows
  apply_on_mount: false
  init_filters:
    status: active
  extra_params:
    tenant: acme
logging:
  level: debug
source:
  file: people.json
  latency: 150ms
columns:
  - key: name
    title: Name
    width: 20
    sortable: true
filters:
  - name: status
    label: Status
    type: enum
    enums: [active, archived]
unknown_section: ignored
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, query.Pagination{Page: 2, PageSize: 25}, cfg.Table.InitPagination)
	assert.Equal(t, "rows", cfg.Table.ListField)
	assert.Equal(t, "total", cfg.Table.TotalField, "omitted table fields keep defaults")
	assert.False(t, *cfg.Table.ApplyOnMount)
	assert.Equal(t, map[string]any{"status": "active"}, cfg.Table.InitFilters)
	assert.Equal(t, map[string]any{"tenant": "acme"}, cfg.Table.ExtraParams)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 150*time.Millisecond, cfg.Source.Latency)
	require.Len(t, cfg.Columns, 1)
	assert.True(t, cfg.Columns[0].Sortable)
	require.Len(t, cfg.Filters, 1)
	assert.Equal(t, []string{"active", "archived"}, cfg.Filters[0].Enums)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "table: [not, a, map]"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "table:\n  init_pagination:\n    page: 0\n    page_size: 10\n"))
	require.ErrorIs(t, err, query.ErrInvalidPage)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "empty column key",
			mutate:  func(c *Config) { c.Columns = []ColumnConfig{{Key: " "}} },
			wantErr: ErrEmptyColumnKey,
		},
		{
			name:    "duplicate column",
			mutate:  func(c *Config) { c.Columns = []ColumnConfig{{Key: "a"}, {Key: "a"}} },
			wantErr: ErrDuplicateColumn,
		},
		{
			name:    "empty filter name",
			mutate:  func(c *Config) { c.Filters = []FilterConfig{{Type: FilterTypeInput}} },
			wantErr: ErrEmptyFilterName,
		},
		{
			name:    "bad filter type",
			mutate:  func(c *Config) { c.Filters = []FilterConfig{{Name: "x", Type: "slider"}} },
			wantErr: ErrUnknownFilterType,
		},
		{
			name:    "negative latency",
			mutate:  func(c *Config) { c.Source.Latency = -time.Second },
			wantErr: ErrNegativeLatency,
		},
		{
			name:    "page size too large",
			mutate:  func(c *Config) { c.Table.InitPagination.PageSize = 5000 },
			wantErr: query.ErrInvalidPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{EnvLogLevel: "warn", EnvLogFormat: "json"}

	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestTableOptions(t *testing.T) {
	cfg := Default()
	cfg.Table.InitFilters = map[string]any{"q": "x"}
	cfg.Table.ExtraParams = map[string]any{"tenant": "acme"}
	logger := zerolog.Nop()

	opts := TableOptions[map[string]any](cfg.Table, &logger)

	assert.Equal(t, query.Filters{"q": "x"}, opts.InitFilters)
	assert.Equal(t, "data", opts.ListField)
	assert.True(t, *opts.ApplyOnMount)
	assert.Equal(t, "acme", opts.ExtraParams["tenant"])

	opts.InitFilters["q"] = "changed"
	assert.Equal(t, "x", cfg.Table.InitFilters["q"], "options do not alias the config maps")
}

func TestGlobalConfig(t *testing.T) {
	orig := GetGlobalConfig()
	t.Cleanup(func() { SetGlobalConfig(orig) })

	cfg := Default()
	cfg.Logging.Level = "error"
	SetGlobalConfig(cfg)

	assert.Equal(t, "error", GetGlobalConfig().Logging.Level)
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(CloseLogFile)
	path := filepath.Join(t.TempDir(), "logs", "tablequery.log")

	require.NoError(t, InitLogger(LoggingConfig{Level: "debug", Format: "json", File: path}))
	l := GetLogger()
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
	l.Info().Msg("written to file")

	CloseLogFile()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	SetLogLevel("bogus")
	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}

func TestInitLogger_UnopenableFile(t *testing.T) {
	t.Cleanup(CloseLogFile)

	err := InitLogger(LoggingConfig{Level: "debug", File: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening log file")
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())
}
