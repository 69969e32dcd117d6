package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablequery/internal/config"
	"github.com/rshade/tablequery/internal/query"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	cfg := config.Default()
	cfg.Logging = config.LoggingConfig{Level: "warn", Format: "json"}
	cfg.Source = config.SourceConfig{File: "people.json", Latency: time.Second}
	cfg.Columns = []config.ColumnConfig{{Key: "name", Sortable: true}}
	cfg.Filters = []config.FilterConfig{{Name: "status", Type: config.FilterTypeEnum}}
	return cfg
}

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
source:
  file: other.yaml
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "other.yaml", target.Source.File)
	assert.Zero(t, target.Source.Latency, "the whole section is replaced")

	assert.Equal(t, "warn", target.Logging.Level)
	assert.Len(t, target.Columns, 1)
	assert.Len(t, target.Filters, 1)
}

func TestShallowMergeYAML_AbsentKeysPreserved(t *testing.T) {
	target := newDefaultTarget()
	before := *target

	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "# only a comment\n")))
	assert.Equal(t, before, *target)

	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "")))
	assert.Equal(t, before, *target)
}

func TestShallowMergeYAML_TableKeepsDefaults(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
table:
  total_field: count
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "count", target.Table.TotalField)
	assert.Equal(t, "data", target.Table.ListField)
	assert.Equal(t, query.DefaultPagination(), target.Table.InitPagination)
	assert.NotNil(t, target.Table.InitFilters)
	assert.NotNil(t, target.Table.ExtraParams)
}

func TestShallowMergeYAML_TableMapsReplaced(t *testing.T) {
	target := newDefaultTarget()
	target.Table.InitFilters = map[string]any{"owner": "me"}
	overlay := writeOverlay(t, `
table:
  init_filters:
    status: open
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, map[string]any{"status": "open"}, target.Table.InitFilters)
}

func TestShallowMergeYAML_OverrideLogging(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
logging:
  file: /tmp/tablequery.log
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "/tmp/tablequery.log", target.Logging.File)
	assert.Equal(t, "info", target.Logging.Level, "logging falls back to defaults, not the target")
	assert.Equal(t, "console", target.Logging.Format)
}

func TestShallowMergeYAML_OverrideColumnsAndFilters(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
columns:
  - key: age
    title: Age
    width: 6
filters: []
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, []config.ColumnConfig{{Key: "age", Title: "Age", Width: 6}}, target.Columns)
	assert.Empty(t, target.Filters)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
source:
  latency: 2s
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, 2*time.Second, target.Source.Latency)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  *config.Config
		path    func(t *testing.T) string
		wantMsg string
	}{
		{
			name:    "nil target",
			target:  nil,
			path:    func(t *testing.T) string { return writeOverlay(t, "") },
			wantMsg: "nil target",
		},
		{
			name:    "missing file",
			target:  newDefaultTarget(),
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
			wantMsg: "reading overlay file",
		},
		{
			name:    "corrupted yaml",
			target:  newDefaultTarget(),
			path:    func(t *testing.T) string { return writeOverlay(t, "table: [unclosed") },
			wantMsg: "parsing overlay YAML",
		},
		{
			name:    "section type mismatch",
			target:  newDefaultTarget(),
			path:    func(t *testing.T) string { return writeOverlay(t, "columns: {key: name}") },
			wantMsg: `applying overlay section "columns"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.ShallowMergeYAML(tt.target, tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
