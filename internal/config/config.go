package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/tablequery/internal/controller"
	"github.com/rshade/tablequery/internal/normalize"
	"github.com/rshade/tablequery/internal/query"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvLogLevel  = "TABLEQUERY_LOG_LEVEL"
	EnvLogFormat = "TABLEQUERY_LOG_FORMAT"
	EnvConfig    = "TABLEQUERY_CONFIG"
)

// Filter input types.
const (
	FilterTypeInput = "input"
	FilterTypeEnum  = "enum"
)

// Validation errors.
var (
	ErrEmptyColumnKey    = errors.New("column key cannot be empty")
	ErrDuplicateColumn   = errors.New("duplicate column key")
	ErrEmptyFilterName   = errors.New("filter name cannot be empty")
	ErrUnknownFilterType = errors.New("filter type must be 'input' or 'enum'")
	ErrNegativeLatency   = errors.New("source latency cannot be negative")
)

// Config is the full tablequery configuration file.
type Config struct {
	Table   TableConfig    `yaml:"table"`
	Logging LoggingConfig  `yaml:"logging"`
	Source  SourceConfig   `yaml:"source"`
	Columns []ColumnConfig `yaml:"columns"`
	Filters []FilterConfig `yaml:"filters"`
}

// TableConfig mirrors the controller options that can live in a file.
type TableConfig struct {
	InitFilters    map[string]any   `yaml:"init_filters"`
	InitPagination query.Pagination `yaml:"init_pagination"`
	ListField      string           `yaml:"list_field"`
	TotalField     string           `yaml:"total_field"`
	ApplyOnMount   *bool            `yaml:"apply_on_mount"`
	ExtraParams    map[string]any   `yaml:"extra_params"`
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// SourceConfig points the demo data source at a fixture file.
type SourceConfig struct {
	File    string        `yaml:"file"`
	Latency time.Duration `yaml:"latency"`
}

// ColumnConfig describes one displayed column.
type ColumnConfig struct {
	Key      string `yaml:"key"`
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Sortable bool   `yaml:"sortable"`
}

// FilterConfig describes one search-bar field.
type FilterConfig struct {
	Name  string   `yaml:"name"`
	Label string   `yaml:"label"`
	Type  string   `yaml:"type"`
	Enums []string `yaml:"enums"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Table: TableConfig{
			InitFilters:    map[string]any{},
			InitPagination: query.DefaultPagination(),
			ListField:      normalize.DefaultListField,
			TotalField:     normalize.DefaultTotalField,
			ApplyOnMount:   controller.Bool(true),
			ExtraParams:    map[string]any{},
		},
		Logging: LoggingConfig{
			Level:  zerolog.InfoLevel.String(),
			Format: "console",
		},
	}
}

// Load returns Default overlaid with the sections present in path.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides logging settings from the environment.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
}

// Validate checks pagination bounds, column keys and filter definitions.
func (c *Config) Validate() error {
	if err := c.Table.InitPagination.Validate(); err != nil {
		return fmt.Errorf("table.init_pagination: %w", err)
	}
	if c.Source.Latency < 0 {
		return ErrNegativeLatency
	}

	seen := make(map[string]bool, len(c.Columns))
	for i, col := range c.Columns {
		if strings.TrimSpace(col.Key) == "" {
			return fmt.Errorf("columns[%d]: %w", i, ErrEmptyColumnKey)
		}
		if seen[col.Key] {
			return fmt.Errorf("columns[%d]: %w: %q", i, ErrDuplicateColumn, col.Key)
		}
		seen[col.Key] = true
	}

	for i, f := range c.Filters {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("filters[%d]: %w", i, ErrEmptyFilterName)
		}
		switch f.Type {
		case "", FilterTypeInput, FilterTypeEnum:
		default:
			return fmt.Errorf("filters[%d]: %w: got %q", i, ErrUnknownFilterType, f.Type)
		}
	}
	return nil
}

// TableOptions bridges a TableConfig to controller options.
func TableOptions[T any](tc TableConfig, logger *zerolog.Logger) controller.Options[T] {
	return controller.Options[T]{
		InitFilters:    query.Filters(tc.InitFilters).Clone(),
		InitPagination: tc.InitPagination,
		ListField:      tc.ListField,
		TotalField:     tc.TotalField,
		ApplyOnMount:   tc.ApplyOnMount,
		ExtraParams:    query.Merge(tc.ExtraParams),
		Logger:         logger,
	}
}

//nolint:gochecknoglobals // The active configuration is process-wide, like the logger.
var (
	globalConfig   = Default()
	globalConfigMu sync.RWMutex
)

// SetGlobalConfig installs cfg as the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the process-wide configuration.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}
