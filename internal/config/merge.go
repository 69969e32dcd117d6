package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyTable   = "table"
	keyLogging = "logging"
	keySource  = "source"
	keyColumns = "columns"
	keyFilters = "filters"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target, except that the table section keeps defaults for fields
// the overlay leaves out. Keys absent in the overlay are left unchanged and
// unknown keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// unmarshalSection decodes one top-level node into the matching field of target.
// Sections are decoded into fresh values so maps from the defaults are replaced,
// not merged.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyTable:
		v := Default().Table
		v.InitFilters = nil
		v.ExtraParams = nil
		if err := node.Decode(&v); err != nil {
			return err
		}
		if v.InitFilters == nil {
			v.InitFilters = map[string]any{}
		}
		if v.ExtraParams == nil {
			v.ExtraParams = map[string]any{}
		}
		target.Table = v
	case keyLogging:
		v := Default().Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keySource:
		var v SourceConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Source = v
	case keyColumns:
		var v []ColumnConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Columns = v
	case keyFilters:
		var v []FilterConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Filters = v
	}
	return nil
}
