package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for fixture files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported record file format (want .json, .yaml or .yml)")

// LoadRecords reads a JSON or YAML list of records, chosen by file extension.
func LoadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records from %s: %w", path, err)
	}

	var records []Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err = dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("parsing JSON records from %s: %w", path, err)
		}
		for _, r := range records {
			normalizeNumbers(r)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing YAML records from %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return records, nil
}

// normalizeNumbers turns json.Number values into int64 or float64 so they
// compare numerically.
func normalizeNumbers(r Record) {
	for k, v := range r {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			r[k] = i
			continue
		}
		if f, err := n.Float64(); err == nil {
			r[k] = f
		}
	}
}
