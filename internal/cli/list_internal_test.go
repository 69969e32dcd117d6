package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablequery/internal/query"
)

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    query.Filters
		wantErr bool
	}{
		{name: "none", pairs: nil, want: query.Filters{}},
		{name: "single", pairs: []string{"status=active"}, want: query.Filters{"status": "active"}},
		{name: "value keeps equals", pairs: []string{"expr=a=b"}, want: query.Filters{"expr": "a=b"}},
		{name: "empty value", pairs: []string{"owner="}, want: query.Filters{"owner": ""}},
		{name: "last wins", pairs: []string{"k=1", "k=2"}, want: query.Filters{"k": "2"}},
		{name: "missing equals", pairs: []string{"status"}, wantErr: true},
		{name: "empty key", pairs: []string{" =x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilters(tt.pairs)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
