package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name    string
		sortStr string
		want    Sort
		wantErr error
	}{
		{name: "empty", sortStr: "", want: Sort{}},
		{name: "field only", sortStr: "name", want: Sort{Field: "name", Direction: Ascending}},
		{name: "asc", sortStr: "name:asc", want: Sort{Field: "name", Direction: Ascending}},
		{name: "desc", sortStr: "age:desc", want: Sort{Field: "age", Direction: Descending}},
		{name: "long form", sortStr: "age:DESCEND", want: Sort{Field: "age", Direction: Descending}},
		{name: "trimmed", sortStr: " age : desc ", want: Sort{Field: "age", Direction: Descending}},
		{name: "too many parts", sortStr: "a:b:c", wantErr: ErrInvalidSortFormat},
		{name: "empty field", sortStr: ":asc", wantErr: ErrEmptySortField},
		{name: "bad order", sortStr: "age:sideways", wantErr: ErrInvalidSortOrder},
		{name: "blank order", sortStr: "age:", wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.sortStr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSort_Params(t *testing.T) {
	assert.Equal(t, map[string]any{}, Sort{}.Params())
	assert.Equal(t, map[string]any{}, Sort{Field: "name"}.Params(), "field without direction is unsorted")
	assert.Equal(t,
		map[string]any{"field": "name", "order": "desc"},
		Sort{Field: "name", Direction: Descending}.Params(),
	)
}

func TestSortFromParams(t *testing.T) {
	s := Sort{Field: "age", Direction: Ascending}
	assert.Equal(t, s, SortFromParams(s.Params()))
	assert.Equal(t, Sort{}, SortFromParams(map[string]any{}))
	assert.Equal(t, Sort{}, SortFromParams("age"))
	assert.Equal(t, Sort{}, SortFromParams(map[string]any{"field": "age", "order": "bogus"}))
}

func TestDirection_Toggle(t *testing.T) {
	assert.Equal(t, Descending, Ascending.Toggle())
	assert.Equal(t, Ascending, Descending.Toggle())
	assert.Equal(t, Ascending, DirectionNone.Toggle())
}
