package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	current := Pagination{Page: 3, PageSize: 10}

	tests := []struct {
		name     string
		proposed Pagination
		override Action
		want     Action
	}{
		{
			name:     "page changed",
			proposed: Pagination{Page: 4, PageSize: 10},
			want:     ActionPaginate,
		},
		{
			name:     "page unchanged",
			proposed: Pagination{Page: 3, PageSize: 10},
			want:     ActionSort,
		},
		{
			name:     "page size changed only",
			proposed: Pagination{Page: 3, PageSize: 50},
			want:     ActionSort,
		},
		{
			name:     "override paginate wins over unchanged page",
			proposed: Pagination{Page: 3, PageSize: 10},
			override: ActionPaginate,
			want:     ActionPaginate,
		},
		{
			name:     "override sort wins over changed page",
			proposed: Pagination{Page: 1, PageSize: 10},
			override: ActionSort,
			want:     ActionSort,
		},
		{
			name:     "unknown override is inferred",
			proposed: Pagination{Page: 5, PageSize: 10},
			override: Action(42),
			want:     ActionPaginate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.proposed, current, tt.override))
		})
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "paginate", ActionPaginate.String())
	assert.Equal(t, "sort", ActionSort.String())
	assert.Equal(t, "unspecified", ActionUnspecified.String())
	assert.Equal(t, "unknown", Action(9).String())
}
