package normalize

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestDefault_TypedList(t *testing.T) {
	fn := Default[user]("", "")

	got, err := fn(Response{
		"success": true,
		"data":    []user{{Name: "ada", Age: 36}},
		"total":   42,
	})

	require.NoError(t, err)
	assert.Equal(t, []user{{Name: "ada", Age: 36}}, got.Items)
	assert.Equal(t, 42, got.Total)
}

func TestDefault_DecodedJSON(t *testing.T) {
	var resp Response
	require.NoError(t, json.Unmarshal(
		[]byte(`{"success":true,"rows":[{"name":"ada","age":36},{"name":"bob","age":7}],"count":2}`),
		&resp,
	))

	got, err := Default[user]("rows", "count")(resp)

	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, "bob", got.Items[1].Name)
	assert.Equal(t, 2, got.Total)
}

func TestDefault_MissingFields(t *testing.T) {
	got, err := Default[user]("data", "total")(Response{"success": true})

	require.NoError(t, err)
	assert.Equal(t, []user{}, got.Items)
	assert.Equal(t, DefaultTotal, got.Total)
}

func TestDefault_TotalKinds(t *testing.T) {
	tests := []struct {
		name  string
		total any
		want  int
	}{
		{name: "int", total: 5, want: 5},
		{name: "int64", total: int64(6), want: 6},
		{name: "float64", total: float64(7), want: 7},
		{name: "float64 truncates", total: 7.9, want: 7},
		{name: "float32", total: float32(4), want: 4},
		{name: "negative float clamps", total: -2.5, want: 0},
		{name: "huge float saturates", total: 1e300, want: math.MaxInt},
		{name: "huge float32 saturates", total: float32(math.MaxFloat32), want: math.MaxInt},
		{name: "fractional json number", total: json.Number("3.5"), want: 3},
		{name: "huge json number saturates", total: json.Number("1e40"), want: math.MaxInt},
		{name: "json number", total: json.Number("8"), want: 8},
		{name: "numeric string", total: " 9 ", want: 9},
		{name: "zero", total: 0, want: 0},
		{name: "negative clamps", total: -3, want: 0},
		{name: "nil falls back", total: nil, want: DefaultTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Default[user]("", "")(Response{"total": tt.total})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Total)
		})
	}
}

func TestDefault_Errors(t *testing.T) {
	_, err := Default[user]("", "")(Response{"data": "not a list"})
	require.ErrorIs(t, err, ErrInvalidList)

	_, err = Default[user]("", "")(Response{"data": []any{}, "total": "many"})
	require.ErrorIs(t, err, ErrInvalidTotal)

	_, err = Default[user]("", "")(Response{"total": true})
	require.ErrorIs(t, err, ErrInvalidTotal)

	for _, bad := range []any{math.NaN(), math.Inf(1), math.Inf(-1), float32(math.Inf(1))} {
		_, err = Default[user]("", "")(Response{"total": bad})
		require.ErrorIs(t, err, ErrInvalidTotal, "total %v", bad)
	}
}

func TestResponse_SuccessAndMessage(t *testing.T) {
	assert.True(t, Response{"success": true}.Success())
	assert.False(t, Response{"success": "true"}.Success())
	assert.False(t, Response(nil).Success())

	assert.Equal(t, "denied", Response{"message": "denied", "data": "other"}.Message())
	assert.Equal(t, "quota exceeded", Response{"data": "quota exceeded"}.Message())
	assert.Equal(t, "request failed", Response{}.Message())
}
