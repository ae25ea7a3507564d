package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"

	"github.com/feedlift/feedlift/pkg/core"
)

func TestGoToStarlark(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantStr string
		wantErr bool
	}{
		{
			name:    "string",
			input:   "hello",
			wantStr: `"hello"`,
		},
		{
			name:    "int",
			input:   42,
			wantStr: "42",
		},
		{
			name:    "int64",
			input:   int64(123456789),
			wantStr: "123456789",
		},
		{
			name:    "float64",
			input:   3.14,
			wantStr: "3.14",
		},
		{
			name:    "bool true",
			input:   true,
			wantStr: "True",
		},
		{
			name:    "nil",
			input:   nil,
			wantStr: "None",
		},
		{
			name:    "string slice",
			input:   []string{"a", "b"},
			wantStr: `["a", "b"]`,
		},
		{
			name:    "any slice",
			input:   []any{"a", float64(2)},
			wantStr: `["a", 2.0]`,
		},
		{
			name:    "map",
			input:   map[string]any{"key": "value"},
			wantStr: `{"key": "value"}`,
		},
		{
			name:    "unsupported type",
			input:   struct{}{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := GoToStarlark(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStr, val.String())
		})
	}
}

func TestToGo(t *testing.T) {
	tests := []struct {
		name  string
		input starlark.Value
		want  any
	}{
		{
			name:  "none",
			input: starlark.None,
			want:  nil,
		},
		{
			name:  "string",
			input: starlark.String("feed"),
			want:  "feed",
		},
		{
			name:  "bool",
			input: starlark.Bool(true),
			want:  true,
		},
		{
			name:  "int",
			input: starlark.MakeInt(7),
			want:  int64(7),
		},
		{
			name:  "float",
			input: starlark.Float(1.5),
			want:  1.5,
		},
		{
			name:  "list",
			input: starlark.NewList([]starlark.Value{starlark.String("x"), starlark.String("y")}),
			want:  []any{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToGo(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToGoDict(t *testing.T) {
	dict := starlark.NewDict(1)
	require.NoError(t, dict.SetKey(starlark.String("unit"), starlark.String("kg")))

	got, err := ToGo(dict)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"unit": "kg"}, got)
}

func TestToGoDictRejectsNonStringKeys(t *testing.T) {
	dict := starlark.NewDict(1)
	require.NoError(t, dict.SetKey(starlark.MakeInt(1), starlark.String("x")))

	_, err := ToGo(dict)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dict key must be string")
}

func TestRoundTrip(t *testing.T) {
	item := map[string]any{
		"sku":   "KET-001",
		"price": 39.99,
		"tags":  []any{"kitchen", "kettle"},
	}

	sv, err := GoToStarlark(item)
	require.NoError(t, err)

	back, err := ToGo(sv)
	require.NoError(t, err)
	assert.Equal(t, item, back)
}

func TestShopToStarlark(t *testing.T) {
	shop := &core.ShopSettings{
		Fields: map[string]string{
			"currency":    "USD",
			"weight_unit": "kg",
		},
	}

	val := ShopToStarlark(shop)
	st, ok := val.(interface {
		Attr(name string) (starlark.Value, error)
	})
	require.True(t, ok, "shop value should support attribute access")

	currency, err := st.Attr("currency")
	require.NoError(t, err)
	assert.Equal(t, starlark.String("USD"), currency)

	unit, err := st.Attr("weight_unit")
	require.NoError(t, err)
	assert.Equal(t, starlark.String("kg"), unit)
}

func TestShopToStarlarkNil(t *testing.T) {
	assert.Equal(t, starlark.None, ShopToStarlark(nil))
}
