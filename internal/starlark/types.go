// Package starlark bridges Go and Starlark values for shop-defined custom
// transforms. Transform scripts receive the extracted value, the raw item
// and a "shop" struct of shop-scoped settings fields.
package starlark

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/feedlift/feedlift/pkg/core"
)

// ShopToStarlark converts shop settings into the struct value transform
// scripts see as their third argument. Fields become attributes, so a script
// reads shop.currency rather than indexing a dict.
func ShopToStarlark(shop *core.ShopSettings) starlark.Value {
	if shop == nil {
		return starlark.None
	}
	dict := starlark.StringDict{}
	for name, value := range shop.Fields {
		dict[name] = starlark.String(value)
	}
	return starlarkstruct.FromStringDict(starlark.String("shop"), dict)
}

// GoToStarlark converts a Go value into its Starlark counterpart.
// Supported: nil, string, bool, ints, float64, []string, []any, map[string]any.
func GoToStarlark(v any) (starlark.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlark.None, nil
	case string:
		return starlark.String(val), nil
	case bool:
		return starlark.Bool(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case float64:
		return starlark.Float(val), nil
	case []string:
		list := make([]starlark.Value, len(val))
		for i, s := range val {
			list[i] = starlark.String(s)
		}
		return starlark.NewList(list), nil
	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := GoToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil
	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, item := range val {
			sv, err := GoToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// ToGo converts a Starlark value back into a Go value.
// Returns nil, string, bool, int64, float64, []any or map[string]any.
func ToGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.String:
		return string(val), nil
	case starlark.Bool:
		return bool(val), nil
	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			// Integers beyond int64 fall back to their decimal string.
			return val.String(), nil
		}
		return i64, nil
	case starlark.Float:
		return float64(val), nil
	case *starlark.List:
		out := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			gv, err := ToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			out[i] = gv
		}
		return out, nil
	case starlark.Tuple:
		out := make([]any, len(val))
		for i, item := range val {
			gv, err := ToGo(item)
			if err != nil {
				return nil, fmt.Errorf("tuple index %d: %w", i, err)
			}
			out[i] = gv
		}
		return out, nil
	case *starlark.Dict:
		out := make(map[string]any, val.Len())
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be string, got %s", item[0].Type())
			}
			gv, err := ToGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", string(key), err)
			}
			out[string(key)] = gv
		}
		return out, nil
	default:
		return val.String(), nil
	}
}
