package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feedlift/feedlift/pkg/core"
)

func sampleItem() core.Item {
	return core.Item{
		"id":   float64(812),
		"sku":  "KET-001",
		"name": "Stovetop Kettle",
		"images": []any{
			map[string]any{"src": "https://cdn.example.com/kettle-front.jpg"},
			map[string]any{"src": "https://cdn.example.com/kettle-side.jpg"},
		},
		"dimensions": map[string]any{
			"length": "30",
			"width":  "20",
			"height": "10",
		},
		"meta_data": []any{
			map[string]any{"key": "_brand", "value": "Acme"},
			map[string]any{"key": "_wpm_gtin_code", "value": "04012345678901"},
			map[string]any{"key": "_seo.title", "value": "Best Kettle"},
			"not an object",
		},
		"attributes": []any{
			map[string]any{"name": "Color", "options": []any{"Red", "Black"}},
			map[string]any{"name": "Material", "options": []any{"Steel"}},
			map[string]any{"name": "Size", "option": "XL"},
			map[string]any{"name": "Pattern", "options": []any{}},
		},
	}
}

func TestValuePlainPaths(t *testing.T) {
	item := sampleItem()

	tests := []struct {
		name string
		path string
		want any
	}{
		{"top level field", "sku", "KET-001"},
		{"numeric field", "id", float64(812)},
		{"nested field", "dimensions.length", "30"},
		{"list index", "images[0].src", "https://cdn.example.com/kettle-front.jpg"},
		{"second index", "images[1].src", "https://cdn.example.com/kettle-side.jpg"},
		{"whole list", "images", item["images"]},
		{"missing field", "nonexistent", nil},
		{"missing nested", "dimensions.depth", nil},
		{"index out of range", "images[9].src", nil},
		{"negative index", "images[-1]", nil},
		{"index into non-list", "sku[0]", nil},
		{"segment into scalar", "sku.deeper", nil},
		{"empty path", "", nil},
		{"bare dot", ".", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(item, nil, tt.path))
		})
	}
}

func TestValueMetaData(t *testing.T) {
	item := sampleItem()

	assert.Equal(t, "Acme", Value(item, nil, "meta_data._brand"))
	assert.Equal(t, "04012345678901", Value(item, nil, "meta_data._wpm_gtin_code"))

	// The remainder after the prefix is the whole key, dots included.
	assert.Equal(t, "Best Kettle", Value(item, nil, "meta_data._seo.title"))

	assert.Nil(t, Value(item, nil, "meta_data._absent"))
	assert.Nil(t, Value(core.Item{"meta_data": "not a list"}, nil, "meta_data._brand"))
	assert.Nil(t, Value(core.Item{}, nil, "meta_data._brand"))
}

func TestValueAttributes(t *testing.T) {
	item := sampleItem()

	// Parent shape: multiple options joined, single option bare.
	assert.Equal(t, "Red, Black", Value(item, nil, "attributes.Color"))
	assert.Equal(t, "Steel", Value(item, nil, "attributes.Material"))

	// Variant shape: scalar option wins.
	assert.Equal(t, "XL", Value(item, nil, "attributes.Size"))

	// Name match is case-insensitive.
	assert.Equal(t, "Red, Black", Value(item, nil, "attributes.color"))

	assert.Nil(t, Value(item, nil, "attributes.Pattern"), "empty options list")
	assert.Nil(t, Value(item, nil, "attributes.Finish"))
	assert.Nil(t, Value(core.Item{}, nil, "attributes.Color"))
}

func TestValueShopPaths(t *testing.T) {
	shop := &core.ShopSettings{Fields: map[string]string{
		"seller_name": "Acme Outdoor",
		"currency":    "EUR",
	}}

	assert.Equal(t, "Acme Outdoor", Value(nil, shop, "shop.seller_name"))
	assert.Equal(t, "EUR", Value(sampleItem(), shop, "shop.currency"))

	// Shop paths never touch the item and need shop settings present.
	assert.Nil(t, Value(sampleItem(), nil, "shop.seller_name"))
	assert.Nil(t, Value(nil, shop, "shop.unset_field"))
}

func TestValueNilItem(t *testing.T) {
	assert.Nil(t, Value(nil, nil, "sku"))
	assert.Nil(t, Value(nil, nil, "meta_data._brand"))
}

func TestIsShopPath(t *testing.T) {
	assert.True(t, IsShopPath("shop.seller_name"))
	assert.False(t, IsShopPath("sku"))
	assert.False(t, IsShopPath("shopkeeper"))
}
