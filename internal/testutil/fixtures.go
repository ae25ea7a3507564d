package testutil

import "github.com/feedlift/feedlift/pkg/core"

// StrPtr returns a pointer to s, for mapping-override paths.
func StrPtr(s string) *string {
	return &s
}

// SampleShop returns a shop with the settings fields resolution relies on.
func SampleShop() *core.Shop {
	return &core.Shop{
		ID:   "shop-1",
		Name: "Acme Outdoor",
		Settings: core.ShopSettings{
			Fields: map[string]string{
				core.ShopFieldCurrency:        "USD",
				core.ShopFieldWeightUnit:      "kg",
				core.ShopFieldDimensionUnit:   "cm",
				core.ShopFieldSellerName:      "Acme Outdoor",
				core.ShopFieldReturnPolicyURL: "https://shop.example.com/returns",
			},
			Mappings: map[string]string{},
		},
	}
}

// SampleContext returns the default product context: searchable, checkout
// disabled, not a variant.
func SampleContext() core.ProductContext {
	return core.ProductContext{SearchEnabled: true, ProductType: "simple"}
}

// SampleItem returns a WooCommerce-shaped payload exercising every
// extraction form: plain and nested fields, list indices, meta entries and
// product attributes.
func SampleItem() core.Item {
	return core.Item{
		"id":                float64(812),
		"sku":               "KET-001",
		"name":              "Stovetop Kettle 1.5L",
		"permalink":         "https://shop.example.com/product/stovetop-kettle",
		"description":       "<p>Classic <strong>stainless steel</strong> stovetop kettle with a 1.5 litre capacity and a comfortable heat-proof handle for everyday use on gas and induction hobs.</p>",
		"short_description": "<p>Classic stovetop kettle.</p>",
		"regular_price":     "39.99",
		"price":             "34.99",
		"sale_price":        "34.99",
		"stock_status":      "instock",
		"stock_quantity":    float64(12),
		"type":              "simple",
		"global_unique_id":  "04012345678901",
		"weight":            "1.5",
		"tax_class":         "standard",
		"shipping_class":    "bulky",
		"average_rating":    "4.6",
		"rating_count":      float64(18),
		"dimensions": map[string]any{
			"length": "30",
			"width":  "20",
			"height": "10",
		},
		"categories": []any{
			map[string]any{"id": float64(11), "name": "Home"},
			map[string]any{"id": float64(12), "name": "Kitchen"},
			map[string]any{"id": float64(13), "name": "Kettles"},
		},
		"images": []any{
			map[string]any{"src": "https://cdn.example.com/kettle-front.jpg"},
			map[string]any{"src": "https://cdn.example.com/kettle-side.jpg"},
			map[string]any{"src": "https://cdn.example.com/kettle-detail.jpg"},
		},
		"attributes": []any{
			map[string]any{"name": "Brand", "options": []any{"Acme"}},
			map[string]any{"name": "Color", "options": []any{"Silver"}},
			map[string]any{"name": "Material", "options": []any{"Stainless Steel"}},
		},
		"meta_data": []any{
			map[string]any{"key": "_brand", "value": "Acme"},
			map[string]any{"key": "_transit_time", "value": "2-4 business days"},
		},
	}
}
