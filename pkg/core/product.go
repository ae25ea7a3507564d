package core

import (
	"strings"
	"time"
)

// Item is a raw catalog payload as synced from the commerce platform: the
// decoded JSON object, loosely typed. The engine never mutates an Item.
type Item = map[string]any

// ProductContext carries the per-product flags resolution and validation need
// beyond the raw payload: the feed destination toggles and variant identity.
type ProductContext struct {
	SearchEnabled   bool   `json:"search_enabled"`
	CheckoutEnabled bool   `json:"checkout_enabled"`
	IsVariant       bool   `json:"is_variant"`
	ProductType     string `json:"product_type"`
}

// =============================================================================
// Overrides
// =============================================================================

// OverrideKind distinguishes the two per-product override forms.
type OverrideKind int

const (
	// OverrideLiteral pins the attribute to a fixed value, bypassing
	// extraction and transforms.
	OverrideLiteral OverrideKind = iota
	// OverrideMapping redirects the attribute's extraction path. A nil path
	// excludes the attribute from the feed.
	OverrideMapping
)

// String returns the string representation of the override kind.
func (k OverrideKind) String() string {
	switch k {
	case OverrideLiteral:
		return "literal"
	case OverrideMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// ParseOverrideKind converts a string to an OverrideKind.
// Returns the kind and true if valid, or OverrideLiteral and false if invalid.
func ParseOverrideKind(s string) (OverrideKind, bool) {
	switch strings.ToLower(s) {
	case "literal":
		return OverrideLiteral, true
	case "mapping":
		return OverrideMapping, true
	default:
		return OverrideLiteral, false
	}
}

// Override is a per-product, per-attribute resolution override.
type Override struct {
	Kind OverrideKind `json:"kind"`
	// Value is the pinned value for literal overrides.
	Value string `json:"value,omitempty"`
	// Path is the replacement extraction path for mapping overrides.
	// A nil Path is a deliberate exclusion: the attribute resolves to null.
	Path *string `json:"path"`
}

// Excludes reports whether the override deliberately nulls the attribute.
func (o Override) Excludes() bool {
	return o.Kind == OverrideMapping && o.Path == nil
}

// OverrideSet maps attribute name to its override for one product.
type OverrideSet map[string]Override

// =============================================================================
// Product
// =============================================================================

// Product is one merchant product as the engine sees it: the raw platform
// snapshot plus the product-level feed configuration.
type Product struct {
	ShopID string `json:"shop_id"`
	ID     string `json:"id"`
	// Raw is the last synced platform payload. Nil means the product has
	// never been synced; the engine skips it with a warning.
	Raw       Item           `json:"raw,omitempty"`
	Context   ProductContext `json:"context"`
	Overrides OverrideSet    `json:"overrides,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
