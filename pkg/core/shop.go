package core

import "time"

// Well-known shop-scoped field names. Transforms and the resolver read these
// from ShopSettings.Fields; merchants set them once per shop.
const (
	ShopFieldCurrency          = "currency"
	ShopFieldWeightUnit        = "weight_unit"
	ShopFieldDimensionUnit     = "dimension_unit"
	ShopFieldSellerName        = "seller_name"
	ShopFieldReturnPolicyURL   = "return_policy_url"
	ShopFieldShippingPolicyURL = "shipping_policy_url"
	ShopFieldStoreCode         = "store_code"
)

// ShopSettings holds everything a shop configures about its feed:
// scalar shop-scoped field values and shop-level extraction mappings.
type ShopSettings struct {
	// Fields are shop-scoped values addressed by "shop.<name>" paths and by
	// registry mappings flagged as shop fields.
	Fields map[string]string `json:"fields"`
	// Mappings replaces the registry default extraction path per attribute.
	Mappings map[string]string `json:"mappings"`
}

// Field returns the shop-scoped value for name, or "" when unset.
func (s ShopSettings) Field(name string) string {
	if s.Fields == nil {
		return ""
	}
	return s.Fields[name]
}

// FieldOr returns the shop-scoped value for name, or fallback when unset.
func (s ShopSettings) FieldOr(name, fallback string) string {
	if v := s.Field(name); v != "" {
		return v
	}
	return fallback
}

// Mapping returns the shop-level extraction path for an attribute.
func (s ShopSettings) Mapping(attribute string) (string, bool) {
	if s.Mappings == nil {
		return "", false
	}
	path, ok := s.Mappings[attribute]
	return path, ok
}

// Shop is one merchant shop and its feed configuration.
type Shop struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Settings  ShopSettings `json:"settings"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
