package feedspec

import "fmt"

// Requirement is an attribute's base requirement level.
type Requirement string

// Requirement levels.
const (
	// Required attributes block publication when missing.
	Required Requirement = "required"
	// Recommended attributes produce a warning when missing.
	Recommended Requirement = "recommended"
	// Optional attributes may be absent without consequence.
	Optional Requirement = "optional"
	// Conditional attributes are required only while their Condition holds.
	Conditional Requirement = "conditional"
)

// DataType selects the validator applied to a resolved value.
type DataType string

// Attribute data types.
const (
	TypeText         DataType = "text"
	TypeAlphanumeric DataType = "alphanumeric"
	TypePrice        DataType = "price"
	TypeBarcode      DataType = "barcode"
	TypeURL          DataType = "url"
	TypeURLList      DataType = "url_list"
	TypeCategoryPath DataType = "category_path"
	TypeEnum         DataType = "enum"
	TypeBool         DataType = "bool"
	TypeDate         DataType = "date"
	TypeDateRange    DataType = "date_range"
	TypeDimensions   DataType = "dimensions"
	TypeMeasure      DataType = "measure"
	TypeNumber       DataType = "number"
	TypeRating       DataType = "rating"
)

// Condition names a conditional-requirement rule. The set is closed: rules
// are matched by kind, never parsed out of free text.
type Condition string

// Conditional-requirement rules.
const (
	// CondNone marks an attribute without a conditional rule.
	CondNone Condition = ""
	// CondCheckoutEnabled requires the attribute while the checkout toggle
	// resolves to "true".
	CondCheckoutEnabled Condition = "requires_checkout_enabled"
	// CondBarcodeAbsent requires the attribute while gtin is missing.
	CondBarcodeAbsent Condition = "requires_barcode_absent"
	// CondPreorder requires the attribute while availability is "preorder".
	CondPreorder Condition = "requires_preorder"
	// CondVariantParent requires the attribute on variant products.
	CondVariantParent Condition = "requires_variant_parent"
)

// Mapping is an attribute's default extraction source.
type Mapping struct {
	// Path is the primary extraction path into the raw item, or the name of
	// a shop-scoped field when ShopField is set.
	Path string `json:"path"`
	// Fallback is tried when the primary path yields nothing.
	Fallback string `json:"fallback,omitempty"`
	// Transform names the transform applied after extraction. Transforms run
	// even when extraction yielded nil, so defaulting transforms work.
	Transform string `json:"transform,omitempty"`
	// ShopField reads the value from ShopSettings instead of the item.
	ShopField bool `json:"shop_field,omitempty"`
}

// FieldSpec describes one marketplace attribute.
type FieldSpec struct {
	Name        string      `json:"name"`
	Requirement Requirement `json:"requirement"`
	Type        DataType    `json:"type"`
	// Mapping is the registry default source. Nil means the attribute has no
	// default and only resolves through overrides or shop mappings.
	Mapping   *Mapping  `json:"mapping,omitempty"`
	Condition Condition `json:"condition,omitempty"`
	Category  string    `json:"category"`
	// Locked attributes reject mapping overrides and shop-level mappings.
	// A small allow-list still accepts literal overrides, see
	// AllowsLiteralOverride.
	Locked bool `json:"locked,omitempty"`
	// MaxLen caps text and alphanumeric values. Zero means unbounded.
	MaxLen int `json:"max_len,omitempty"`
	// Enum lists the allowed values for enum-typed attributes.
	Enum []string `json:"enum,omitempty"`
	// Rules is free-text guidance shown to merchants. The static literal
	// validator pattern-matches it for length and digit constraints.
	Rules string `json:"rules,omitempty"`
}

// Attribute names referenced by resolution and validation logic.
const (
	FieldSearchEnabled    = "search_enabled"
	FieldCheckoutEnabled  = "checkout_enabled"
	FieldAvailability     = "availability"
	FieldAvailabilityDate = "availability_date"
	FieldPrice            = "price"
	FieldSalePrice        = "sale_price"
	FieldGTIN             = "gtin"
	FieldMPN              = "mpn"
	FieldItemGroupID      = "item_group_id"
)

// literalOverridable lists locked attributes that still accept literal
// overrides. The feed toggles are column-sourced, so merchants pin them
// by value, never by mapping.
var literalOverridable = map[string]bool{
	FieldSearchEnabled:   true,
	FieldCheckoutEnabled: true,
}

// IsToggle reports whether name is one of the feed destination toggles.
func IsToggle(name string) bool {
	return name == FieldSearchEnabled || name == FieldCheckoutEnabled
}

// AllowsLiteralOverride reports whether a literal override may apply to this
// attribute.
func (f FieldSpec) AllowsLiteralOverride() bool {
	return !f.Locked || literalOverridable[f.Name]
}

// AllowsMappingOverride reports whether mapping overrides and shop-level
// mappings may apply to this attribute.
func (f FieldSpec) AllowsMappingOverride() bool {
	return !f.Locked
}

// UnknownAttributeError reports a lookup for an attribute the registry does
// not define. Callers passing attribute names from user input must treat this
// as a hard failure, not a validation issue.
type UnknownAttributeError struct {
	Attribute string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute %q", e.Attribute)
}
