package feedspec

// builtinFields is the marketplace attribute catalog. Order is the order
// attributes appear in resolved output and reports.
//
// Default mapping paths address the WooCommerce product payload shape:
// plain fields ("sku"), nested fields ("dimensions.length"), list indices
// ("images[0].src"), meta entries ("meta_data.<key>") and product attributes
// ("attributes.<name>"). Shop-field mappings read ShopSettings instead.
var builtinFields = []FieldSpec{
	// ------------------------------------------------------------------
	// general
	// ------------------------------------------------------------------
	{
		Name:        "id",
		Requirement: Required,
		Type:        TypeAlphanumeric,
		Mapping:     &Mapping{Path: "sku", Fallback: "id"},
		Category:    "general",
		Locked:      true,
		MaxLen:      50,
		Rules:       "Unique product identifier. Max 50 characters.",
	},
	{
		Name:        "title",
		Requirement: Required,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "name"},
		Category:    "general",
		MaxLen:      150,
		Rules:       "Max 150 characters.",
	},
	{
		Name:        "description",
		Requirement: Required,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "description", Fallback: "short_description", Transform: "strip_html"},
		Category:    "general",
		MaxLen:      5000,
		Rules:       "Plain text, no HTML. Max 5000 characters.",
	},
	{
		Name:        "link",
		Requirement: Required,
		Type:        TypeURL,
		Mapping:     &Mapping{Path: "permalink"},
		Category:    "general",
		Locked:      true,
		Rules:       "Product landing page. Must use http or https.",
	},
	{
		Name:        "image_link",
		Requirement: Required,
		Type:        TypeURL,
		Mapping:     &Mapping{Path: "images[0].src"},
		Category:    "general",
		Rules:       "Main product image. Must use http or https.",
	},
	{
		Name:        "additional_image_link",
		Requirement: Recommended,
		Type:        TypeURLList,
		Mapping:     &Mapping{Path: "images", Transform: "secondary_images"},
		Category:    "general",
		Rules:       "Additional product images beyond the main one.",
	},
	{
		Name:        "lifestyle_image_link",
		Requirement: Optional,
		Type:        TypeURL,
		Mapping:     &Mapping{Path: "meta_data._lifestyle_image"},
		Category:    "general",
	},
	{
		Name:        "mobile_link",
		Requirement: Optional,
		Type:        TypeURL,
		Category:    "general",
	},
	{
		Name:        "canonical_link",
		Requirement: Optional,
		Type:        TypeURL,
		Category:    "general",
	},
	{
		Name:        "short_title",
		Requirement: Optional,
		Type:        TypeText,
		Category:    "general",
		MaxLen:      65,
		Rules:       "Max 65 characters.",
	},
	{
		Name:        "product_highlight",
		Requirement: Optional,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "meta_data._highlight"},
		Category:    "general",
		MaxLen:      150,
		Rules:       "Max 150 characters.",
	},

	// ------------------------------------------------------------------
	// pricing
	// ------------------------------------------------------------------
	{
		Name:        "price",
		Requirement: Required,
		Type:        TypePrice,
		Mapping:     &Mapping{Path: "regular_price", Fallback: "price", Transform: "format_price"},
		Category:    "pricing",
		Rules:       "Number with two decimals plus ISO 4217 currency, e.g. 19.99 USD.",
	},
	{
		Name:        "sale_price",
		Requirement: Recommended,
		Type:        TypePrice,
		Mapping:     &Mapping{Path: "sale_price", Transform: "format_price"},
		Category:    "pricing",
		Rules:       "Must not exceed price.",
	},
	{
		Name:        "sale_price_effective_date",
		Requirement: Optional,
		Type:        TypeDateRange,
		Mapping:     &Mapping{Path: "meta_data._sale_price_dates"},
		Category:    "pricing",
		Rules:       "Format: YYYY-MM-DD / YYYY-MM-DD.",
	},
	{
		Name:        "cost_of_goods_sold",
		Requirement: Optional,
		Type:        TypePrice,
		Mapping:     &Mapping{Path: "meta_data._wc_cog_cost", Transform: "format_price"},
		Category:    "pricing",
	},
	{
		Name:        "expiration_date",
		Requirement: Optional,
		Type:        TypeDate,
		Mapping:     &Mapping{Path: "meta_data._expiration_date"},
		Category:    "pricing",
		Rules:       "Format: YYYY-MM-DD.",
	},
	{
		Name:        "unit_pricing_measure",
		Requirement: Optional,
		Type:        TypeMeasure,
		Mapping:     &Mapping{Path: "meta_data._unit_pricing_measure"},
		Category:    "pricing",
		Rules:       "Number plus unit, e.g. 750 ml.",
	},
	{
		Name:        "unit_pricing_base_measure",
		Requirement: Optional,
		Type:        TypeMeasure,
		Mapping:     &Mapping{Path: "meta_data._unit_pricing_base_measure"},
		Category:    "pricing",
	},

	// ------------------------------------------------------------------
	// availability
	// ------------------------------------------------------------------
	{
		Name:        FieldAvailability,
		Requirement: Required,
		Type:        TypeEnum,
		Mapping:     &Mapping{Path: "stock_status", Transform: "availability"},
		Category:    "availability",
		Enum:        []string{"in_stock", "out_of_stock", "preorder", "backorder"},
	},
	{
		Name:        FieldAvailabilityDate,
		Requirement: Conditional,
		Condition:   CondPreorder,
		Type:        TypeDate,
		Mapping:     &Mapping{Path: "meta_data._preorder_date"},
		Category:    "availability",
		Rules:       "Required for preorder products. Format: YYYY-MM-DD.",
	},
	{
		Name:        "quantity",
		Requirement: Conditional,
		Condition:   CondCheckoutEnabled,
		Type:        TypeNumber,
		Mapping:     &Mapping{Path: "stock_quantity"},
		Category:    "availability",
		Rules:       "Sellable stock. Required when checkout is enabled.",
	},
	{
		Name:        "min_order_quantity",
		Requirement: Optional,
		Type:        TypeNumber,
		Mapping:     &Mapping{Path: "meta_data._min_order_quantity"},
		Category:    "availability",
	},

	// ------------------------------------------------------------------
	// identifiers
	// ------------------------------------------------------------------
	{
		Name:        "brand",
		Requirement: Recommended,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "attributes.Brand", Fallback: "meta_data._brand"},
		Category:    "identifiers",
		MaxLen:      70,
		Rules:       "Max 70 characters.",
	},
	{
		Name:        FieldGTIN,
		Requirement: Recommended,
		Type:        TypeBarcode,
		Mapping:     &Mapping{Path: "global_unique_id", Fallback: "meta_data._wpm_gtin_code"},
		Category:    "identifiers",
		Rules:       "8-14 digits.",
	},
	{
		Name:        FieldMPN,
		Requirement: Conditional,
		Condition:   CondBarcodeAbsent,
		Type:        TypeAlphanumeric,
		Mapping:     &Mapping{Path: "sku"},
		Category:    "identifiers",
		MaxLen:      70,
		Rules:       "Required when gtin is absent. Max 70 characters.",
	},
	{
		Name:        "identifier_exists",
		Requirement: Optional,
		Type:        TypeBool,
		Mapping:     &Mapping{Path: "meta_data._identifier_exists", Transform: "boolify"},
		Category:    "identifiers",
	},
	{
		Name:        "condition",
		Requirement: Required,
		Type:        TypeEnum,
		Mapping:     &Mapping{Path: "meta_data._condition", Transform: "default_condition"},
		Category:    "identifiers",
		Enum:        []string{"new", "refurbished", "used"},
	},

	// ------------------------------------------------------------------
	// categorization
	// ------------------------------------------------------------------
	{
		Name:        "category",
		Requirement: Required,
		Type:        TypeCategoryPath,
		Mapping:     &Mapping{Path: "categories", Transform: "category_path"},
		Category:    "categorization",
		Rules:       "Hierarchy separated by >, e.g. Home > Kitchen > Kettles.",
	},
	{
		Name:        "product_type",
		Requirement: Recommended,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "categories", Transform: "category_path"},
		Category:    "categorization",
		MaxLen:      750,
		Rules:       "Max 750 characters.",
	},
	{
		Name:        "adult",
		Requirement: Optional,
		Type:        TypeBool,
		Mapping:     &Mapping{Path: "meta_data._adult_only", Transform: "boolify"},
		Category:    "categorization",
	},
	{
		Name:        "age_group",
		Requirement: Optional,
		Type:        TypeEnum,
		Mapping:     &Mapping{Path: "attributes.Age Group"},
		Category:    "categorization",
		Enum:        []string{"newborn", "infant", "toddler", "kids", "adult"},
	},
	{
		Name:        "gender",
		Requirement: Optional,
		Type:        TypeEnum,
		Mapping:     &Mapping{Path: "attributes.Gender"},
		Category:    "categorization",
		Enum:        []string{"male", "female", "unisex"},
	},
	{
		Name:        "material",
		Requirement: Optional,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "attributes.Material"},
		Category:    "categorization",
		MaxLen:      200,
		Rules:       "Max 200 characters.",
	},
	{
		Name:        "pattern",
		Requirement: Optional,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "attributes.Pattern"},
		Category:    "categorization",
		MaxLen:      100,
	},
	{
		Name:        "color",
		Requirement: Optional,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "attributes.Color"},
		Category:    "categorization",
		MaxLen:      100,
		Rules:       "Combine multiple colors with /. Max 100 characters.",
	},
	{
		Name:        "size",
		Requirement: Optional,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "attributes.Size"},
		Category:    "categorization",
		MaxLen:      100,
	},
	{
		Name:        "size_type",
		Requirement: Optional,
		Type:        TypeEnum,
		Mapping:     &Mapping{Path: "attributes.Size Type"},
		Category:    "categorization",
		Enum:        []string{"regular", "petite", "plus", "big_and_tall", "maternity"},
	},
	{
		Name:        "size_system",
		Requirement: Optional,
		Type:        TypeEnum,
		Mapping:     &Mapping{Path: "attributes.Size System"},
		Category:    "categorization",
		Enum:        []string{"US", "UK", "EU", "DE", "FR", "JP", "CN", "IT", "BR", "MEX", "AU"},
	},
	{
		Name:        "energy_efficiency_class",
		Requirement: Optional,
		Type:        TypeEnum,
		Mapping:     &Mapping{Path: "attributes.Energy Class"},
		Category:    "categorization",
		Enum:        []string{"A+++", "A++", "A+", "A", "B", "C", "D", "E", "F", "G"},
	},
	{
		Name:        FieldItemGroupID,
		Requirement: Conditional,
		Condition:   CondVariantParent,
		Type:        TypeAlphanumeric,
		Mapping:     &Mapping{Path: "parent_sku", Fallback: "parent_id"},
		Category:    "categorization",
		Locked:      true,
		MaxLen:      50,
		Rules:       "Shared id grouping variants of one parent. Max 50 characters.",
	},
	{
		Name:        "multipack",
		Requirement: Optional,
		Type:        TypeNumber,
		Mapping:     &Mapping{Path: "meta_data._multipack"},
		Category:    "categorization",
	},
	{
		Name:        "is_bundle",
		Requirement: Optional,
		Type:        TypeBool,
		Mapping:     &Mapping{Path: "meta_data._is_bundle", Transform: "boolify"},
		Category:    "categorization",
	},

	// ------------------------------------------------------------------
	// shipping
	// ------------------------------------------------------------------
	{
		Name:        "shipping_weight",
		Requirement: Optional,
		Type:        TypeMeasure,
		Mapping:     &Mapping{Path: "weight", Transform: "format_weight"},
		Category:    "shipping",
		Rules:       "Number plus unit, e.g. 1.5 kg.",
	},
	{
		Name:        "product_dimensions",
		Requirement: Optional,
		Type:        TypeDimensions,
		Mapping:     &Mapping{Path: "dimensions", Transform: "format_dimensions"},
		Category:    "shipping",
		Rules:       "LxWxH plus unit, e.g. 30x20x10 cm.",
	},
	{
		Name:        "shipping_length",
		Requirement: Optional,
		Type:        TypeMeasure,
		Mapping:     &Mapping{Path: "dimensions.length", Transform: "format_dimension"},
		Category:    "shipping",
	},
	{
		Name:        "shipping_width",
		Requirement: Optional,
		Type:        TypeMeasure,
		Mapping:     &Mapping{Path: "dimensions.width", Transform: "format_dimension"},
		Category:    "shipping",
	},
	{
		Name:        "shipping_height",
		Requirement: Optional,
		Type:        TypeMeasure,
		Mapping:     &Mapping{Path: "dimensions.height", Transform: "format_dimension"},
		Category:    "shipping",
	},
	{
		Name:        "shipping_label",
		Requirement: Optional,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "shipping_class"},
		Category:    "shipping",
		MaxLen:      100,
	},
	{
		Name:        "ships_from_country",
		Requirement: Optional,
		Type:        TypeAlphanumeric,
		Mapping:     &Mapping{Path: "meta_data._ships_from"},
		Category:    "shipping",
		MaxLen:      2,
		Rules:       "Two-letter country code.",
	},
	{
		Name:        "transit_time_label",
		Requirement: Optional,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "meta_data._transit_time"},
		Category:    "shipping",
		MaxLen:      100,
	},
	{
		Name:        "max_handling_time",
		Requirement: Optional,
		Type:        TypeNumber,
		Mapping:     &Mapping{Path: "meta_data._max_handling_time"},
		Category:    "shipping",
	},
	{
		Name:        "min_handling_time",
		Requirement: Optional,
		Type:        TypeNumber,
		Mapping:     &Mapping{Path: "meta_data._min_handling_time"},
		Category:    "shipping",
	},

	// ------------------------------------------------------------------
	// merchant (shop-scoped)
	// ------------------------------------------------------------------
	{
		Name:        "seller_name",
		Requirement: Required,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "seller_name", ShopField: true},
		Category:    "merchant",
		MaxLen:      100,
		Rules:       "Max 100 characters.",
	},
	{
		Name:        "return_policy_url",
		Requirement: Recommended,
		Type:        TypeURL,
		Mapping:     &Mapping{Path: "return_policy_url", ShopField: true},
		Category:    "merchant",
	},
	{
		Name:        "shipping_policy_url",
		Requirement: Optional,
		Type:        TypeURL,
		Mapping:     &Mapping{Path: "shipping_policy_url", ShopField: true},
		Category:    "merchant",
	},
	{
		Name:        "store_code",
		Requirement: Optional,
		Type:        TypeAlphanumeric,
		Mapping:     &Mapping{Path: "store_code", ShopField: true},
		Category:    "merchant",
		MaxLen:      64,
	},

	// ------------------------------------------------------------------
	// visibility
	// ------------------------------------------------------------------
	{
		Name:        FieldSearchEnabled,
		Requirement: Optional,
		Type:        TypeBool,
		Category:    "visibility",
		Locked:      true,
		Rules:       "true or false. Sourced from the product's search toggle.",
	},
	{
		Name:        FieldCheckoutEnabled,
		Requirement: Optional,
		Type:        TypeBool,
		Category:    "visibility",
		Locked:      true,
		Rules:       "true or false. Sourced from the product's checkout toggle.",
	},
	{
		Name:        "pause",
		Requirement: Optional,
		Type:        TypeEnum,
		Category:    "visibility",
		Enum:        []string{"ads", "all"},
	},

	// ------------------------------------------------------------------
	// checkout
	// ------------------------------------------------------------------
	{
		Name:        "tax_category",
		Requirement: Conditional,
		Condition:   CondCheckoutEnabled,
		Type:        TypeText,
		Mapping:     &Mapping{Path: "tax_class"},
		Category:    "checkout",
		MaxLen:      100,
		Rules:       "Required when checkout is enabled. Max 100 characters.",
	},
	{
		Name:        "external_seller_id",
		Requirement: Optional,
		Type:        TypeAlphanumeric,
		Category:    "checkout",
		MaxLen:      50,
	},
	{
		Name:        "pickup_method",
		Requirement: Optional,
		Type:        TypeEnum,
		Mapping:     &Mapping{Path: "meta_data._pickup_method"},
		Category:    "checkout",
		Enum:        []string{"buy", "reserve", "ship_to_store", "not_supported"},
	},
	{
		Name:        "pickup_sla",
		Requirement: Optional,
		Type:        TypeEnum,
		Mapping:     &Mapping{Path: "meta_data._pickup_sla"},
		Category:    "checkout",
		Enum:        []string{"same_day", "next_day", "2-day", "3-day", "4-day", "5-day", "6-day", "7-day", "multi-week"},
	},

	// ------------------------------------------------------------------
	// engagement
	// ------------------------------------------------------------------
	{
		Name:        "product_rating",
		Requirement: Optional,
		Type:        TypeRating,
		Mapping:     &Mapping{Path: "average_rating"},
		Category:    "engagement",
		Rules:       "0 to 5.",
	},
	{
		Name:        "rating_count",
		Requirement: Optional,
		Type:        TypeNumber,
		Mapping:     &Mapping{Path: "rating_count"},
		Category:    "engagement",
	},
	{
		Name:        "video_link",
		Requirement: Optional,
		Type:        TypeURL,
		Mapping:     &Mapping{Path: "meta_data._video_url"},
		Category:    "engagement",
	},
	{
		Name:        "model_3d_link",
		Requirement: Optional,
		Type:        TypeURL,
		Mapping:     &Mapping{Path: "meta_data._3d_model_url"},
		Category:    "engagement",
	},
	{
		Name:        "promotion_id",
		Requirement: Optional,
		Type:        TypeAlphanumeric,
		Category:    "engagement",
		MaxLen:      50,
	},
	{
		Name:        "custom_label_0",
		Requirement: Optional,
		Type:        TypeText,
		Category:    "engagement",
		MaxLen:      100,
		Rules:       "Free-form campaign label. Max 100 characters.",
	},
	{
		Name:        "custom_label_1",
		Requirement: Optional,
		Type:        TypeText,
		Category:    "engagement",
		MaxLen:      100,
	},
	{
		Name:        "custom_label_2",
		Requirement: Optional,
		Type:        TypeText,
		Category:    "engagement",
		MaxLen:      100,
	},
	{
		Name:        "custom_label_3",
		Requirement: Optional,
		Type:        TypeText,
		Category:    "engagement",
		MaxLen:      100,
	},
	{
		Name:        "custom_label_4",
		Requirement: Optional,
		Type:        TypeText,
		Category:    "engagement",
		MaxLen:      100,
	},
}
