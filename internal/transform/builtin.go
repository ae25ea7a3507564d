package transform

import (
	"fmt"
	"strconv"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/feedlift/feedlift/pkg/core"
)

// builtins is the built-in transform table. Names are referenced by the
// attribute registry's default mappings.
var builtins = map[string]Func{
	"availability":      availabilityTransform,
	"default_condition": defaultConditionTransform,
	"format_price":      formatPriceTransform,
	"format_weight":     formatWeightTransform,
	"format_dimension":  formatDimensionTransform,
	"format_dimensions": formatDimensionsTransform,
	"category_path":     categoryPathTransform,
	"secondary_images":  secondaryImagesTransform,
	"strip_html":        stripHTMLTransform,
	"boolify":           boolifyTransform,
}

// maxSecondaryImages caps additional_image_link per marketplace limits.
const maxSecondaryImages = 10

// stockStatusMap translates platform stock statuses to feed availability.
var stockStatusMap = map[string]string{
	"instock":     "in_stock",
	"outofstock":  "out_of_stock",
	"onbackorder": "backorder",
	"preorder":    "preorder",
}

// availabilityTransform maps the platform stock status onto the feed enum.
// Anything unrecognized, nil included, defaults to in_stock.
func availabilityTransform(value any, _ core.Item, _ *core.ShopSettings) any {
	s, ok := stringValue(value)
	if !ok {
		return "in_stock"
	}
	if mapped, ok := stockStatusMap[strings.ToLower(s)]; ok {
		return mapped
	}
	return "in_stock"
}

// defaultConditionTransform normalizes the product condition and defaults
// absent or unrecognized values to "new".
func defaultConditionTransform(value any, _ core.Item, _ *core.ShopSettings) any {
	s, ok := stringValue(value)
	if !ok {
		return "new"
	}
	switch strings.ToLower(s) {
	case "new", "refurbished", "used":
		return strings.ToLower(s)
	default:
		return "new"
	}
}

// formatPriceTransform renders a platform amount as "<n.nn> <currency>"
// using the shop currency (USD when unset). Unparsable amounts yield nil;
// out-of-range amounts are formatted anyway so validation can name the
// actual problem.
func formatPriceTransform(value any, _ core.Item, shop *core.ShopSettings) any {
	amount, ok := floatValue(value)
	if !ok {
		return nil
	}
	currency := "USD"
	if shop != nil {
		currency = shop.FieldOr(core.ShopFieldCurrency, "USD")
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// formatWeightTransform renders a platform weight as "<n> <unit>" using the
// shop weight unit (kg when unset).
func formatWeightTransform(value any, _ core.Item, shop *core.ShopSettings) any {
	return formatMeasure(value, shop, core.ShopFieldWeightUnit, "kg")
}

// formatDimensionTransform renders a single dimension axis as "<n> <unit>"
// using the shop dimension unit (cm when unset).
func formatDimensionTransform(value any, _ core.Item, shop *core.ShopSettings) any {
	return formatMeasure(value, shop, core.ShopFieldDimensionUnit, "cm")
}

func formatMeasure(value any, shop *core.ShopSettings, unitField, defaultUnit string) any {
	amount, ok := floatValue(value)
	if !ok {
		return nil
	}
	unit := defaultUnit
	if shop != nil {
		unit = shop.FieldOr(unitField, defaultUnit)
	}
	return fmt.Sprintf("%s %s", formatNumber(amount), unit)
}

// formatDimensionsTransform combines the platform dimensions object into
// "LxWxH <unit>". All three axes must be present and numeric.
func formatDimensionsTransform(value any, item core.Item, shop *core.ShopSettings) any {
	dims, ok := value.(map[string]any)
	if !ok {
		dims, ok = item["dimensions"].(map[string]any)
		if !ok {
			return nil
		}
	}
	length, lok := floatValue(dims["length"])
	width, wok := floatValue(dims["width"])
	height, hok := floatValue(dims["height"])
	if !lok || !wok || !hok {
		return nil
	}
	unit := "cm"
	if shop != nil {
		unit = shop.FieldOr(core.ShopFieldDimensionUnit, "cm")
	}
	return fmt.Sprintf("%sx%sx%s %s", formatNumber(length), formatNumber(width), formatNumber(height), unit)
}

// categoryPathTransform joins the platform category objects into the
// marketplace hierarchy string, e.g. "Home > Kitchen > Kettles".
func categoryPathTransform(value any, _ core.Item, _ *core.ShopSettings) any {
	entries, ok := value.([]any)
	if !ok {
		return nil
	}
	var names []string
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if name, _ := entry["name"].(string); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return strings.Join(names, " > ")
}

// secondaryImagesTransform collects the src of every image after the first,
// capped at the marketplace limit.
func secondaryImagesTransform(value any, _ core.Item, _ *core.ShopSettings) any {
	images, ok := value.([]any)
	if !ok || len(images) < 2 {
		return nil
	}
	var srcs []string
	for _, raw := range images[1:] {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if src, _ := entry["src"].(string); src != "" {
			srcs = append(srcs, src)
		}
		if len(srcs) == maxSecondaryImages {
			break
		}
	}
	if len(srcs) == 0 {
		return nil
	}
	return srcs
}

// stripHTMLTransform converts platform HTML descriptions to plain text.
// Conversion goes through markdown; if that fails the tags are stripped
// naively so the product still gets a description.
func stripHTMLTransform(value any, _ core.Item, _ *core.ShopSettings) any {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	converted, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		converted = stripTags(s)
	}
	text := strings.Join(strings.Fields(converted), " ")
	if text == "" {
		return nil
	}
	return text
}

// stripTags removes anything between angle brackets.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// boolifyTransform normalizes platform truthiness flags to the feed's
// string booleans. Unrecognized input yields nil so optional flags stay
// absent instead of guessing.
func boolifyTransform(value any, _ core.Item, _ *core.ShopSettings) any {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1", "on":
			return "true"
		case "false", "no", "0", "off":
			return "false"
		}
		return nil
	case float64:
		if v == 1 {
			return "true"
		}
		if v == 0 {
			return "false"
		}
		return nil
	default:
		return nil
	}
}

// stringValue coerces scalars to a trimmed string. Booleans and composites
// do not coerce.
func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	case float64:
		return formatNumber(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

// floatValue coerces numbers and numeric strings to float64.
func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// formatNumber renders a float without trailing zeros ("1.5", not "1.50").
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
