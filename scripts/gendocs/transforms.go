package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/feedlift/feedlift/internal/transform"
)

// transformDoc describes one built-in transform for the reference page.
type transformDoc struct {
	Name        string
	Description string
	Example     string
}

// builtinTransformDocs mirrors the built-in registry. The generator
// cross-checks this list against transform.Default so the page cannot drift.
var builtinTransformDocs = []transformDoc{
	{
		Name:        "availability",
		Description: "Maps the platform stock status onto the feed enum. Unknown statuses fall back to in_stock.",
		Example:     `"instock" -> "in_stock"`,
	},
	{
		Name:        "boolify",
		Description: "Normalizes truthy platform values (yes, 1, true) to the string forms the feed expects. Unrecognized input resolves to null.",
		Example:     `"yes" -> "true"`,
	},
	{
		Name:        "category_path",
		Description: "Joins the platform category objects into a single breadcrumb path.",
		Example:     `[Home, Kitchen] -> "Home > Kitchen"`,
	},
	{
		Name:        "default_condition",
		Description: "Normalizes the product condition and defaults missing or unknown values to new.",
		Example:     `nil -> "new"`,
	},
	{
		Name:        "format_dimension",
		Description: "Renders a single dimension axis with the shop dimension unit (cm when unset).",
		Example:     `"30" -> "30 cm"`,
	},
	{
		Name:        "format_dimensions",
		Description: "Combines the platform dimensions object into LxWxH with the shop dimension unit. Null when any axis is missing.",
		Example:     `{30,20,10} -> "30x20x10 cm"`,
	},
	{
		Name:        "format_price",
		Description: "Renders a numeric amount as a currency-qualified price using the shop currency (USD when unset).",
		Example:     `"39.99" -> "39.99 USD"`,
	},
	{
		Name:        "format_weight",
		Description: "Renders a numeric weight with the shop weight unit (kg when unset).",
		Example:     `"1.5" -> "1.5 kg"`,
	},
	{
		Name:        "secondary_images",
		Description: "Collects every image source after the first, capped at ten entries.",
		Example:     `images -> [url2, url3]`,
	},
	{
		Name:        "strip_html",
		Description: "Converts HTML markup to plain text and collapses whitespace.",
		Example:     `"<p>Kettle</p>" -> "Kettle"`,
	},
}

// generateTransformDocs generates the transform library reference.
func generateTransformDocs(outDir string) error {
	log.Printf("Generating transform docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	registry := transform.Default(nil)
	documented := make(map[string]bool, len(builtinTransformDocs))
	for _, doc := range builtinTransformDocs {
		documented[doc.Name] = true
		if _, err := registry.Lookup(doc.Name); err != nil {
			return fmt.Errorf("documented transform %q is not registered", doc.Name)
		}
	}
	for _, name := range registry.Names() {
		if !documented[name] {
			return fmt.Errorf("registered transform %q is undocumented", name)
		}
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Transform Reference", "Built-in and custom value transforms")
	w.GeneratedMarker()

	w.Header(1, "Transform Reference")
	w.Paragraph(fmt.Sprintf("Transforms run after extraction and shape raw platform values into feed formats. Feedlift ships %s built-ins; shops can add their own in Starlark.", Bold(fmt.Sprintf("%d", registry.Count()))))
	w.Paragraph("A transform failure never fails resolution: the attribute resolves to null and the engine logs a warning.")

	w.Header(2, "Built-in Transforms")
	headers := []string{"Transform", "Description", "Example"}
	var rows [][]string
	for _, doc := range builtinTransformDocs {
		rows = append(rows, []string{InlineCode(doc.Name), doc.Description, InlineCode(doc.Example)})
	}
	w.Table(headers, rows)

	w.Header(2, "Shop Settings Read by Transforms")
	w.Table(
		[]string{"Setting", "Used by", "Default"},
		[][]string{
			{InlineCode("currency"), InlineCode("format_price"), "USD"},
			{InlineCode("weight_unit"), InlineCode("format_weight"), "kg"},
			{InlineCode("dimension_unit"), InlineCode("format_dimension") + ", " + InlineCode("format_dimensions"), "cm"},
		},
	)

	w.Header(2, "Custom Transforms")
	w.Paragraph("Drop `.star` files into the directory named by `transforms_dir` (or `--transforms-dir`). The file name becomes the namespace; every exported function (no leading underscore) registers as `namespace.function`.")
	w.Paragraph("A custom transform is called as `fn(value, item, shop)`: the extracted value, the raw product payload as a dict, and a struct of shop settings fields. The return value becomes the resolved attribute; `None` or an error resolves it to null.")
	w.Paragraph("Replacement paths bind a transform explicitly with a pipe suffix. Without a suffix the remapped attribute keeps the transform of its registry default.")

	w.CodeBlock("python", `# transforms/branding.star
def titled_brand(value, item, shop):
    """Title-case the brand and fall back to the seller name."""
    if value:
        return str(value).title()
    return shop.seller_name`)

	w.CodeBlock("bash", `# Bind it to the brand attribute for one shop
feedlift mapping set shop-1 brand "meta_data._brand | branding.titled_brand"`)

	filename := filepath.Join(outDir, "transforms.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated transforms.md")
	return nil
}
