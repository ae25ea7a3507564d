package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/feedlift/feedlift/pkg/feedspec"
)

// categoryDescriptions provides human-readable descriptions for the registry
// categories.
var categoryDescriptions = map[string]string{
	"general":        "Core listing attributes: identity, titles, descriptions and images.",
	"pricing":        "Prices, sale windows and unit pricing.",
	"availability":   "Stock state, preorder dates and orderable quantities.",
	"identifiers":    "Brand and product identifiers (GTIN, MPN, condition).",
	"categorization": "Category paths and descriptive facets such as color and size.",
	"shipping":       "Weights, dimensions and handling attributes.",
	"merchant":       "Shop-scoped defaults shared by every product.",
	"visibility":     "Feed inclusion toggles and pause state.",
	"checkout":       "Attributes required when native checkout is enabled.",
	"engagement":     "Ratings, media links and campaign labels.",
}

// generateAttributeDocs generates the attribute registry reference.
func generateAttributeDocs(outDir string) error {
	log.Printf("Generating attribute docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	registry := feedspec.Default()

	w := NewMarkdownWriter()
	w.Frontmatter("Attribute Reference", "Marketplace feed attributes resolved and validated by Feedlift")
	w.GeneratedMarker()

	w.Header(1, "Attribute Reference")

	required, recommended, conditional := 0, 0, 0
	for _, spec := range registry.All() {
		switch spec.Requirement {
		case feedspec.Required:
			required++
		case feedspec.Recommended:
			recommended++
		case feedspec.Conditional:
			conditional++
		}
	}
	w.Paragraph(fmt.Sprintf(
		"Feedlift resolves %s marketplace attributes per product: %s required, %s recommended and %s conditionally required. The rest are optional.",
		Bold(fmt.Sprintf("%d", registry.Count())),
		Bold(fmt.Sprintf("%d", required)),
		Bold(fmt.Sprintf("%d", recommended)),
		Bold(fmt.Sprintf("%d", conditional))))

	w.Header(2, "Requirement Levels")
	w.Table(
		[]string{"Level", "Behavior when missing"},
		[][]string{
			{InlineCode("required"), "Validation error; the product is excluded from the feed"},
			{InlineCode("recommended"), "Validation warning; the product still publishes"},
			{InlineCode("conditional"), "Required only while its condition holds (see each attribute)"},
			{InlineCode("optional"), "No issue"},
		},
	)

	w.Header(2, "Reading the Source Column")
	w.BulletList([]string{
		InlineCode("path") + ": extraction path into the raw platform payload",
		InlineCode("a or b") + ": fallback path tried when the primary misses",
		InlineCode("... via t") + ": transform applied after extraction",
		InlineCode("shop.field") + ": read from the shop's settings, same value for every product",
		InlineCode("product toggle") + ": sourced from the product's visibility columns",
	})

	for _, category := range registry.Categories() {
		w.Header(2, titleCase(category))

		if desc, ok := categoryDescriptions[category]; ok {
			w.Paragraph(desc)
		}

		headers := []string{"Attribute", "Requirement", "Type", "Source", "Rules"}
		var rows [][]string
		for _, spec := range registry.ByCategory(category) {
			rows = append(rows, []string{
				attributeCell(spec),
				string(spec.Requirement),
				string(spec.Type),
				sourceCell(spec),
				spec.Rules,
			})
		}
		w.Table(headers, rows)
	}

	filename := filepath.Join(outDir, "attributes.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated attributes.md")
	return nil
}

// titleCase uppercases the first letter of an ASCII category name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// attributeCell renders the attribute name, marking locked attributes.
func attributeCell(spec feedspec.FieldSpec) string {
	cell := InlineCode(spec.Name)
	if spec.Locked {
		cell += " (locked)"
	}
	return cell
}

// sourceCell summarizes the default extraction source for the table.
func sourceCell(spec feedspec.FieldSpec) string {
	if spec.Mapping == nil {
		if feedspec.IsToggle(spec.Name) {
			return "product toggle"
		}
		return ""
	}

	src := spec.Mapping.Path
	if spec.Mapping.ShopField {
		src = "shop." + src
	}
	src = InlineCode(src)
	if spec.Mapping.Fallback != "" {
		src += " or " + InlineCode(spec.Mapping.Fallback)
	}
	if spec.Mapping.Transform != "" {
		src += " via " + InlineCode(spec.Mapping.Transform)
	}
	return src
}
