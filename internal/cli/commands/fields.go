package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/feedlift/feedlift/internal/cli/output"
	"github.com/feedlift/feedlift/pkg/feedspec"
)

// NewFieldsCommand creates the fields command.
func NewFieldsCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the marketplace attribute registry",
		Long: `List every marketplace attribute with its requirement level, data type,
default extraction source and format rules.`,
		Example: `  # All attributes
  feedlift fields

  # One category
  feedlift fields --category pricing

  # Spreadsheet-friendly
  feedlift fields --output csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFields(cmd, category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list attributes in this category")
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return feedspec.Default().Categories(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runFields(cmd *cobra.Command, category string) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	registry := feedspec.Default()

	specs := registry.All()
	if category != "" {
		specs = registry.ByCategory(category)
		if len(specs) == 0 {
			return fmt.Errorf("unknown category %q (known: %s)",
				category, strings.Join(registry.Categories(), ", "))
		}
	}

	r := cmdCtx.Renderer
	if r.Mode() == output.ModeJSON {
		return r.JSON(specs)
	}

	rows := make([]table.Row, 0, len(specs))
	for _, spec := range specs {
		rows = append(rows, table.Row{
			spec.Name,
			spec.Requirement,
			spec.Type,
			spec.Category,
			mappingSource(spec),
			spec.Rules,
		})
	}
	r.Table(table.Row{"ATTRIBUTE", "REQUIREMENT", "TYPE", "CATEGORY", "SOURCE", "RULES"}, rows)
	return nil
}

// mappingSource summarizes an attribute's default extraction source.
func mappingSource(spec feedspec.FieldSpec) string {
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
	if spec.Mapping.Fallback != "" {
		src += " or " + spec.Mapping.Fallback
	}
	if spec.Mapping.Transform != "" {
		src += " via " + spec.Mapping.Transform
	}
	return src
}
