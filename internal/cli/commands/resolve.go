package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/feedlift/feedlift/internal/cli/output"
	"github.com/feedlift/feedlift/pkg/core"
	"github.com/feedlift/feedlift/pkg/feedspec"
)

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <shop-id> <product-id>",
		Short: "Show the resolved feed values for one product",
		Long: `Resolve a product's feed attributes through every layer (overrides,
toggles, shop mappings, registry defaults) and print the result without
persisting a snapshot.`,
		Example: `  # Resolve a product against the current mappings
  feedlift resolve shop-1 KET-001

  # Machine-readable output
  feedlift resolve shop-1 KET-001 --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], args[1])
		},
	}
}

func runResolve(cmd *cobra.Command, shopID, productID string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := cmdCtx.Engine.Preview(cmd.Context(), shopID, productID)
	if err != nil {
		return err
	}

	if cmdCtx.Renderer.Mode() == output.ModeJSON {
		return cmdCtx.Renderer.JSON(snap.Values)
	}

	renderValues(cmdCtx.Renderer, snap.Values)
	return nil
}

// renderValues prints resolved attribute values in registry order, skipping
// attributes that resolved to nothing.
func renderValues(r *output.Renderer, values core.FieldValues) {
	rows := make([]table.Row, 0, len(values))
	for _, spec := range feedspec.Default().All() {
		v, ok := values[spec.Name]
		if !ok || v == nil {
			continue
		}
		rows = append(rows, table.Row{spec.Name, formatValue(v)})
	}
	r.Table(table.Row{"ATTRIBUTE", "VALUE"}, rows)
}

// formatValue renders a resolved value for table output.
func formatValue(v any) string {
	switch vv := v.(type) {
	case string:
		return vv
	case []string:
		return fmt.Sprintf("%d entries: %v", len(vv), vv)
	default:
		return fmt.Sprintf("%v", vv)
	}
}
