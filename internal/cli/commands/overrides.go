package commands

import (
	"github.com/spf13/cobra"
)

// NewOverridesCommand creates the overrides command group.
func NewOverridesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Manage per-product overrides",
	}

	cmd.AddCommand(newOverridesClearCommand())

	return cmd
}

func newOverridesClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <shop-id> <attribute>",
		Short: "Remove an attribute's overrides across the whole shop",
		Long: `Remove every per-product override for one attribute in a shop and
reprocess just the products that carried one. Useful when a bulk edit went
wrong or a marketplace format rule changed.`,
		Example: `  feedlift overrides clear shop-1 title`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverridesClear(cmd, args[0], args[1])
		},
	}
}

func runOverridesClear(cmd *cobra.Command, shopID, attribute string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := cmdCtx.Engine.ClearAttributeOverrides(cmd.Context(), shopID, attribute)
	if err != nil {
		return err
	}
	return renderReport(cmdCtx.Renderer, report)
}
