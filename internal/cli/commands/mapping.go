package commands

import (
	"github.com/spf13/cobra"
)

// NewMappingCommand creates the mapping command group.
func NewMappingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Manage shop-level extraction mappings",
		Long: `Shop-level mappings replace an attribute's default extraction path for
every product in the shop. Changing one reprocesses the whole shop.

A path may carry an explicit transform after a pipe, as in
"short_description | strip_html". The named transform replaces the
attribute's default one for that shop.`,
	}

	cmd.AddCommand(newMappingSetCommand())
	cmd.AddCommand(newMappingClearCommand())

	return cmd
}

func newMappingSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <shop-id> <attribute> <path>",
		Short: "Point an attribute at a different payload path",
		Example: `  # Read brand from a meta field
  feedlift mapping set shop-1 brand meta_data._brand

  # Read color from a product attribute
  feedlift mapping set shop-1 color "attributes.Colour"

  # Override the transform along with the path
  feedlift mapping set shop-1 title "short_description | strip_html"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMappingSet(cmd, args[0], args[1], &args[2])
		},
	}
}

func newMappingClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <shop-id> <attribute>",
		Short: "Restore an attribute's default extraction path",
		Example: `  feedlift mapping clear shop-1 brand`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMappingSet(cmd, args[0], args[1], nil)
		},
	}
}

func runMappingSet(cmd *cobra.Command, shopID, attribute string, path *string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := cmdCtx.Engine.UpdateShopMapping(cmd.Context(), shopID, attribute, path)
	if err != nil {
		return err
	}
	return renderReport(cmdCtx.Renderer, report)
}
