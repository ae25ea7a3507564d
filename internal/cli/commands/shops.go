package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/feedlift/feedlift/internal/cli/output"
)

// NewShopsCommand creates the shops command group.
func NewShopsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shops",
		Short: "Inspect and configure shops",
	}

	cmd.AddCommand(newShopsListCommand())
	cmd.AddCommand(newShopsSetFieldCommand())

	return cmd
}

func newShopsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all shops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShopsList(cmd)
		},
	}
}

func runShopsList(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	shops, err := cmdCtx.Engine.GetStore().ListShops(cmd.Context())
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.Mode() == output.ModeJSON {
		return r.JSON(shops)
	}

	rows := make([]table.Row, 0, len(shops))
	for _, shop := range shops {
		rows = append(rows, table.Row{
			shop.ID,
			shop.Name,
			len(shop.Settings.Fields),
			len(shop.Settings.Mappings),
		})
	}
	r.Table(table.Row{"ID", "NAME", "FIELDS", "MAPPINGS"}, rows)
	return nil
}

func newShopsSetFieldCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-field <shop-id> <field> <value>",
		Short: "Set a shop-scoped field value",
		Long: `Set one shop-scoped field, such as currency or seller_name. Shop fields
feed "shop.<name>" extraction paths, shop-field registry defaults and the
unit-aware transforms, so the shop is reprocessed afterwards.`,
		Example: `  feedlift shops set-field shop-1 currency EUR
  feedlift shops set-field shop-1 seller_name "Acme Outdoor"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShopsSetField(cmd, args[0], args[1], args[2])
		},
	}
}

func runShopsSetField(cmd *cobra.Command, shopID, field, value string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	store := cmdCtx.Engine.GetStore()

	shop, err := store.GetShop(ctx, shopID)
	if err != nil {
		return err
	}
	if shop.Settings.Fields == nil {
		shop.Settings.Fields = map[string]string{}
	}
	shop.Settings.Fields[field] = value

	if err := store.UpsertShop(ctx, shop); err != nil {
		return err
	}

	report, err := cmdCtx.Engine.ReprocessShop(ctx, shopID)
	if err != nil {
		return err
	}
	return renderReport(cmdCtx.Renderer, report)
}
