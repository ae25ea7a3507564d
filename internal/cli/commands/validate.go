package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/feedlift/feedlift/internal/cli/output"
	"github.com/feedlift/feedlift/pkg/core"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <shop-id> <product-id>",
		Short: "Resolve and validate one product",
		Long: `Resolve a product's feed attributes and run the full validation pass:
type checks, requirement levels, conditional rules and cross-field rules.

The command exits non-zero when the product has validation errors, so it can
gate feed publication in scripts.`,
		Example: `  # Validate a product
  feedlift validate shop-1 KET-001

  # Full snapshot as JSON
  feedlift validate shop-1 KET-001 --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], args[1])
		},
	}
}

func runValidate(cmd *cobra.Command, shopID, productID string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := cmdCtx.Engine.Preview(cmd.Context(), shopID, productID)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.Mode() == output.ModeJSON {
		if err := r.JSON(snap); err != nil {
			return err
		}
	} else {
		renderIssues(r, snap)
	}

	if !snap.Valid {
		return fmt.Errorf("product %s failed validation with %d errors", productID, len(snap.Errors))
	}
	return nil
}

// renderIssues prints the validation issues and the verdict.
func renderIssues(r *output.Renderer, snap *core.FeedSnapshot) {
	if len(snap.Errors) == 0 && len(snap.Warnings) == 0 {
		r.Printf("Product %s is valid: no issues\n", snap.ProductID)
		return
	}

	rows := make([]table.Row, 0, len(snap.Errors)+len(snap.Warnings))
	for _, issue := range snap.Errors {
		rows = append(rows, table.Row{issue.Severity, issue.Field, issue.Message})
	}
	for _, issue := range snap.Warnings {
		rows = append(rows, table.Row{issue.Severity, issue.Field, issue.Message})
	}
	r.Table(table.Row{"SEVERITY", "ATTRIBUTE", "MESSAGE"}, rows)

	if snap.Valid {
		r.Printf("Product %s is valid: %d warnings\n", snap.ProductID, len(snap.Warnings))
	} else {
		r.Printf("Product %s is invalid: %d errors, %d warnings\n",
			snap.ProductID, len(snap.Errors), len(snap.Warnings))
	}
}
