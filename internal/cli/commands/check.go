package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/feedlift/feedlift/internal/cli/output"
	"github.com/feedlift/feedlift/pkg/core"
	"github.com/feedlift/feedlift/pkg/feedspec"
	"github.com/feedlift/feedlift/pkg/validate"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <attribute> <value>",
		Short: "Check a literal value against an attribute's format rules",
		Long: `Run the static validator for a single attribute value, without touching
the store. This is the same check the merchant UI runs while an override is
being typed.`,
		Example: `  # A well-formed price
  feedlift check price "19.99 USD"

  # Missing currency
  feedlift check price "19.99"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], args[1])
		},
	}
}

func runCheck(cmd *cobra.Command, attribute, value string) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	issues, err := validate.Literal(feedspec.Default(), attribute, value)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.Mode() == output.ModeJSON {
		if err := r.JSON(issues); err != nil {
			return err
		}
	} else if len(issues) == 0 {
		r.Printf("%s: ok\n", attribute)
	} else {
		rows := make([]table.Row, 0, len(issues))
		for _, issue := range issues {
			rows = append(rows, table.Row{issue.Severity, issue.Message})
		}
		r.Table(table.Row{"SEVERITY", "MESSAGE"}, rows)
	}

	for _, issue := range issues {
		if issue.Severity == core.SeverityError {
			return fmt.Errorf("invalid value for %s", attribute)
		}
	}
	return nil
}
