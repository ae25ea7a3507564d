package validate

import (
	"strconv"

	"github.com/feedlift/feedlift/pkg/core"
	"github.com/feedlift/feedlift/pkg/feedspec"
)

// crossFieldIssues checks constraints that span two attributes. It runs
// after the per-field pass, so values it inspects are either absent or
// already individually validated.
func crossFieldIssues(values core.FieldValues) []core.Issue {
	var issues []core.Issue

	availability := stringAt(values, feedspec.FieldAvailability)
	if stringAt(values, feedspec.FieldAvailabilityDate) != "" && availability != "preorder" {
		issues = append(issues, core.ErrorIssue(feedspec.FieldAvailabilityDate, "only allowed when availability is preorder"))
	}

	if price, ok := parsePrice(stringAt(values, feedspec.FieldPrice)); ok {
		if sale, ok := parsePrice(stringAt(values, feedspec.FieldSalePrice)); ok && sale > price {
			issues = append(issues, core.ErrorIssue(feedspec.FieldSalePrice, "must not exceed price"))
		}
	}

	if stringAt(values, feedspec.FieldCheckoutEnabled) == "true" && stringAt(values, feedspec.FieldSearchEnabled) == "false" {
		issues = append(issues, core.ErrorIssue(feedspec.FieldCheckoutEnabled, "cannot be enabled while search is disabled"))
	}

	return issues
}

// parsePrice extracts the numeric amount from a formatted price value.
func parsePrice(s string) (float64, bool) {
	m := priceRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
