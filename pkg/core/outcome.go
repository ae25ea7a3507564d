package core

import "time"

// FieldValues is one product's resolved attribute set. Attributes that
// resolved to null are absent from the map.
type FieldValues map[string]any

// Outcome is the validation result for one product's resolved field set.
type Outcome struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Add routes an issue into the errors or warnings list by severity.
func (o *Outcome) Add(issue Issue) {
	if issue.Severity == SeverityError {
		o.Errors = append(o.Errors, issue)
		return
	}
	o.Warnings = append(o.Warnings, issue)
}

// ErrorsByField groups error messages by attribute name, the shape the
// storefront API serves alongside the resolved values.
func (o *Outcome) ErrorsByField() map[string][]string {
	return groupByField(o.Errors)
}

// WarningsByField groups warning messages by attribute name.
func (o *Outcome) WarningsByField() map[string][]string {
	return groupByField(o.Warnings)
}

func groupByField(issues []Issue) map[string][]string {
	grouped := make(map[string][]string, len(issues))
	for _, issue := range issues {
		grouped[issue.Field] = append(grouped[issue.Field], issue.Message)
	}
	return grouped
}

// FeedSnapshot is the persisted result of resolving and validating one
// product: the publishable values plus the validation verdict. One snapshot
// per product, replaced on every reprocess.
type FeedSnapshot struct {
	ID          string      `json:"id"`
	ShopID      string      `json:"shop_id"`
	ProductID   string      `json:"product_id"`
	Values      FieldValues `json:"values"`
	Valid       bool        `json:"valid"`
	Errors      []Issue     `json:"errors"`
	Warnings    []Issue     `json:"warnings"`
	GeneratedAt time.Time   `json:"generated_at"`
}
