package validate

import (
	"log/slog"

	"github.com/feedlift/feedlift/pkg/core"
	"github.com/feedlift/feedlift/pkg/feedspec"
)

// Validator checks resolved field sets against the attribute registry.
type Validator struct {
	registry *feedspec.Registry
	ordered  []feedspec.FieldSpec
	logger   *slog.Logger
}

// New builds a validator over the given registry. The registry's iteration
// order fixes the order issues are reported in.
func New(specs *feedspec.Registry, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Validator{
		registry: specs,
		ordered:  specs.All(),
		logger:   logger,
	}
}

// ValidateFields runs the full validation pass over a resolved field set:
// requirement enforcement, per-type checks for every present value, and the
// cross-field pass. The outcome is valid when no errors were raised.
func (v *Validator) ValidateFields(values core.FieldValues, pctx core.ProductContext) core.Outcome {
	outcome := core.Outcome{Valid: true}

	for _, spec := range v.ordered {
		value, present := values[spec.Name]
		if !present || isEmpty(value) {
			v.reportMissing(&outcome, spec, values, pctx)
			continue
		}
		check, ok := checks[spec.Type]
		if !ok {
			// Unknown data type: nothing to judge the value against.
			v.logger.Debug("no validator for data type", "attribute", spec.Name, "type", spec.Type)
			continue
		}
		for _, issue := range check(spec, value) {
			outcome.Add(issue)
		}
	}

	for _, issue := range crossFieldIssues(values) {
		outcome.Add(issue)
	}

	outcome.Valid = len(outcome.Errors) == 0
	return outcome
}

func (v *Validator) reportMissing(outcome *core.Outcome, spec feedspec.FieldSpec, values core.FieldValues, pctx core.ProductContext) {
	switch spec.Requirement {
	case feedspec.Required:
		outcome.Add(core.ErrorIssue(spec.Name, "required attribute is missing"))
	case feedspec.Recommended:
		outcome.Add(core.WarningIssue(spec.Name, "recommended attribute is missing"))
	case feedspec.Conditional:
		if holds, message := conditionHolds(spec.Condition, values, pctx); holds {
			outcome.Add(core.ErrorIssue(spec.Name, message))
		}
	}
}

// conditionHolds reports whether a conditional attribute is required for
// this product, and the error message to raise when it is missing.
func conditionHolds(cond feedspec.Condition, values core.FieldValues, pctx core.ProductContext) (bool, string) {
	switch cond {
	case feedspec.CondCheckoutEnabled:
		return stringAt(values, feedspec.FieldCheckoutEnabled) == "true", "required when checkout is enabled"
	case feedspec.CondBarcodeAbsent:
		return stringAt(values, feedspec.FieldGTIN) == "", "required when gtin is absent"
	case feedspec.CondPreorder:
		return stringAt(values, feedspec.FieldAvailability) == "preorder", "required when availability is preorder"
	case feedspec.CondVariantParent:
		return pctx.IsVariant, "required for product variants"
	default:
		return false, ""
	}
}

// isEmpty treats nil, empty strings and empty slices as absent.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func stringAt(values core.FieldValues, field string) string {
	s, _ := values[field].(string)
	return s
}
