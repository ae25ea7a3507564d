package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/feedlift/feedlift/pkg/core"
	"github.com/feedlift/feedlift/pkg/feedspec"
)

var (
	maxCharsRe    = regexp.MustCompile(`(?i)max\s+(\d+)\s+characters`)
	digitsRangeRe = regexp.MustCompile(`(\d+)-(\d+)\s+digits`)
)

// Literal statically validates a raw literal against an attribute's spec,
// before the value is stored as an override. Unlike the field pass it has no
// product to consult, so only the type check and any free-text rules apply.
// An unknown attribute is a hard error, not an issue.
func Literal(specs *feedspec.Registry, attribute, raw string) ([]core.Issue, error) {
	spec, err := specs.Lookup(attribute)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(raw) == "" {
		if spec.Requirement == feedspec.Required {
			return []core.Issue{core.ErrorIssue(spec.Name, "required attribute must not be empty")}, nil
		}
		return nil, nil
	}

	var issues []core.Issue
	if check, ok := checks[spec.Type]; ok {
		issues = append(issues, check(spec, raw)...)
	}
	issues = append(issues, ruleTextIssues(spec, raw)...)
	return issues, nil
}

// Literal validates a raw literal against this validator's registry.
func (v *Validator) Literal(attribute, raw string) ([]core.Issue, error) {
	return Literal(v.registry, attribute, raw)
}

// ruleTextIssues applies constraints stated in an attribute's free-text
// rules. Patterns already covered by the structured spec are skipped so the
// same problem is not reported twice.
func ruleTextIssues(spec feedspec.FieldSpec, raw string) []core.Issue {
	if spec.Rules == "" {
		return nil
	}

	var issues []core.Issue
	if spec.MaxLen == 0 {
		if m := maxCharsRe.FindStringSubmatch(spec.Rules); m != nil {
			limit, err := strconv.Atoi(m[1])
			if err == nil && utf8.RuneCountInString(raw) > limit {
				issues = append(issues, core.ErrorIssue(spec.Name, fmt.Sprintf("must not exceed %d characters", limit)))
			}
		}
	}
	if spec.Type != feedspec.TypeBarcode {
		if m := digitsRangeRe.FindStringSubmatch(spec.Rules); m != nil {
			lo, err1 := strconv.Atoi(m[1])
			hi, err2 := strconv.Atoi(m[2])
			if err1 == nil && err2 == nil {
				if !allDigits(raw) || len(raw) < lo || len(raw) > hi {
					issues = append(issues, core.ErrorIssue(spec.Name, fmt.Sprintf("must be %d-%d digits", lo, hi)))
				}
			}
		}
	}
	return issues
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
