package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the weight of a validation issue.
type Severity int

// Severity levels for validation issues.
const (
	// SeverityError blocks the product from being published.
	SeverityError Severity = iota
	// SeverityWarning flags a quality problem without blocking publication.
	SeverityWarning
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	default:
		return SeverityWarning, false
	}
}

// MarshalJSON encodes the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its string form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, ok := ParseSeverity(raw)
	if !ok {
		return fmt.Errorf("invalid severity %q", raw)
	}
	*s = parsed
	return nil
}

// =============================================================================
// Issue
// =============================================================================

// Issue is a single validation finding attached to an attribute.
type Issue struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ErrorIssue builds an error-severity issue for a field.
func ErrorIssue(field, message string) Issue {
	return Issue{Field: field, Message: message, Severity: SeverityError}
}

// WarningIssue builds a warning-severity issue for a field.
func WarningIssue(field, message string) Issue {
	return Issue{Field: field, Message: message, Severity: SeverityWarning}
}
