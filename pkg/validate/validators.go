package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/currency"

	"github.com/feedlift/feedlift/pkg/core"
	"github.com/feedlift/feedlift/pkg/feedspec"
)

// CheckFunc validates one present value against its spec. An empty result
// means the value passed; warnings are advisory and do not block.
type CheckFunc func(spec feedspec.FieldSpec, value any) []core.Issue

// checks maps each data type to its validator. A type missing from the
// table validates as always-valid, which is also the fallback for malformed
// specs.
var checks = map[feedspec.DataType]CheckFunc{
	feedspec.TypeText:         checkText,
	feedspec.TypeAlphanumeric: checkAlphanumeric,
	feedspec.TypePrice:        checkPrice,
	feedspec.TypeBarcode:      checkBarcode,
	feedspec.TypeURL:          checkURL,
	feedspec.TypeURLList:      checkURLList,
	feedspec.TypeCategoryPath: checkCategoryPath,
	feedspec.TypeEnum:         checkEnum,
	feedspec.TypeBool:         checkBool,
	feedspec.TypeDate:         checkDate,
	feedspec.TypeDateRange:    checkDateRange,
	feedspec.TypeDimensions:   checkDimensions,
	feedspec.TypeMeasure:      checkMeasure,
	feedspec.TypeNumber:       checkNumber,
	feedspec.TypeRating:       checkRating,
}

const dateLayout = "2006-01-02"

var (
	priceRe        = regexp.MustCompile(`^(\d+\.\d{2}) ([A-Z]{3})$`)
	barcodeRe      = regexp.MustCompile(`^\d{8,14}$`)
	alphanumericRe = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)
	dimensionsRe   = regexp.MustCompile(`^\d+(\.\d+)?x\d+(\.\d+)?x\d+(\.\d+)? [A-Za-z]+$`)
	measureRe      = regexp.MustCompile(`^\d+(\.\d+)? [A-Za-z]+$`)
)

// supportedCurrencies is the marketplace's currency allow-list. Codes must
// also be real ISO 4217 units.
var supportedCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "CAD": true, "AUD": true,
	"NZD": true, "JPY": true, "CHF": true, "SEK": true, "NOK": true,
	"DKK": true, "PLN": true, "CZK": true, "HUF": true, "RON": true,
	"BGN": true, "MXN": true, "BRL": true, "SGD": true, "HKD": true,
	"INR": true, "ZAR": true, "AED": true, "SAR": true, "TRY": true,
	"ILS": true, "KRW": true, "TWD": true, "THB": true, "MYR": true,
	"PHP": true, "IDR": true, "VND": true, "CLP": true, "COP": true,
	"PEN": true, "ARS": true,
}

func supportedCurrency(code string) bool {
	if _, err := currency.ParseISO(code); err != nil {
		return false
	}
	return supportedCurrencies[code]
}

// scalarString coerces a scalar to its string form for format checks.
// Booleans and composites do not coerce; the bool and enum validators call
// out native booleans explicitly.
func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

// floatOf coerces numbers and numeric strings to float64.
func floatOf(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func errOnly(field, message string) []core.Issue {
	return []core.Issue{core.ErrorIssue(field, message)}
}

func checkText(spec feedspec.FieldSpec, value any) []core.Issue {
	s, ok := scalarString(value)
	if !ok {
		return errOnly(spec.Name, "must be text")
	}
	if spec.MaxLen > 0 && utf8.RuneCountInString(s) > spec.MaxLen {
		return errOnly(spec.Name, fmt.Sprintf("must not exceed %d characters", spec.MaxLen))
	}
	return nil
}

func checkAlphanumeric(spec feedspec.FieldSpec, value any) []core.Issue {
	s, ok := scalarString(value)
	if !ok {
		return errOnly(spec.Name, "must be text")
	}
	if !alphanumericRe.MatchString(s) {
		return errOnly(spec.Name, "may only contain letters, digits, spaces, dashes and underscores")
	}
	if spec.MaxLen > 0 && utf8.RuneCountInString(s) > spec.MaxLen {
		return errOnly(spec.Name, fmt.Sprintf("must not exceed %d characters", spec.MaxLen))
	}
	return nil
}

func checkPrice(spec feedspec.FieldSpec, value any) []core.Issue {
	s, ok := scalarString(value)
	if !ok {
		return errOnly(spec.Name, "must be a non-negative amount with two decimals and an ISO 4217 currency, e.g. 19.99 USD")
	}
	m := priceRe.FindStringSubmatch(s)
	if m == nil {
		return errOnly(spec.Name, "must be a non-negative amount with two decimals and an ISO 4217 currency, e.g. 19.99 USD")
	}
	if !supportedCurrency(m[2]) {
		return errOnly(spec.Name, fmt.Sprintf("unsupported currency %q", m[2]))
	}
	return nil
}

func checkBarcode(spec feedspec.FieldSpec, value any) []core.Issue {
	s, ok := scalarString(value)
	if !ok || !barcodeRe.MatchString(s) {
		return errOnly(spec.Name, "must be 8-14 digits")
	}
	return nil
}

func checkURL(spec feedspec.FieldSpec, value any) []core.Issue {
	s, ok := value.(string)
	if !ok {
		return errOnly(spec.Name, "must be a valid http(s) URL")
	}
	return checkURLString(spec.Name, s)
}

func checkURLString(field, s string) []core.Issue {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errOnly(field, "must be a valid http(s) URL")
	}
	if u.Scheme == "http" {
		return []core.Issue{core.WarningIssue(field, "uses http; https is recommended")}
	}
	return nil
}

// checkURLList validates every element of a multi-value URL attribute, so
// diagnostics name the offending entry.
func checkURLList(spec feedspec.FieldSpec, value any) []core.Issue {
	var urls []string
	switch v := value.(type) {
	case string:
		urls = []string{v}
	case []string:
		urls = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return errOnly(spec.Name, "must be a list of http(s) URLs")
			}
			urls = append(urls, s)
		}
	default:
		return errOnly(spec.Name, "must be a list of http(s) URLs")
	}

	var issues []core.Issue
	for i, u := range urls {
		for _, issue := range checkURLString(spec.Name, u) {
			issue.Message = fmt.Sprintf("entry %d: %s", i+1, issue.Message)
			issues = append(issues, issue)
		}
	}
	return issues
}

func checkCategoryPath(spec feedspec.FieldSpec, value any) []core.Issue {
	s, ok := scalarString(value)
	if !ok {
		return errOnly(spec.Name, "must be text")
	}
	if strings.ContainsAny(s, "/|,") {
		return errOnly(spec.Name, "must use > as the hierarchy separator, not /, | or ,")
	}
	return nil
}

func checkEnum(spec feedspec.FieldSpec, value any) []core.Issue {
	if _, isBool := value.(bool); isBool {
		return errOnly(spec.Name, `must be the string "true" or "false", not a boolean`)
	}
	// A malformed enum spec with no values cannot judge anything.
	if len(spec.Enum) == 0 {
		return nil
	}
	s, ok := scalarString(value)
	if !ok {
		return errOnly(spec.Name, fmt.Sprintf("must be one of: %s", strings.Join(spec.Enum, ", ")))
	}
	for _, allowed := range spec.Enum {
		if s == allowed {
			return nil
		}
	}
	return errOnly(spec.Name, fmt.Sprintf("must be one of: %s", strings.Join(spec.Enum, ", ")))
}

func checkBool(spec feedspec.FieldSpec, value any) []core.Issue {
	if _, isBool := value.(bool); isBool {
		return errOnly(spec.Name, `must be the string "true" or "false", not a boolean`)
	}
	s, ok := value.(string)
	if !ok || (s != "true" && s != "false") {
		return errOnly(spec.Name, `must be "true" or "false"`)
	}
	return nil
}

func checkDate(spec feedspec.FieldSpec, value any) []core.Issue {
	s, ok := value.(string)
	if !ok {
		return errOnly(spec.Name, "must be formatted YYYY-MM-DD")
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return errOnly(spec.Name, "must be formatted YYYY-MM-DD")
	}
	return nil
}

func checkDateRange(spec feedspec.FieldSpec, value any) []core.Issue {
	s, ok := value.(string)
	if !ok {
		return errOnly(spec.Name, "must be formatted YYYY-MM-DD / YYYY-MM-DD")
	}
	parts := strings.Split(s, " / ")
	if len(parts) != 2 {
		return errOnly(spec.Name, "must be formatted YYYY-MM-DD / YYYY-MM-DD")
	}
	start, err1 := time.Parse(dateLayout, parts[0])
	end, err2 := time.Parse(dateLayout, parts[1])
	if err1 != nil || err2 != nil {
		return errOnly(spec.Name, "must be formatted YYYY-MM-DD / YYYY-MM-DD")
	}
	if !start.Before(end) {
		return errOnly(spec.Name, "start date must be before end date")
	}
	return nil
}

func checkDimensions(spec feedspec.FieldSpec, value any) []core.Issue {
	s, ok := value.(string)
	if !ok || !dimensionsRe.MatchString(s) {
		return errOnly(spec.Name, "must be formatted LxWxH with a unit, e.g. 30x20x10 cm")
	}
	return nil
}

func checkMeasure(spec feedspec.FieldSpec, value any) []core.Issue {
	s, ok := value.(string)
	if !ok || !measureRe.MatchString(s) {
		return errOnly(spec.Name, "must be a number with a unit, e.g. 1.5 kg")
	}
	return nil
}

func checkNumber(spec feedspec.FieldSpec, value any) []core.Issue {
	f, ok := floatOf(value)
	if !ok || f < 0 {
		return errOnly(spec.Name, "must be a non-negative number")
	}
	return nil
}

func checkRating(spec feedspec.FieldSpec, value any) []core.Issue {
	f, ok := floatOf(value)
	if !ok || f < 0 || f > 5 {
		return errOnly(spec.Name, "must be between 0 and 5")
	}
	return nil
}
