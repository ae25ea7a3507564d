package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedlift/feedlift/pkg/core"
	"github.com/feedlift/feedlift/pkg/feedspec"
)

func mustSpec(t *testing.T, name string) feedspec.FieldSpec {
	t.Helper()
	spec, ok := feedspec.Default().Get(name)
	require.True(t, ok, "registry should define %s", name)
	return spec
}

func TestCheckPrice(t *testing.T) {
	spec := mustSpec(t, "price")

	tests := []struct {
		name    string
		value   any
		wantMsg string
	}{
		{name: "well formed", value: "19.99 USD"},
		{name: "zero amount", value: "0.00 EUR"},
		{name: "missing currency", value: "19.99", wantMsg: "must be a non-negative amount with two decimals and an ISO 4217 currency, e.g. 19.99 USD"},
		{name: "negative amount", value: "-5.00 USD", wantMsg: "must be a non-negative amount with two decimals and an ISO 4217 currency, e.g. 19.99 USD"},
		{name: "one decimal", value: "19.9 USD", wantMsg: "must be a non-negative amount with two decimals and an ISO 4217 currency, e.g. 19.99 USD"},
		{name: "lowercase currency", value: "19.99 usd", wantMsg: "must be a non-negative amount with two decimals and an ISO 4217 currency, e.g. 19.99 USD"},
		{name: "not iso 4217", value: "19.99 ZZZ", wantMsg: `unsupported currency "ZZZ"`},
		{name: "iso but unsupported", value: "19.99 KWD", wantMsg: `unsupported currency "KWD"`},
		{name: "raw number", value: 19.99, wantMsg: "must be a non-negative amount with two decimals and an ISO 4217 currency, e.g. 19.99 USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := checkPrice(spec, tt.value)
			if tt.wantMsg == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, core.SeverityError, issues[0].Severity)
			assert.Equal(t, tt.wantMsg, issues[0].Message)
		})
	}
}

func TestCheckBarcode(t *testing.T) {
	spec := mustSpec(t, "gtin")

	tests := []struct {
		name  string
		value any
		valid bool
	}{
		{name: "ean-14", value: "04012345678901", valid: true},
		{name: "ean-8", value: "12345678", valid: true},
		{name: "too short", value: "1234567"},
		{name: "too long", value: "123456789012345"},
		{name: "letters", value: "ABC12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := checkBarcode(spec, tt.value)
			if tt.valid {
				assert.Empty(t, issues)
			} else {
				require.Len(t, issues, 1)
				assert.Equal(t, "must be 8-14 digits", issues[0].Message)
			}
		})
	}
}

func TestCheckURL(t *testing.T) {
	spec := mustSpec(t, "link")

	t.Run("https passes clean", func(t *testing.T) {
		assert.Empty(t, checkURL(spec, "https://shop.example.com/kettle"))
	})

	t.Run("http passes with warning", func(t *testing.T) {
		issues := checkURL(spec, "http://shop.example.com/kettle")
		require.Len(t, issues, 1)
		assert.Equal(t, core.SeverityWarning, issues[0].Severity)
		assert.Equal(t, "uses http; https is recommended", issues[0].Message)
	})

	t.Run("other schemes rejected", func(t *testing.T) {
		issues := checkURL(spec, "ftp://shop.example.com/kettle")
		require.Len(t, issues, 1)
		assert.Equal(t, core.SeverityError, issues[0].Severity)
	})

	t.Run("no host rejected", func(t *testing.T) {
		issues := checkURL(spec, "just some text")
		require.Len(t, issues, 1)
		assert.Equal(t, "must be a valid http(s) URL", issues[0].Message)
	})

	t.Run("non string rejected", func(t *testing.T) {
		require.Len(t, checkURL(spec, 42), 1)
	})
}

func TestCheckURLList(t *testing.T) {
	spec := mustSpec(t, "additional_image_link")

	t.Run("string slice passes", func(t *testing.T) {
		issues := checkURLList(spec, []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
		})
		assert.Empty(t, issues)
	})

	t.Run("single string accepted", func(t *testing.T) {
		assert.Empty(t, checkURLList(spec, "https://cdn.example.com/a.jpg"))
	})

	t.Run("issue names the entry", func(t *testing.T) {
		issues := checkURLList(spec, []any{
			"https://cdn.example.com/a.jpg",
			"not a url",
		})
		require.Len(t, issues, 1)
		assert.Equal(t, "entry 2: must be a valid http(s) URL", issues[0].Message)
	})

	t.Run("http entry warns", func(t *testing.T) {
		issues := checkURLList(spec, []string{"http://cdn.example.com/a.jpg"})
		require.Len(t, issues, 1)
		assert.Equal(t, core.SeverityWarning, issues[0].Severity)
		assert.Equal(t, "entry 1: uses http; https is recommended", issues[0].Message)
	})

	t.Run("mixed list rejected", func(t *testing.T) {
		issues := checkURLList(spec, []any{"https://cdn.example.com/a.jpg", 7})
		require.Len(t, issues, 1)
		assert.Equal(t, "must be a list of http(s) URLs", issues[0].Message)
	})
}

func TestCheckCategoryPath(t *testing.T) {
	spec := mustSpec(t, "category")

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "angle separator", value: "Home > Kitchen > Kettles", valid: true},
		{name: "single level", value: "Home", valid: true},
		{name: "slash separator", value: "Home/Kitchen"},
		{name: "pipe separator", value: "Home | Kitchen"},
		{name: "comma separator", value: "Home, Kitchen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := checkCategoryPath(spec, tt.value)
			if tt.valid {
				assert.Empty(t, issues)
			} else {
				require.Len(t, issues, 1)
				assert.Equal(t, "must use > as the hierarchy separator, not /, | or ,", issues[0].Message)
			}
		})
	}
}

func TestCheckEnum(t *testing.T) {
	spec := mustSpec(t, "availability")

	t.Run("member passes", func(t *testing.T) {
		assert.Empty(t, checkEnum(spec, "in_stock"))
	})

	t.Run("non member lists options", func(t *testing.T) {
		issues := checkEnum(spec, "instock")
		require.Len(t, issues, 1)
		assert.Equal(t, "must be one of: in_stock, out_of_stock, preorder, backorder", issues[0].Message)
	})

	t.Run("native bool called out", func(t *testing.T) {
		issues := checkEnum(spec, true)
		require.Len(t, issues, 1)
		assert.Equal(t, `must be the string "true" or "false", not a boolean`, issues[0].Message)
	})

	t.Run("empty enum accepts anything", func(t *testing.T) {
		broken := feedspec.FieldSpec{Name: "pause", Type: feedspec.TypeEnum}
		assert.Empty(t, checkEnum(broken, "whatever"))
	})
}

func TestCheckBool(t *testing.T) {
	spec := mustSpec(t, "identifier_exists")

	tests := []struct {
		name    string
		value   any
		wantMsg string
	}{
		{name: "true", value: "true"},
		{name: "false", value: "false"},
		{name: "uppercase", value: "TRUE", wantMsg: `must be "true" or "false"`},
		{name: "number", value: 1, wantMsg: `must be "true" or "false"`},
		{name: "native bool", value: true, wantMsg: `must be the string "true" or "false", not a boolean`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := checkBool(spec, tt.value)
			if tt.wantMsg == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, tt.wantMsg, issues[0].Message)
		})
	}
}

func TestCheckDate(t *testing.T) {
	spec := mustSpec(t, "availability_date")

	assert.Empty(t, checkDate(spec, "2026-03-01"))

	for _, bad := range []any{"03/01/2026", "2026-13-40", "2026-3-1", 20260301} {
		issues := checkDate(spec, bad)
		require.Len(t, issues, 1, "value %v", bad)
		assert.Equal(t, "must be formatted YYYY-MM-DD", issues[0].Message)
	}
}

func TestCheckDateRange(t *testing.T) {
	spec := mustSpec(t, "sale_price_effective_date")

	t.Run("ordered range passes", func(t *testing.T) {
		assert.Empty(t, checkDateRange(spec, "2026-03-01 / 2026-03-08"))
	})

	t.Run("reversed range rejected", func(t *testing.T) {
		issues := checkDateRange(spec, "2026-03-08 / 2026-03-01")
		require.Len(t, issues, 1)
		assert.Equal(t, "start date must be before end date", issues[0].Message)
	})

	t.Run("equal dates rejected", func(t *testing.T) {
		issues := checkDateRange(spec, "2026-03-01 / 2026-03-01")
		require.Len(t, issues, 1)
		assert.Equal(t, "start date must be before end date", issues[0].Message)
	})

	t.Run("format errors", func(t *testing.T) {
		for _, bad := range []string{"2026-03-01", "2026-03-01/2026-03-08", "start / end"} {
			issues := checkDateRange(spec, bad)
			require.Len(t, issues, 1, "value %q", bad)
			assert.Equal(t, "must be formatted YYYY-MM-DD / YYYY-MM-DD", issues[0].Message)
		}
	})
}

func TestCheckDimensions(t *testing.T) {
	spec := mustSpec(t, "product_dimensions")

	for _, good := range []string{"30x20x10 cm", "30.5x20x10.25 in"} {
		assert.Empty(t, checkDimensions(spec, good), "value %q", good)
	}
	for _, bad := range []string{"30x20 cm", "30x20x10", "30 x 20 x 10 cm"} {
		issues := checkDimensions(spec, bad)
		require.Len(t, issues, 1, "value %q", bad)
		assert.Equal(t, "must be formatted LxWxH with a unit, e.g. 30x20x10 cm", issues[0].Message)
	}
}

func TestCheckMeasure(t *testing.T) {
	spec := mustSpec(t, "shipping_weight")

	for _, good := range []string{"1.5 kg", "750 ml"} {
		assert.Empty(t, checkMeasure(spec, good), "value %q", good)
	}
	for _, bad := range []string{"1.5", "1.5kg", "kg 1.5"} {
		issues := checkMeasure(spec, bad)
		require.Len(t, issues, 1, "value %q", bad)
		assert.Equal(t, "must be a number with a unit, e.g. 1.5 kg", issues[0].Message)
	}
}

func TestCheckNumber(t *testing.T) {
	spec := mustSpec(t, "rating_count")

	for _, good := range []any{12, int64(3), 4.0, "18", "0"} {
		assert.Empty(t, checkNumber(spec, good), "value %v", good)
	}
	for _, bad := range []any{-1, "-2", "many", []string{"3"}} {
		issues := checkNumber(spec, bad)
		require.Len(t, issues, 1, "value %v", bad)
		assert.Equal(t, "must be a non-negative number", issues[0].Message)
	}
}

func TestCheckRating(t *testing.T) {
	spec := mustSpec(t, "product_rating")

	for _, good := range []any{"4.6", 5, "0", 2.5} {
		assert.Empty(t, checkRating(spec, good), "value %v", good)
	}
	for _, bad := range []any{"5.1", -0.1, "n/a"} {
		issues := checkRating(spec, bad)
		require.Len(t, issues, 1, "value %v", bad)
		assert.Equal(t, "must be between 0 and 5", issues[0].Message)
	}
}

func TestCheckText(t *testing.T) {
	spec := mustSpec(t, "title")

	t.Run("within limit", func(t *testing.T) {
		assert.Empty(t, checkText(spec, "Stovetop Kettle 1.5L"))
	})

	t.Run("limit counts runes not bytes", func(t *testing.T) {
		short := feedspec.FieldSpec{Name: "short_title", Type: feedspec.TypeText, MaxLen: 5}
		assert.Empty(t, checkText(short, "käßig"))
		issues := checkText(short, "käßige")
		require.Len(t, issues, 1)
		assert.Equal(t, "must not exceed 5 characters", issues[0].Message)
	})

	t.Run("numbers coerce", func(t *testing.T) {
		assert.Empty(t, checkText(spec, 42))
	})

	t.Run("composites rejected", func(t *testing.T) {
		issues := checkText(spec, []string{"a"})
		require.Len(t, issues, 1)
		assert.Equal(t, "must be text", issues[0].Message)
	})
}

func TestCheckAlphanumeric(t *testing.T) {
	spec := mustSpec(t, "mpn")

	for _, good := range []string{"KET-001", "A 1_b"} {
		assert.Empty(t, checkAlphanumeric(spec, good), "value %q", good)
	}

	issues := checkAlphanumeric(spec, "KET@001")
	require.Len(t, issues, 1)
	assert.Equal(t, "may only contain letters, digits, spaces, dashes and underscores", issues[0].Message)
}
