// Package commands tests for CLI command creation.
package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	err := cmd.Execute()
	assert.NoError(t, err)

	output := buf.String()
	for _, want := range []string{"Feedlift v1.2.3", "feed"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestNewResolveCommand(t *testing.T) {
	cmd := NewResolveCommand()

	assert.Equal(t, "resolve <shop-id> <product-id>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	assert.Equal(t, "validate <shop-id> <product-id>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check <attribute> <value>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewFieldsCommand(t *testing.T) {
	cmd := NewFieldsCommand()

	assert.Equal(t, "fields", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("category"), "flag category should exist")
}

func TestNewReprocessCommand(t *testing.T) {
	cmd := NewReprocessCommand()

	assert.Equal(t, "reprocess <shop-id>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("products"), "flag products should exist")
}

func TestNewImportCommand(t *testing.T) {
	cmd := NewImportCommand()

	assert.Equal(t, "import <shop-id> <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should document the dump format")
}

func TestNewShopsCommand(t *testing.T) {
	cmd := NewShopsCommand()

	assert.Equal(t, "shops", cmd.Use)
	subcommands := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		subcommands = append(subcommands, sub.Name())
	}
	assert.Contains(t, subcommands, "list")
	assert.Contains(t, subcommands, "set-field")
}

func TestNewMappingCommand(t *testing.T) {
	cmd := NewMappingCommand()

	assert.Equal(t, "mapping", cmd.Use)
	subcommands := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		subcommands = append(subcommands, sub.Name())
	}
	assert.Contains(t, subcommands, "set")
	assert.Contains(t, subcommands, "clear")
}

func TestNewOverridesCommand(t *testing.T) {
	cmd := NewOverridesCommand()

	assert.Equal(t, "overrides", cmd.Use)
	subcommands := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		subcommands = append(subcommands, sub.Name())
	}
	assert.Contains(t, subcommands, "clear")
}

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	assert.Equal(t, "watch <shop-id> <mappings-file>", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should document the file format")
}

func TestSearchEnabledFor(t *testing.T) {
	tests := []struct {
		visibility string
		want       bool
	}{
		{visibility: "", want: true},
		{visibility: "visible", want: true},
		{visibility: "search", want: true},
		{visibility: "catalog", want: false},
		{visibility: "hidden", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, searchEnabledFor(tt.visibility), "visibility %q", tt.visibility)
	}
}

func TestFormatDumpID(t *testing.T) {
	assert.Equal(t, "", formatDumpID(nil))
	assert.Equal(t, "KET-001", formatDumpID("KET-001"))
	assert.Equal(t, "812", formatDumpID(float64(812)))
}

func TestProductFromPayload(t *testing.T) {
	product, err := productFromPayload("shop-1", map[string]any{
		"id":                 float64(812),
		"sku":                "KET-001",
		"type":               "variation",
		"purchasable":        true,
		"catalog_visibility": "hidden",
		"name":               "Stovetop Kettle",
	})
	assert.NoError(t, err)

	assert.Equal(t, "KET-001", product.ID)
	assert.Equal(t, "shop-1", product.ShopID)
	assert.True(t, product.Context.IsVariant)
	assert.True(t, product.Context.CheckoutEnabled)
	assert.False(t, product.Context.SearchEnabled)
	assert.Equal(t, "variation", product.Context.ProductType)
	assert.Equal(t, "Stovetop Kettle", product.Raw["name"])
}

func TestProductFromPayloadWithoutIdentity(t *testing.T) {
	_, err := productFromPayload("shop-1", map[string]any{"name": "Mystery"})
	assert.Error(t, err)
}

func TestFieldsCommandListsCategory(t *testing.T) {
	cmd := NewFieldsCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--category", "pricing"})

	err := cmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "sale_price")
	assert.Contains(t, buf.String(), "format_price")
	assert.NotContains(t, buf.String(), "image_link")
}

func TestFieldsCommandUnknownCategory(t *testing.T) {
	cmd := NewFieldsCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--category", "plumbing"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestMappingsFileParse(t *testing.T) {
	doc := mappingsFile{}
	data := []byte("mappings:\n  brand: meta_data._brand\n  mpn: null\n")
	require.NoError(t, yaml.Unmarshal(data, &doc))

	require.NotNil(t, doc.Mappings["brand"])
	assert.Equal(t, "meta_data._brand", *doc.Mappings["brand"])

	// A null path must survive as an explicit clear, not vanish.
	path, ok := doc.Mappings["mpn"]
	assert.True(t, ok)
	assert.Nil(t, path)
}
