package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"

	"github.com/feedlift/feedlift/internal/state"
	"github.com/feedlift/feedlift/pkg/core"
)

// importFile is a product dump: an optional shop header plus raw platform
// payloads. A bare JSON array of payloads is accepted too.
type importFile struct {
	Shop     map[string]any   `json:"shop"`
	Products []map[string]any `json:"products"`
}

// shopHeader is the decoded shop section of a dump.
type shopHeader struct {
	ID       string            `mapstructure:"id"`
	Name     string            `mapstructure:"name"`
	Fields   map[string]string `mapstructure:"fields"`
	Mappings map[string]string `mapstructure:"mappings"`
}

// productEnvelope carries the payload fields the importer reads for identity
// and feed toggles. Everything else stays in the raw payload.
type productEnvelope struct {
	ID                any    `mapstructure:"id"`
	SKU               string `mapstructure:"sku"`
	Type              string `mapstructure:"type"`
	Purchasable       bool   `mapstructure:"purchasable"`
	CatalogVisibility string `mapstructure:"catalog_visibility"`
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <shop-id> <file>",
		Short: "Import a product dump and generate snapshots",
		Long: `Import a JSON product dump into the store and reprocess the shop.

The file is either an object with an optional "shop" section and a "products"
array, or a bare array of raw platform payloads:

  {
    "shop": {"name": "Acme Outdoor", "fields": {"currency": "USD"}},
    "products": [ {"sku": "KET-001", "name": "Kettle", ...}, ... ]
  }

Product identity comes from "sku", falling back to "id". The feed toggles
come from "catalog_visibility" and "purchasable".`,
		Example: `  # Import a dump and build snapshots
  feedlift import shop-1 woo-products.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], args[1])
		},
	}
}

func runImport(cmd *cobra.Command, shopID, path string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	dump, err := readDump(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := upsertDumpShop(ctx, cmdCtx.Engine.GetStore(), shopID, dump.Shop); err != nil {
		return err
	}

	imported := 0
	for i, payload := range dump.Products {
		product, err := productFromPayload(shopID, payload)
		if err != nil {
			cmdCtx.Logger.Warn("skipping dump entry",
				"index", i, "error", err.Error())
			continue
		}
		if err := cmdCtx.Engine.GetStore().UpsertProduct(ctx, product); err != nil {
			return fmt.Errorf("failed to import product %s: %w", product.ID, err)
		}
		imported++
	}

	cmdCtx.Renderer.Printf("Imported %d of %d products into %s\n",
		imported, len(dump.Products), shopID)

	report, err := cmdCtx.Engine.ReprocessShop(ctx, shopID)
	if err != nil {
		return err
	}
	return renderReport(cmdCtx.Renderer, report)
}

// readDump parses a dump file in either accepted shape.
func readDump(path string) (*importFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var products []map[string]any
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("failed to parse dump file: %w", err)
		}
		return &importFile{Products: products}, nil
	}

	var dump importFile
	if err := json.Unmarshal(trimmed, &dump); err != nil {
		return nil, fmt.Errorf("failed to parse dump file: %w", err)
	}
	return &dump, nil
}

// upsertDumpShop applies the dump's shop section, or creates a bare shop when
// the dump has none and the shop does not exist yet.
func upsertDumpShop(ctx context.Context, store core.Store, shopID string, raw map[string]any) error {
	if raw == nil {
		_, err := store.GetShop(ctx, shopID)
		var notFound *state.NotFoundError
		if errors.As(err, &notFound) {
			return store.UpsertShop(ctx, &core.Shop{ID: shopID, Name: shopID})
		}
		return err
	}

	var header shopHeader
	if err := mapstructure.WeakDecode(raw, &header); err != nil {
		return fmt.Errorf("failed to decode shop section: %w", err)
	}
	if header.ID != "" && header.ID != shopID {
		return fmt.Errorf("dump is for shop %s, not %s", header.ID, shopID)
	}

	name := header.Name
	if name == "" {
		name = shopID
	}
	return store.UpsertShop(ctx, &core.Shop{
		ID:   shopID,
		Name: name,
		Settings: core.ShopSettings{
			Fields:   header.Fields,
			Mappings: header.Mappings,
		},
	})
}

// productFromPayload builds a store product from one raw dump entry.
func productFromPayload(shopID string, payload map[string]any) (*core.Product, error) {
	var env productEnvelope
	if err := mapstructure.WeakDecode(payload, &env); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	id := env.SKU
	if id == "" {
		id = formatDumpID(env.ID)
	}
	if id == "" {
		return nil, fmt.Errorf("payload has neither sku nor id")
	}

	productType := env.Type
	if productType == "" {
		productType = "simple"
	}

	return &core.Product{
		ShopID: shopID,
		ID:     id,
		Raw:    payload,
		Context: core.ProductContext{
			SearchEnabled:   searchEnabledFor(env.CatalogVisibility),
			CheckoutEnabled: env.Purchasable,
			IsVariant:       productType == "variation",
			ProductType:     productType,
		},
	}, nil
}

// formatDumpID renders a payload id (usually a JSON number) as a product id.
func formatDumpID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", id)
	}
}

// searchEnabledFor maps the platform's catalog visibility to the search
// toggle. Hidden and catalog-only products stay out of search feeds.
func searchEnabledFor(visibility string) bool {
	switch visibility {
	case "hidden", "catalog":
		return false
	default:
		return true
	}
}
