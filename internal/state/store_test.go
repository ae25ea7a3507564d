package state

import (
	"context"
	"errors"
	"testing"

	"github.com/feedlift/feedlift/pkg/core"
)

func setupTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store := NewSQLiteStore(nil)
	if err := store.Open(":memory:"); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func seedShop(t *testing.T, store *SQLStore, id string) *core.Shop {
	t.Helper()
	shop := &core.Shop{
		ID:   id,
		Name: "Acme Outdoor",
		Settings: core.ShopSettings{
			Fields:   map[string]string{"currency": "USD", "seller_name": "Acme Outdoor"},
			Mappings: map[string]string{},
		},
	}
	if err := store.UpsertShop(context.Background(), shop); err != nil {
		t.Fatalf("failed to upsert shop: %v", err)
	}
	return shop
}

func seedProduct(t *testing.T, store *SQLStore, shopID, id string) *core.Product {
	t.Helper()
	product := &core.Product{
		ShopID:  shopID,
		ID:      id,
		Raw:     core.Item{"sku": id, "regular_price": "39.99"},
		Context: core.ProductContext{SearchEnabled: true, ProductType: "simple"},
	}
	if err := store.UpsertProduct(context.Background(), product); err != nil {
		t.Fatalf("failed to upsert product: %v", err)
	}
	return product
}

func requireNotFound(t *testing.T, err error, kind string) {
	t.Helper()
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Kind != kind {
		t.Errorf("expected kind %q, got %q", kind, notFound.Kind)
	}
}

func TestSQLStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore(nil)

	if err := store.Open(":memory:"); err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
}

func TestSQLStore_Migrate(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	tables := []string{"shops", "products", "overrides", "snapshots"}
	for _, table := range tables {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		if err != nil {
			t.Errorf("table %s does not exist: %v", table, err)
		} else {
			rows.Close()
		}
	}

	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("failed to get migration version: %v", err)
	}
	if version == 0 {
		t.Error("migration version should not be 0")
	}
}

func TestSQLStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)
	ctx := context.Background()

	if err := store.UpsertShop(ctx, &core.Shop{ID: "s"}); err == nil {
		t.Error("expected error for unopened store")
	}
	if _, err := store.GetProduct(ctx, "s", "p"); err == nil {
		t.Error("expected error for unopened store")
	}
}

// --- Shop tests ---

func TestSQLStore_ShopLifecycle(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, store *SQLStore) *core.Shop
		operation func(t *testing.T, store *SQLStore, shop *core.Shop)
		verify    func(t *testing.T, store *SQLStore, shop *core.Shop)
	}{
		{
			name: "upsert and get round-trip",
			setup: func(t *testing.T, store *SQLStore) *core.Shop {
				return seedShop(t, store, "shop-1")
			},
			verify: func(t *testing.T, store *SQLStore, shop *core.Shop) {
				retrieved, err := store.GetShop(context.Background(), "shop-1")
				if err != nil {
					t.Fatalf("failed to get shop: %v", err)
				}
				if retrieved.Name != "Acme Outdoor" {
					t.Errorf("expected name 'Acme Outdoor', got %q", retrieved.Name)
				}
				if retrieved.Settings.Field("currency") != "USD" {
					t.Errorf("expected currency 'USD', got %q", retrieved.Settings.Field("currency"))
				}
				if retrieved.CreatedAt.IsZero() || retrieved.UpdatedAt.IsZero() {
					t.Error("timestamps should be set")
				}
			},
		},
		{
			name: "upsert replaces settings",
			setup: func(t *testing.T, store *SQLStore) *core.Shop {
				return seedShop(t, store, "shop-1")
			},
			operation: func(t *testing.T, store *SQLStore, shop *core.Shop) {
				shop.Settings.Fields["currency"] = "EUR"
				if err := store.UpsertShop(context.Background(), shop); err != nil {
					t.Fatalf("failed to upsert shop: %v", err)
				}
			},
			verify: func(t *testing.T, store *SQLStore, shop *core.Shop) {
				retrieved, _ := store.GetShop(context.Background(), "shop-1")
				if retrieved.Settings.Field("currency") != "EUR" {
					t.Errorf("expected currency 'EUR', got %q", retrieved.Settings.Field("currency"))
				}
			},
		},
		{
			name: "get shop not found",
			operation: func(t *testing.T, store *SQLStore, shop *core.Shop) {
				_, err := store.GetShop(context.Background(), "nonexistent")
				requireNotFound(t, err, "shop")
			},
		},
		{
			name: "list shops ordered",
			setup: func(t *testing.T, store *SQLStore) *core.Shop {
				seedShop(t, store, "shop-b")
				seedShop(t, store, "shop-a")
				return nil
			},
			verify: func(t *testing.T, store *SQLStore, shop *core.Shop) {
				shops, err := store.ListShops(context.Background())
				if err != nil {
					t.Fatalf("failed to list shops: %v", err)
				}
				if len(shops) != 2 {
					t.Fatalf("expected 2 shops, got %d", len(shops))
				}
				if shops[0].ID != "shop-a" || shops[1].ID != "shop-b" {
					t.Errorf("expected shops ordered by id, got %s, %s", shops[0].ID, shops[1].ID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)
			defer store.Close()

			var shop *core.Shop
			if tt.setup != nil {
				shop = tt.setup(t, store)
			}
			if tt.operation != nil {
				tt.operation(t, store, shop)
			}
			if tt.verify != nil {
				tt.verify(t, store, shop)
			}
		})
	}
}

func TestSQLStore_SetShopMapping(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	seedShop(t, store, "shop-1")

	path := "meta_data._brand"
	if err := store.SetShopMapping(ctx, "shop-1", "brand", &path); err != nil {
		t.Fatalf("failed to set shop mapping: %v", err)
	}

	shop, _ := store.GetShop(ctx, "shop-1")
	if got, ok := shop.Settings.Mapping("brand"); !ok || got != "meta_data._brand" {
		t.Errorf("expected mapping 'meta_data._brand', got %q (present=%v)", got, ok)
	}

	// A nil path removes the mapping.
	if err := store.SetShopMapping(ctx, "shop-1", "brand", nil); err != nil {
		t.Fatalf("failed to clear shop mapping: %v", err)
	}
	shop, _ = store.GetShop(ctx, "shop-1")
	if _, ok := shop.Settings.Mapping("brand"); ok {
		t.Error("expected mapping to be removed")
	}

	err := store.SetShopMapping(ctx, "nonexistent", "brand", &path)
	requireNotFound(t, err, "shop")
}

// --- Product tests ---

func TestSQLStore_ProductLifecycle(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, store *SQLStore) *core.Product
		operation func(t *testing.T, store *SQLStore, product *core.Product)
		verify    func(t *testing.T, store *SQLStore, product *core.Product)
	}{
		{
			name: "upsert and get round-trip",
			setup: func(t *testing.T, store *SQLStore) *core.Product {
				seedShop(t, store, "shop-1")
				product := &core.Product{
					ShopID: "shop-1",
					ID:     "KET-001",
					Raw: core.Item{
						"sku":  "KET-001",
						"name": "Stovetop Kettle 1.5L",
					},
					Context: core.ProductContext{
						SearchEnabled:   true,
						CheckoutEnabled: true,
						IsVariant:       true,
						ProductType:     "variation",
					},
				}
				if err := store.UpsertProduct(context.Background(), product); err != nil {
					t.Fatalf("failed to upsert product: %v", err)
				}
				return product
			},
			verify: func(t *testing.T, store *SQLStore, product *core.Product) {
				retrieved, err := store.GetProduct(context.Background(), "shop-1", "KET-001")
				if err != nil {
					t.Fatalf("failed to get product: %v", err)
				}
				if retrieved.Raw["name"] != "Stovetop Kettle 1.5L" {
					t.Errorf("expected payload name, got %v", retrieved.Raw["name"])
				}
				if !retrieved.Context.CheckoutEnabled || !retrieved.Context.IsVariant {
					t.Errorf("expected context flags to round-trip, got %+v", retrieved.Context)
				}
				if retrieved.Context.ProductType != "variation" {
					t.Errorf("expected product type 'variation', got %q", retrieved.Context.ProductType)
				}
			},
		},
		{
			name: "nil payload stays nil",
			setup: func(t *testing.T, store *SQLStore) *core.Product {
				seedShop(t, store, "shop-1")
				product := &core.Product{ShopID: "shop-1", ID: "unsynced"}
				if err := store.UpsertProduct(context.Background(), product); err != nil {
					t.Fatalf("failed to upsert product: %v", err)
				}
				return product
			},
			verify: func(t *testing.T, store *SQLStore, product *core.Product) {
				retrieved, err := store.GetProduct(context.Background(), "shop-1", "unsynced")
				if err != nil {
					t.Fatalf("failed to get product: %v", err)
				}
				if retrieved.Raw != nil {
					t.Errorf("expected nil payload, got %v", retrieved.Raw)
				}
			},
		},
		{
			name: "upsert replaces payload",
			setup: func(t *testing.T, store *SQLStore) *core.Product {
				seedShop(t, store, "shop-1")
				return seedProduct(t, store, "shop-1", "KET-001")
			},
			operation: func(t *testing.T, store *SQLStore, product *core.Product) {
				product.Raw = core.Item{"sku": "KET-001", "regular_price": "44.99"}
				if err := store.UpsertProduct(context.Background(), product); err != nil {
					t.Fatalf("failed to upsert product: %v", err)
				}
			},
			verify: func(t *testing.T, store *SQLStore, product *core.Product) {
				retrieved, _ := store.GetProduct(context.Background(), "shop-1", "KET-001")
				if retrieved.Raw["regular_price"] != "44.99" {
					t.Errorf("expected replaced payload, got %v", retrieved.Raw["regular_price"])
				}
			},
		},
		{
			name: "get product not found",
			setup: func(t *testing.T, store *SQLStore) *core.Product {
				seedShop(t, store, "shop-1")
				return nil
			},
			operation: func(t *testing.T, store *SQLStore, product *core.Product) {
				_, err := store.GetProduct(context.Background(), "shop-1", "nonexistent")
				requireNotFound(t, err, "product")
			},
		},
		{
			name: "list product ids ordered",
			setup: func(t *testing.T, store *SQLStore) *core.Product {
				seedShop(t, store, "shop-1")
				seedShop(t, store, "shop-2")
				seedProduct(t, store, "shop-1", "KET-002")
				seedProduct(t, store, "shop-1", "KET-001")
				seedProduct(t, store, "shop-2", "OTHER-1")
				return nil
			},
			verify: func(t *testing.T, store *SQLStore, product *core.Product) {
				ids, err := store.ListProductIDs(context.Background(), "shop-1")
				if err != nil {
					t.Fatalf("failed to list product ids: %v", err)
				}
				if len(ids) != 2 || ids[0] != "KET-001" || ids[1] != "KET-002" {
					t.Errorf("expected [KET-001 KET-002], got %v", ids)
				}
			},
		},
		{
			name: "upsert for unknown shop fails",
			operation: func(t *testing.T, store *SQLStore, product *core.Product) {
				err := store.UpsertProduct(context.Background(), &core.Product{ShopID: "ghost", ID: "p"})
				if err == nil {
					t.Error("expected foreign key error for unknown shop")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)
			defer store.Close()

			var product *core.Product
			if tt.setup != nil {
				product = tt.setup(t, store)
			}
			if tt.operation != nil {
				tt.operation(t, store, product)
			}
			if tt.verify != nil {
				tt.verify(t, store, product)
			}
		})
	}
}

// --- Override tests ---

func TestSQLStore_Overrides(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name      string
		operation func(t *testing.T, store *SQLStore)
		verify    func(t *testing.T, store *SQLStore)
	}{
		{
			name: "literal override round-trip",
			operation: func(t *testing.T, store *SQLStore) {
				ov := core.Override{Kind: core.OverrideLiteral, Value: "Retro Kettle"}
				if err := store.SetOverride(context.Background(), "shop-1", "KET-001", "title", ov); err != nil {
					t.Fatalf("failed to set override: %v", err)
				}
			},
			verify: func(t *testing.T, store *SQLStore) {
				product, _ := store.GetProduct(context.Background(), "shop-1", "KET-001")
				ov, ok := product.Overrides["title"]
				if !ok {
					t.Fatal("expected title override")
				}
				if ov.Kind != core.OverrideLiteral || ov.Value != "Retro Kettle" {
					t.Errorf("unexpected override %+v", ov)
				}
			},
		},
		{
			name: "mapping override with path",
			operation: func(t *testing.T, store *SQLStore) {
				ov := core.Override{Kind: core.OverrideMapping, Path: strPtr("meta_data._msrp")}
				if err := store.SetOverride(context.Background(), "shop-1", "KET-001", "price", ov); err != nil {
					t.Fatalf("failed to set override: %v", err)
				}
			},
			verify: func(t *testing.T, store *SQLStore) {
				product, _ := store.GetProduct(context.Background(), "shop-1", "KET-001")
				ov := product.Overrides["price"]
				if ov.Path == nil || *ov.Path != "meta_data._msrp" {
					t.Errorf("expected path 'meta_data._msrp', got %v", ov.Path)
				}
				if ov.Excludes() {
					t.Error("override with path should not exclude")
				}
			},
		},
		{
			name: "mapping override with nil path excludes",
			operation: func(t *testing.T, store *SQLStore) {
				ov := core.Override{Kind: core.OverrideMapping}
				if err := store.SetOverride(context.Background(), "shop-1", "KET-001", "description", ov); err != nil {
					t.Fatalf("failed to set override: %v", err)
				}
			},
			verify: func(t *testing.T, store *SQLStore) {
				product, _ := store.GetProduct(context.Background(), "shop-1", "KET-001")
				ov := product.Overrides["description"]
				if !ov.Excludes() {
					t.Errorf("expected exclusion, got %+v", ov)
				}
			},
		},
		{
			name: "set replaces existing override",
			operation: func(t *testing.T, store *SQLStore) {
				ctx := context.Background()
				first := core.Override{Kind: core.OverrideLiteral, Value: "old"}
				if err := store.SetOverride(ctx, "shop-1", "KET-001", "title", first); err != nil {
					t.Fatalf("failed to set override: %v", err)
				}
				second := core.Override{Kind: core.OverrideMapping, Path: strPtr("meta_data._title")}
				if err := store.SetOverride(ctx, "shop-1", "KET-001", "title", second); err != nil {
					t.Fatalf("failed to replace override: %v", err)
				}
			},
			verify: func(t *testing.T, store *SQLStore) {
				product, _ := store.GetProduct(context.Background(), "shop-1", "KET-001")
				ov := product.Overrides["title"]
				if ov.Kind != core.OverrideMapping {
					t.Errorf("expected mapping kind, got %v", ov.Kind)
				}
			},
		},
		{
			name: "remove override",
			operation: func(t *testing.T, store *SQLStore) {
				ctx := context.Background()
				ov := core.Override{Kind: core.OverrideLiteral, Value: "x"}
				if err := store.SetOverride(ctx, "shop-1", "KET-001", "title", ov); err != nil {
					t.Fatalf("failed to set override: %v", err)
				}
				if err := store.RemoveOverride(ctx, "shop-1", "KET-001", "title"); err != nil {
					t.Fatalf("failed to remove override: %v", err)
				}
			},
			verify: func(t *testing.T, store *SQLStore) {
				product, _ := store.GetProduct(context.Background(), "shop-1", "KET-001")
				if len(product.Overrides) != 0 {
					t.Errorf("expected no overrides, got %v", product.Overrides)
				}
			},
		},
		{
			name: "remove missing override",
			operation: func(t *testing.T, store *SQLStore) {
				err := store.RemoveOverride(context.Background(), "shop-1", "KET-001", "title")
				requireNotFound(t, err, "override")
			},
		},
		{
			name: "set override for missing product",
			operation: func(t *testing.T, store *SQLStore) {
				ov := core.Override{Kind: core.OverrideLiteral, Value: "x"}
				err := store.SetOverride(context.Background(), "shop-1", "ghost", "title", ov)
				requireNotFound(t, err, "product")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)
			defer store.Close()

			seedShop(t, store, "shop-1")
			seedProduct(t, store, "shop-1", "KET-001")

			if tt.operation != nil {
				tt.operation(t, store)
			}
			if tt.verify != nil {
				tt.verify(t, store)
			}
		})
	}
}

func TestSQLStore_ClearAttributeOverrides(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	seedShop(t, store, "shop-1")
	seedProduct(t, store, "shop-1", "KET-001")
	seedProduct(t, store, "shop-1", "KET-002")
	seedProduct(t, store, "shop-1", "KET-003")

	literal := core.Override{Kind: core.OverrideLiteral, Value: "x"}
	for _, id := range []string{"KET-002", "KET-001"} {
		if err := store.SetOverride(ctx, "shop-1", id, "brand", literal); err != nil {
			t.Fatalf("failed to set override: %v", err)
		}
	}
	if err := store.SetOverride(ctx, "shop-1", "KET-003", "title", literal); err != nil {
		t.Fatalf("failed to set override: %v", err)
	}

	affected, err := store.ClearAttributeOverrides(ctx, "shop-1", "brand")
	if err != nil {
		t.Fatalf("failed to clear overrides: %v", err)
	}
	if len(affected) != 2 || affected[0] != "KET-001" || affected[1] != "KET-002" {
		t.Errorf("expected [KET-001 KET-002], got %v", affected)
	}

	// The title override on KET-003 must survive.
	product, _ := store.GetProduct(ctx, "shop-1", "KET-003")
	if _, ok := product.Overrides["title"]; !ok {
		t.Error("expected unrelated override to survive")
	}
	product, _ = store.GetProduct(ctx, "shop-1", "KET-001")
	if len(product.Overrides) != 0 {
		t.Errorf("expected brand override to be cleared, got %v", product.Overrides)
	}

	affected, err = store.ClearAttributeOverrides(ctx, "shop-1", "brand")
	if err != nil {
		t.Fatalf("failed to clear with nothing to do: %v", err)
	}
	if len(affected) != 0 {
		t.Errorf("expected no affected products, got %v", affected)
	}
}

// --- Snapshot tests ---

func TestSQLStore_Snapshots(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	seedShop(t, store, "shop-1")
	seedProduct(t, store, "shop-1", "KET-001")

	snap := &core.FeedSnapshot{
		ShopID:    "shop-1",
		ProductID: "KET-001",
		Values:    core.FieldValues{"title": "Stovetop Kettle 1.5L", "price": "39.99 USD"},
		Valid:     false,
		Errors:    []core.Issue{core.ErrorIssue("gtin", "must be 8-14 digits")},
		Warnings:  []core.Issue{core.WarningIssue("brand", "recommended attribute is missing")},
	}
	if err := store.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}
	if snap.ID == "" {
		t.Error("snapshot ID should be generated")
	}
	if snap.GeneratedAt.IsZero() {
		t.Error("generated_at should be set")
	}

	retrieved, err := store.GetSnapshot(ctx, "shop-1", "KET-001")
	if err != nil {
		t.Fatalf("failed to get snapshot: %v", err)
	}
	if retrieved.Values["price"] != "39.99 USD" {
		t.Errorf("expected price value, got %v", retrieved.Values["price"])
	}
	if retrieved.Valid {
		t.Error("expected invalid snapshot")
	}
	if len(retrieved.Errors) != 1 || retrieved.Errors[0].Field != "gtin" {
		t.Errorf("expected gtin error, got %v", retrieved.Errors)
	}
	if len(retrieved.Warnings) != 1 || retrieved.Warnings[0].Severity != core.SeverityWarning {
		t.Errorf("expected brand warning, got %v", retrieved.Warnings)
	}

	// A second save replaces the snapshot instead of adding a row.
	replacement := &core.FeedSnapshot{
		ShopID:    "shop-1",
		ProductID: "KET-001",
		Values:    core.FieldValues{"title": "Stovetop Kettle 1.5L", "price": "39.99 USD", "gtin": "04012345678901"},
		Valid:     true,
	}
	if err := store.SaveSnapshot(ctx, replacement); err != nil {
		t.Fatalf("failed to replace snapshot: %v", err)
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count); err != nil {
		t.Fatalf("failed to count snapshots: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 snapshot row, got %d", count)
	}

	retrieved, _ = store.GetSnapshot(ctx, "shop-1", "KET-001")
	if !retrieved.Valid {
		t.Error("expected replacement to be valid")
	}
	if retrieved.ID != replacement.ID {
		t.Errorf("expected latest snapshot id %q, got %q", replacement.ID, retrieved.ID)
	}
	if len(retrieved.Errors) != 0 {
		t.Errorf("expected no errors after replacement, got %v", retrieved.Errors)
	}

	_, err = store.GetSnapshot(ctx, "shop-1", "nonexistent")
	requireNotFound(t, err, "snapshot")
}

func TestRebindPostgres(t *testing.T) {
	sqlite := NewSQLiteStore(nil)
	if got := sqlite.rebind(`SELECT 1 FROM shops WHERE id = ?`); got != `SELECT 1 FROM shops WHERE id = ?` {
		t.Errorf("sqlite rebind should be a no-op, got %q", got)
	}

	postgres := NewPostgresStore(nil)
	got := postgres.rebind(`UPDATE shops SET name = ?, updated_at = ? WHERE id = ?`)
	want := `UPDATE shops SET name = $1, updated_at = $2 WHERE id = $3`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
