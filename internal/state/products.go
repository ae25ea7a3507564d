package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/feedlift/feedlift/pkg/core"
)

// UpsertProduct inserts a product or replaces its raw payload and context.
// Overrides are managed separately and survive the upsert.
func (s *SQLStore) UpsertProduct(ctx context.Context, product *core.Product) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	var raw any
	if product.Raw != nil {
		encoded, err := json.Marshal(product.Raw)
		if err != nil {
			return fmt.Errorf("failed to encode product payload: %w", err)
		}
		raw = string(encoded)
	}

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO products (shop_id, id, raw, is_variant, product_type, search_enabled, checkout_enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (shop_id, id) DO UPDATE SET
		     raw = excluded.raw,
		     is_variant = excluded.is_variant,
		     product_type = excluded.product_type,
		     search_enabled = excluded.search_enabled,
		     checkout_enabled = excluded.checkout_enabled,
		     updated_at = excluded.updated_at`),
		product.ShopID, product.ID, raw,
		product.Context.IsVariant, product.Context.ProductType,
		product.Context.SearchEnabled, product.Context.CheckoutEnabled,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

// GetProduct retrieves a product with its overrides.
func (s *SQLStore) GetProduct(ctx context.Context, shopID, id string) (*core.Product, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	product := &core.Product{}
	var raw sql.NullString

	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT shop_id, id, raw, is_variant, product_type, search_enabled, checkout_enabled, created_at, updated_at
		 FROM products WHERE shop_id = ? AND id = ?`),
		shopID, id,
	).Scan(&product.ShopID, &product.ID, &raw,
		&product.Context.IsVariant, &product.Context.ProductType,
		&product.Context.SearchEnabled, &product.Context.CheckoutEnabled,
		&product.CreatedAt, &product.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Kind: "product", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if raw.Valid {
		if err := json.Unmarshal([]byte(raw.String), &product.Raw); err != nil {
			return nil, fmt.Errorf("failed to decode product payload: %w", err)
		}
	}

	overrides, err := s.loadOverrides(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	product.Overrides = overrides

	return product, nil
}

// ListProductIDs retrieves the IDs of all products in a shop, ordered.
func (s *SQLStore) ListProductIDs(ctx context.Context, shopID string) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id FROM products WHERE shop_id = ? ORDER BY id`),
		shopID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// productExists reports whether a product row is present.
func (s *SQLStore) productExists(ctx context.Context, shopID, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT 1 FROM products WHERE shop_id = ? AND id = ?`),
		shopID, id,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check product: %w", err)
	}
	return true, nil
}
