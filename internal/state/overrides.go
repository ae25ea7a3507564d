package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/feedlift/feedlift/pkg/core"
)

// SetOverride inserts or replaces one per-product attribute override.
func (s *SQLStore) SetOverride(ctx context.Context, shopID, productID, attribute string, ov core.Override) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	exists, err := s.productExists(ctx, shopID, productID)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{Kind: "product", ID: productID}
	}

	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO overrides (shop_id, product_id, attribute, kind, value, path, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (shop_id, product_id, attribute) DO UPDATE SET
		     kind = excluded.kind,
		     value = excluded.value,
		     path = excluded.path,
		     updated_at = excluded.updated_at`),
		shopID, productID, attribute, ov.Kind.String(), ov.Value, ov.Path, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set override: %w", err)
	}

	return nil
}

// RemoveOverride deletes one attribute override.
func (s *SQLStore) RemoveOverride(ctx context.Context, shopID, productID, attribute string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.ExecContext(ctx, s.rebind(
		`DELETE FROM overrides WHERE shop_id = ? AND product_id = ? AND attribute = ?`),
		shopID, productID, attribute,
	)
	if err != nil {
		return fmt.Errorf("failed to remove override: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return &NotFoundError{Kind: "override", ID: attribute}
	}

	return nil
}

// ClearAttributeOverrides removes every override for one attribute across
// the shop and returns the ids of the affected products.
func (s *SQLStore) ClearAttributeOverrides(ctx context.Context, shopID, attribute string) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, s.rebind(
		`SELECT product_id FROM overrides WHERE shop_id = ? AND attribute = ? ORDER BY product_id`),
		shopID, attribute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list overridden products: %w", err)
	}

	var productIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		productIDs = append(productIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to read overridden products: %w", err)
	}
	rows.Close()

	_, err = tx.ExecContext(ctx, s.rebind(
		`DELETE FROM overrides WHERE shop_id = ? AND attribute = ?`),
		shopID, attribute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to clear overrides: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug("cleared attribute overrides",
		slog.String("shop", shopID),
		slog.String("attribute", attribute),
		slog.Int("products", len(productIDs)))

	return productIDs, nil
}

// loadOverrides reads every override of one product into an OverrideSet.
func (s *SQLStore) loadOverrides(ctx context.Context, shopID, productID string) (core.OverrideSet, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT attribute, kind, value, path FROM overrides WHERE shop_id = ? AND product_id = ?`),
		shopID, productID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var set core.OverrideSet
	for rows.Next() {
		var attribute, kind, value string
		var path sql.NullString
		if err := rows.Scan(&attribute, &kind, &value, &path); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}

		parsed, ok := core.ParseOverrideKind(kind)
		if !ok {
			return nil, fmt.Errorf("unknown override kind %q for attribute %s", kind, attribute)
		}
		ov := core.Override{Kind: parsed, Value: value}
		if path.Valid {
			ov.Path = &path.String
		}

		if set == nil {
			set = core.OverrideSet{}
		}
		set[attribute] = ov
	}

	return set, rows.Err()
}
