package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/feedlift/feedlift/pkg/core"
)

// UpsertShop inserts a shop or replaces its name and settings.
func (s *SQLStore) UpsertShop(ctx context.Context, shop *core.Shop) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	fields, err := marshalStringMap(shop.Settings.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode shop fields: %w", err)
	}
	mappings, err := marshalStringMap(shop.Settings.Mappings)
	if err != nil {
		return fmt.Errorf("failed to encode shop mappings: %w", err)
	}

	now := time.Now().UTC()
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = now
	}
	shop.UpdatedAt = now

	s.logger.Debug("upserting shop", slog.String("id", shop.ID))

	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO shops (id, name, fields, mappings, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     name = excluded.name,
		     fields = excluded.fields,
		     mappings = excluded.mappings,
		     updated_at = excluded.updated_at`),
		shop.ID, shop.Name, fields, mappings, shop.CreatedAt, shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert shop: %w", err)
	}

	return nil
}

// GetShop retrieves a shop by ID.
func (s *SQLStore) GetShop(ctx context.Context, id string) (*core.Shop, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	shop := &core.Shop{}
	var fields, mappings string

	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, name, fields, mappings, created_at, updated_at FROM shops WHERE id = ?`),
		id,
	).Scan(&shop.ID, &shop.Name, &fields, &mappings, &shop.CreatedAt, &shop.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Kind: "shop", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	if err := unmarshalStringMap(fields, &shop.Settings.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode shop fields: %w", err)
	}
	if err := unmarshalStringMap(mappings, &shop.Settings.Mappings); err != nil {
		return nil, fmt.Errorf("failed to decode shop mappings: %w", err)
	}

	return shop, nil
}

// ListShops retrieves all shops ordered by ID.
func (s *SQLStore) ListShops(ctx context.Context) ([]*core.Shop, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, fields, mappings, created_at, updated_at FROM shops ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var shops []*core.Shop
	for rows.Next() {
		shop := &core.Shop{}
		var fields, mappings string

		if err := rows.Scan(&shop.ID, &shop.Name, &fields, &mappings, &shop.CreatedAt, &shop.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		if err := unmarshalStringMap(fields, &shop.Settings.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode shop fields: %w", err)
		}
		if err := unmarshalStringMap(mappings, &shop.Settings.Mappings); err != nil {
			return nil, fmt.Errorf("failed to decode shop mappings: %w", err)
		}
		shops = append(shops, shop)
	}

	return shops, rows.Err()
}

// SetShopMapping sets or clears the shop-level extraction path for one
// attribute. A nil path removes the mapping.
func (s *SQLStore) SetShopMapping(ctx context.Context, shopID, attribute string, path *string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, s.rebind(`SELECT mappings FROM shops WHERE id = ?`), shopID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Kind: "shop", ID: shopID}
	}
	if err != nil {
		return fmt.Errorf("failed to get shop mappings: %w", err)
	}

	var mappings map[string]string
	if err := unmarshalStringMap(raw, &mappings); err != nil {
		return fmt.Errorf("failed to decode shop mappings: %w", err)
	}
	if mappings == nil {
		mappings = map[string]string{}
	}
	if path == nil {
		delete(mappings, attribute)
	} else {
		mappings[attribute] = *path
	}

	encoded, err := marshalStringMap(mappings)
	if err != nil {
		return fmt.Errorf("failed to encode shop mappings: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.rebind(`UPDATE shops SET mappings = ?, updated_at = ? WHERE id = ?`),
		encoded, time.Now().UTC(), shopID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shop mappings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func marshalStringMap(m map[string]string) (string, error) {
	if m == nil {
		m = map[string]string{}
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func unmarshalStringMap(raw string, dst *map[string]string) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
