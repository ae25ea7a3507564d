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

// SaveSnapshot stores the resolved and validated feed values for one
// product, replacing any previous snapshot of the same product.
func (s *SQLStore) SaveSnapshot(ctx context.Context, snap *core.FeedSnapshot) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if snap.ID == "" {
		snap.ID = generateID()
	}
	if snap.GeneratedAt.IsZero() {
		snap.GeneratedAt = time.Now().UTC()
	}

	data, err := marshalValues(snap.Values)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot values: %w", err)
	}
	errorsJSON, err := marshalIssues(snap.Errors)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot errors: %w", err)
	}
	warningsJSON, err := marshalIssues(snap.Warnings)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot warnings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO snapshots (id, shop_id, product_id, data, is_valid, errors, warnings, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (shop_id, product_id) DO UPDATE SET
		     id = excluded.id,
		     data = excluded.data,
		     is_valid = excluded.is_valid,
		     errors = excluded.errors,
		     warnings = excluded.warnings,
		     generated_at = excluded.generated_at`),
		snap.ID, snap.ShopID, snap.ProductID, data, snap.Valid, errorsJSON, warningsJSON, snap.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the current feed snapshot of one product.
func (s *SQLStore) GetSnapshot(ctx context.Context, shopID, productID string) (*core.FeedSnapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	snap := &core.FeedSnapshot{}
	var data, errorsJSON, warningsJSON string

	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, shop_id, product_id, data, is_valid, errors, warnings, generated_at
		 FROM snapshots WHERE shop_id = ? AND product_id = ?`),
		shopID, productID,
	).Scan(&snap.ID, &snap.ShopID, &snap.ProductID, &data, &snap.Valid, &errorsJSON, &warningsJSON, &snap.GeneratedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Kind: "snapshot", ID: productID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &snap.Values); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot values: %w", err)
	}
	if err := json.Unmarshal([]byte(errorsJSON), &snap.Errors); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot errors: %w", err)
	}
	if err := json.Unmarshal([]byte(warningsJSON), &snap.Warnings); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot warnings: %w", err)
	}

	return snap, nil
}

func marshalValues(values core.FieldValues) (string, error) {
	if values == nil {
		values = core.FieldValues{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func marshalIssues(issues []core.Issue) (string, error) {
	if issues == nil {
		issues = []core.Issue{}
	}
	encoded, err := json.Marshal(issues)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
