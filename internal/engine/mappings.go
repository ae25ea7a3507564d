package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/feedlift/feedlift/internal/resolve"
)

// ============================================================================
// Mapping and override maintenance
// ============================================================================

// ClearAttributeOverrides removes every per-product override for one
// attribute across a shop and reprocesses the affected products.
func (e *Engine) ClearAttributeOverrides(ctx context.Context, shopID, attribute string) (*Report, error) {
	if _, err := e.specs.Lookup(attribute); err != nil {
		return nil, err
	}

	affected, err := e.store.ClearAttributeOverrides(ctx, shopID, attribute)
	if err != nil {
		return nil, fmt.Errorf("failed to clear overrides: %w", err)
	}

	e.logger.Info("cleared attribute overrides",
		slog.String("shop_id", shopID),
		slog.String("attribute", attribute),
		slog.Int("affected", len(affected)))

	if len(affected) == 0 {
		return &Report{ShopID: shopID}, nil
	}
	return e.reprocess(ctx, shopID, affected)
}

// UpdateShopMapping changes a shop's source path for one attribute and
// reprocesses the whole shop. A nil path removes the shop mapping so the
// attribute falls back to the registry default. Locked attributes cannot be
// remapped.
func (e *Engine) UpdateShopMapping(ctx context.Context, shopID, attribute string, path *string) (*Report, error) {
	spec, err := e.specs.Lookup(attribute)
	if err != nil {
		return nil, err
	}
	if !spec.AllowsMappingOverride() {
		return nil, fmt.Errorf("attribute %s is locked and cannot be remapped", attribute)
	}
	if err := e.checkMappingPath(path); err != nil {
		return nil, err
	}

	if err := e.store.SetShopMapping(ctx, shopID, attribute, path); err != nil {
		return nil, fmt.Errorf("failed to update shop mapping: %w", err)
	}

	e.logger.Info("updated shop mapping",
		slog.String("shop_id", shopID),
		slog.String("attribute", attribute))

	return e.ReprocessShop(ctx, shopID)
}

// ApplyShopMappings sets several shop mappings at once and reprocesses the
// shop a single time afterwards. Nil paths remove mappings. The whole batch
// is checked against the registry before anything is written.
func (e *Engine) ApplyShopMappings(ctx context.Context, shopID string, mappings map[string]*string) (*Report, error) {
	attributes := make([]string, 0, len(mappings))
	for attribute := range mappings {
		spec, err := e.specs.Lookup(attribute)
		if err != nil {
			return nil, err
		}
		if !spec.AllowsMappingOverride() {
			return nil, fmt.Errorf("attribute %s is locked and cannot be remapped", attribute)
		}
		if err := e.checkMappingPath(mappings[attribute]); err != nil {
			return nil, err
		}
		attributes = append(attributes, attribute)
	}
	sort.Strings(attributes)

	for _, attribute := range attributes {
		if err := e.store.SetShopMapping(ctx, shopID, attribute, mappings[attribute]); err != nil {
			return nil, fmt.Errorf("failed to update shop mapping for %s: %w", attribute, err)
		}
	}

	e.logger.Info("applied shop mappings",
		slog.String("shop_id", shopID),
		slog.Int("count", len(attributes)))

	return e.ReprocessShop(ctx, shopID)
}

// checkMappingPath rejects replacement paths whose explicit transform suffix
// names a transform the registry does not provide.
func (e *Engine) checkMappingPath(path *string) error {
	if path == nil {
		return nil
	}
	_, name := resolve.SplitTransform(*path)
	if name == "" {
		return nil
	}
	_, err := e.transforms.Lookup(name)
	return err
}
