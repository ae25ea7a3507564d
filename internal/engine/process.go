package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/feedlift/feedlift/internal/resolve"
	"github.com/feedlift/feedlift/pkg/core"
	"github.com/feedlift/feedlift/pkg/validate"
)

// ============================================================================
// Single-product processing
// ============================================================================

// Preview resolves and validates a single product without persisting the
// snapshot. The CLI uses it to show what the feed would contain.
func (e *Engine) Preview(ctx context.Context, shopID, productID string) (*core.FeedSnapshot, error) {
	shop, err := e.store.GetShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}

	resolver := resolve.New(e.specs, shop, e.transforms, e.logger)
	validator := validate.New(e.specs, e.logger)

	snap, err := e.buildSnapshot(ctx, resolver, validator, shopID, productID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("product %s has no synced payload", productID)
	}
	return snap, nil
}

// ProcessProduct resolves, validates and persists the snapshot for a single
// product. A product without a synced payload is skipped and both return
// values are nil.
func (e *Engine) ProcessProduct(ctx context.Context, shopID, productID string) (*core.FeedSnapshot, error) {
	shop, err := e.store.GetShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}

	resolver := resolve.New(e.specs, shop, e.transforms, e.logger)
	validator := validate.New(e.specs, e.logger)

	snap, err := e.buildSnapshot(ctx, resolver, validator, shopID, productID)
	if err != nil || snap == nil {
		return nil, err
	}
	if err := e.store.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return snap, nil
}

// buildSnapshot loads one product and runs it through resolution and
// validation. It returns (nil, nil) when the product has no synced payload;
// callers decide whether that is a skip or an error.
func (e *Engine) buildSnapshot(ctx context.Context, resolver *resolve.Resolver, validator *validate.Validator, shopID, productID string) (*core.FeedSnapshot, error) {
	product, err := e.store.GetProduct(ctx, shopID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product.Raw == nil {
		e.logger.Warn("skipping product without synced payload",
			slog.String("shop_id", shopID),
			slog.String("product_id", productID))
		return nil, nil
	}

	values := resolver.ResolveAll(product.Raw, product.Overrides, product.Context)
	outcome := validator.ValidateFields(values, product.Context)

	return &core.FeedSnapshot{
		ShopID:    shopID,
		ProductID: productID,
		Values:    values,
		Valid:     outcome.Valid,
		Errors:    outcome.Errors,
		Warnings:  outcome.Warnings,
	}, nil
}
