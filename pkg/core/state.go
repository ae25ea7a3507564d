package core

import "context"

// Store defines the persistence interface for shops, products, overrides and
// feed snapshots. internal/state implements it for SQLite and Postgres.
type Store interface {
	// Shop operations
	UpsertShop(ctx context.Context, shop *Shop) error
	GetShop(ctx context.Context, id string) (*Shop, error)
	ListShops(ctx context.Context) ([]*Shop, error)
	SetShopMapping(ctx context.Context, shopID, attribute string, path *string) error

	// Product operations
	UpsertProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, shopID, id string) (*Product, error)
	ListProductIDs(ctx context.Context, shopID string) ([]string, error)

	// Override operations
	SetOverride(ctx context.Context, shopID, productID, attribute string, ov Override) error
	RemoveOverride(ctx context.Context, shopID, productID, attribute string) error
	// ClearAttributeOverrides removes every override for one attribute across
	// the shop and returns the ids of the affected products.
	ClearAttributeOverrides(ctx context.Context, shopID, attribute string) ([]string, error)

	// Snapshot operations
	SaveSnapshot(ctx context.Context, snap *FeedSnapshot) error
	GetSnapshot(ctx context.Context, shopID, productID string) (*FeedSnapshot, error)

	Close() error
}
