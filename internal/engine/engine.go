// Package engine orchestrates feed generation: it loads shops and products
// from the store, resolves attribute values through the mapping layers,
// validates the result and persists feed snapshots. The engine is the only
// component that writes snapshots; the CLI and any future API surface go
// through it.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/feedlift/feedlift/internal/transform"
	"github.com/feedlift/feedlift/pkg/core"
	"github.com/feedlift/feedlift/pkg/feedspec"
)

// ============================================================================
// Configuration
// ============================================================================

// Config holds the engine configuration.
type Config struct {
	// Store persists shops, products, overrides and snapshots (required).
	Store core.Store

	// Specs is the attribute registry (optional, uses the built-in
	// marketplace registry if nil).
	Specs *feedspec.Registry

	// Transforms is the transform registry (optional, uses the built-in
	// transforms if nil).
	Transforms *transform.Registry

	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger

	// Workers caps how many products are processed concurrently during a
	// shop reprocess (optional, defaults to 1 for sequential processing).
	Workers int
}

// ============================================================================
// Engine
// ============================================================================

// Engine resolves and validates product feeds for shops.
type Engine struct {
	store      core.Store
	specs      *feedspec.Registry
	transforms *transform.Registry
	logger     *slog.Logger
	workers    int
}

// New creates an engine from the given configuration.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Specs == nil {
		cfg.Specs = feedspec.Default()
	}
	if cfg.Transforms == nil {
		cfg.Transforms = transform.Default(cfg.Logger)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	e := &Engine{
		store:      cfg.Store,
		specs:      cfg.Specs,
		transforms: cfg.Transforms,
		logger:     cfg.Logger,
		workers:    cfg.Workers,
	}
	e.checkTransforms()
	return e, nil
}

// checkTransforms warns about registry attributes that reference a transform
// the transform registry does not know. Resolution treats those as
// passthrough, so a typo in a spec surfaces here instead of silently
// producing raw values.
func (e *Engine) checkTransforms() {
	for _, spec := range e.specs.All() {
		if spec.Mapping == nil || spec.Mapping.Transform == "" {
			continue
		}
		if _, err := e.transforms.Lookup(spec.Mapping.Transform); err != nil {
			e.logger.Warn("attribute references unknown transform",
				slog.String("attribute", spec.Name),
				slog.String("transform", spec.Mapping.Transform))
		}
	}
}

// GetStore returns the engine's store for direct persistence operations.
func (e *Engine) GetStore() core.Store {
	return e.store
}

// Close releases the engine's resources, including the store.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
