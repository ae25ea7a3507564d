// Package resolve implements layered field resolution. For each attribute
// the layers are consulted in a fixed order and the first one that produces
// a value wins: toggle columns, literal override, mapping override,
// shop-level mapping, registry default.
package resolve

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/feedlift/feedlift/internal/transform"
	"github.com/feedlift/feedlift/pkg/core"
	"github.com/feedlift/feedlift/pkg/extract"
	"github.com/feedlift/feedlift/pkg/feedspec"
)

// Resolver resolves attribute values for one shop. Build it once per batch;
// it holds no per-product state and is safe for concurrent use.
type Resolver struct {
	specs      []feedspec.FieldSpec
	shop       *core.Shop
	transforms *transform.Registry
	logger     *slog.Logger
}

// New creates a resolver bound to a shop. The shop must be non-nil; the
// registry and transforms are shared and never mutated.
func New(specs *feedspec.Registry, shop *core.Shop, transforms *transform.Registry, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		specs:      specs.All(),
		shop:       shop,
		transforms: transforms,
		logger:     logger,
	}
}

// ResolveAll resolves every registry attribute for one product, keeping only
// attributes that produced a value. Registry order is preserved by the
// caller iterating specs, not by map order.
func (r *Resolver) ResolveAll(item core.Item, overrides core.OverrideSet, pctx core.ProductContext) core.FieldValues {
	values := make(core.FieldValues, len(r.specs))
	for _, spec := range r.specs {
		value := r.Resolve(spec, item, overrides, pctx)
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		values[spec.Name] = value
	}
	return values
}

// Resolve resolves a single attribute through the precedence layers.
func (r *Resolver) Resolve(spec feedspec.FieldSpec, item core.Item, overrides core.OverrideSet, pctx core.ProductContext) any {
	ov, hasOverride := overrides[spec.Name]

	// Literal overrides are verbatim: no extraction, no transform. On a
	// locked attribute outside the allow-list they are rejected and the
	// chain continues.
	if hasOverride && ov.Kind == core.OverrideLiteral {
		if spec.AllowsLiteralOverride() {
			return ov.Value
		}
		r.logger.Warn("literal override rejected on locked attribute",
			"shop_id", r.shop.ID, "attribute", spec.Name)
	}

	// The feed toggles are column-sourced; extraction layers never apply.
	if feedspec.IsToggle(spec.Name) {
		return toggleValue(spec.Name, pctx)
	}

	if hasOverride && ov.Kind == core.OverrideMapping {
		if spec.AllowsMappingOverride() {
			if ov.Path == nil {
				r.logger.Debug("attribute excluded by mapping override",
					"shop_id", r.shop.ID, "attribute", spec.Name)
				return nil
			}
			return r.resolveMapped(spec, *ov.Path, item)
		}
		r.logger.Warn("mapping override rejected on locked attribute",
			"shop_id", r.shop.ID, "attribute", spec.Name)
	}

	if path, ok := r.shop.Settings.Mapping(spec.Name); ok {
		if spec.AllowsMappingOverride() {
			return r.resolveMapped(spec, path, item)
		}
		r.logger.Warn("shop mapping rejected on locked attribute",
			"shop_id", r.shop.ID, "attribute", spec.Name)
	}

	return r.resolveDefault(spec, item)
}

// resolveMapped resolves a replacement path from a mapping override or a
// shop-level mapping. Shop-scoped paths read settings directly and apply no
// inherited transform; anything else replaces only the primary path of the
// registry default, inheriting its fallback and transform. A "path | name"
// suffix names an explicit transform instead of the inherited one.
func (r *Resolver) resolveMapped(spec feedspec.FieldSpec, raw string, item core.Item) any {
	path, explicit := SplitTransform(raw)
	if extract.IsShopPath(path) {
		value := extract.Value(nil, &r.shop.Settings, path)
		if explicit != "" {
			value = r.transforms.Apply(explicit, value, item, &r.shop.Settings)
		}
		return value
	}
	mapping := feedspec.Mapping{Path: path, Transform: explicit}
	if def := spec.Mapping; def != nil {
		mapping.Fallback = def.Fallback
		if explicit == "" {
			mapping.Transform = def.Transform
		}
	}
	return r.extractMapping(mapping, item)
}

// SplitTransform splits a replacement path from its optional explicit
// transform suffix, as in "meta_data._brand | branding.titled_brand".
func SplitTransform(raw string) (path, name string) {
	if i := strings.Index(raw, "|"); i >= 0 {
		return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+1:])
	}
	return strings.TrimSpace(raw), ""
}

// resolveDefault resolves through the registry default mapping.
func (r *Resolver) resolveDefault(spec feedspec.FieldSpec, item core.Item) any {
	def := spec.Mapping
	if def == nil {
		return nil
	}
	if def.ShopField {
		if v := r.shop.Settings.Field(def.Path); v != "" {
			return v
		}
		return nil
	}
	return r.extractMapping(*def, item)
}

// extractMapping runs extraction plus transform for one mapping. The
// transform runs even when extraction produced nil so defaulting transforms
// can fill the gap.
func (r *Resolver) extractMapping(mapping feedspec.Mapping, item core.Item) any {
	value := extract.Value(item, &r.shop.Settings, mapping.Path)
	if value == nil && mapping.Fallback != "" {
		value = extract.Value(item, &r.shop.Settings, mapping.Fallback)
	}
	if mapping.Transform != "" {
		value = r.transforms.Apply(mapping.Transform, value, item, &r.shop.Settings)
	}
	return value
}

// toggleValue renders a product toggle column as the feed's string boolean.
func toggleValue(name string, pctx core.ProductContext) string {
	enabled := pctx.CheckoutEnabled
	if name == feedspec.FieldSearchEnabled {
		enabled = pctx.SearchEnabled
	}
	return strconv.FormatBool(enabled)
}
