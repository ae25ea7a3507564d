// Package transform provides the transform library applied during field
// resolution: named, pure functions of (value, item, shop settings).
//
// Transforms are total. They run even when extraction produced nil, so
// defaulting transforms can fill gaps, and any failure inside a transform
// degrades to nil instead of aborting the product.
package transform

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/feedlift/feedlift/pkg/core"
)

// Func is a transform: it receives the extracted value, the raw item and
// the shop settings, and returns the transformed value or nil.
type Func func(value any, item core.Item, shop *core.ShopSettings) any

// UnknownTransformError reports a lookup for a transform the registry does
// not provide.
type UnknownTransformError struct {
	Name      string
	Available []string
}

func (e *UnknownTransformError) Error() string {
	return fmt.Sprintf("unknown transform %q (available: %v)", e.Name, e.Available)
}

// Registry maps transform names to implementations. Built-ins are registered
// at construction; shop-defined Starlark transforms join via LoadDir.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Func
	logger *slog.Logger
}

// New creates an empty registry. A nil logger discards transform diagnostics.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		byName: make(map[string]Func),
		logger: logger,
	}
}

// Default creates a registry with every built-in transform registered.
func Default(logger *slog.Logger) *Registry {
	r := New(logger)
	for name, fn := range builtins {
		r.Register(name, fn)
	}
	return r
}

// Register adds or replaces a transform by name.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = fn
}

// Get returns the transform registered under name.
func (r *Registry) Get(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.byName[name]
	return fn, ok
}

// Lookup returns the transform registered under name, or an
// UnknownTransformError listing what is available.
func (r *Registry) Lookup(name string) (Func, error) {
	fn, ok := r.Get(name)
	if !ok {
		return nil, &UnknownTransformError{Name: name, Available: r.Names()}
	}
	return fn, nil
}

// Names returns the registered transform names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered transforms.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Apply runs the named transform over value. An unknown name passes the
// value through unchanged; a panicking transform yields nil. Both paths log
// at warn and neither interrupts the caller.
func (r *Registry) Apply(name string, value any, item core.Item, shop *core.ShopSettings) (out any) {
	fn, ok := r.Get(name)
	if !ok {
		r.logger.Warn("unknown transform, passing value through", "transform", name)
		return value
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("transform failed", "transform", name, "panic", rec)
			out = nil
		}
	}()
	return fn(value, item, shop)
}
