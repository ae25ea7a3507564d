package transform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.starlark.net/starlark"

	intstarlark "github.com/feedlift/feedlift/internal/starlark"
	"github.com/feedlift/feedlift/pkg/core"
)

// LoadError reports a problem loading a custom transform file.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("transforms/%s: %s", filepath.Base(e.File), e.Message)
}

// LoadDir loads shop-defined transforms from every *.star file in dir.
// Each file becomes a namespace (its basename); exported functions (names
// not starting with "_") register as "<namespace>.<function>". A missing
// directory is fine: shops without custom transforms load nothing.
func (r *Registry) LoadDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access transforms directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("transforms path is not a directory: %s", dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.star"))
	if err != nil {
		return fmt.Errorf("failed to scan transforms directory: %w", err)
	}

	for _, file := range files {
		if err := r.loadFile(file); err != nil {
			return err
		}
	}
	return nil
}

// loadFile executes one .star file and registers its exported functions.
func (r *Registry) loadFile(path string) error {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from a glob of the configured transforms directory
	if err != nil {
		return &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}

	namespace := strings.TrimSuffix(filepath.Base(path), ".star")
	if err := validateNamespace(namespace); err != nil {
		return &LoadError{File: path, Message: err.Error()}
	}

	thread := &starlark.Thread{
		Name: "load:" + namespace,
		Print: func(_ *starlark.Thread, msg string) {
			r.logger.Debug("starlark print", "namespace", namespace, "message", msg)
		},
	}

	globals, err := starlark.ExecFile(thread, path, content, nil) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	if err != nil {
		return &LoadError{File: path, Message: fmt.Sprintf("starlark execution error: %v", err)}
	}

	count := 0
	for name, value := range globals {
		if strings.HasPrefix(name, "_") {
			continue
		}
		fn, ok := value.(starlark.Callable)
		if !ok {
			continue
		}
		qualified := namespace + "." + name
		r.Register(qualified, r.starlarkFunc(qualified, fn))
		count++
	}

	r.logger.Debug("loaded custom transforms", "file", filepath.Base(path), "count", count)
	return nil
}

// starlarkFunc wraps a Starlark callable as a transform. The script is
// called as fn(value, item, shop); any conversion or evaluation error logs
// and yields nil, matching built-in transform failure semantics.
func (r *Registry) starlarkFunc(qualified string, fn starlark.Callable) Func {
	return func(value any, item core.Item, shop *core.ShopSettings) any {
		sv, err := intstarlark.GoToStarlark(value)
		if err != nil {
			r.logger.Warn("custom transform input not convertible", "transform", qualified, "error", err)
			return nil
		}
		si, err := intstarlark.GoToStarlark(map[string]any(item))
		if err != nil {
			r.logger.Warn("custom transform item not convertible", "transform", qualified, "error", err)
			return nil
		}

		thread := &starlark.Thread{
			Name: "transform:" + qualified,
			Print: func(_ *starlark.Thread, msg string) {
				r.logger.Debug("starlark print", "transform", qualified, "message", msg)
			},
		}

		result, err := starlark.Call(thread, fn, starlark.Tuple{sv, si, intstarlark.ShopToStarlark(shop)}, nil)
		if err != nil {
			r.logger.Warn("custom transform failed", "transform", qualified, "error", err)
			return nil
		}

		out, err := intstarlark.ToGo(result)
		if err != nil {
			r.logger.Warn("custom transform result not convertible", "transform", qualified, "error", err)
			return nil
		}
		return out
	}
}

// validateNamespace checks that a filename-derived namespace is a valid
// identifier.
func validateNamespace(name string) error {
	if name == "" {
		return fmt.Errorf("namespace cannot be empty")
	}
	for i, r := range name {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return fmt.Errorf("namespace must start with letter or underscore: %s", name)
			}
			continue
		}
		if !isLetter(r) && !isDigit(r) && r != '_' {
			return fmt.Errorf("namespace contains invalid character: %s", name)
		}
	}
	return nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
