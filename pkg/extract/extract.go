// Package extract resolves extraction paths against raw catalog payloads.
//
// Paths address the platform's JSON shape directly: dot-separated segments
// with optional list indices ("images[0].src"), plus three special forms.
// A leading "meta_data." searches the payload's key/value meta list, a
// leading "attributes." searches product attributes by display name, and a
// leading "shop." reads a shop-scoped settings field instead of the item.
//
// Extraction never fails: any miss, shape mismatch or out-of-range index
// yields nil.
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/feedlift/feedlift/pkg/core"
)

const (
	shopPrefix      = "shop."
	metaPrefix      = "meta_data."
	attributePrefix = "attributes."
)

// IsShopPath reports whether path addresses shop settings rather than the
// raw item.
func IsShopPath(path string) bool {
	return strings.HasPrefix(path, shopPrefix)
}

// Value resolves path against the item, or against shop settings for
// "shop." paths. A nil result means the path produced nothing.
func Value(item core.Item, shop *core.ShopSettings, path string) any {
	if path == "" {
		return nil
	}
	if field, ok := strings.CutPrefix(path, shopPrefix); ok {
		if shop == nil {
			return nil
		}
		if v := shop.Field(field); v != "" {
			return v
		}
		return nil
	}
	if item == nil {
		return nil
	}
	if key, ok := strings.CutPrefix(path, metaPrefix); ok {
		return metaValue(item, key)
	}
	if name, ok := strings.CutPrefix(path, attributePrefix); ok {
		return attributeValue(item, name)
	}
	return walk(item, path)
}

// walk follows dot segments through nested maps and lists.
func walk(item core.Item, path string) any {
	var current any = item
	for _, segment := range strings.Split(path, ".") {
		key, index, hasIndex := cutIndex(segment)
		if key == "" && !hasIndex {
			return nil
		}
		if key != "" {
			node, ok := current.(map[string]any)
			if !ok {
				return nil
			}
			current = node[key]
		}
		if hasIndex {
			list, ok := current.([]any)
			if !ok || index < 0 || index >= len(list) {
				return nil
			}
			current = list[index]
		}
		if current == nil {
			return nil
		}
	}
	return current
}

// cutIndex splits a segment like "images[0]" into its key and index.
func cutIndex(segment string) (key string, index int, ok bool) {
	open := strings.IndexByte(segment, '[')
	if open < 0 || !strings.HasSuffix(segment, "]") {
		return segment, 0, false
	}
	idx, err := strconv.Atoi(segment[open+1 : len(segment)-1])
	if err != nil {
		return segment, 0, false
	}
	return segment[:open], idx, true
}

// metaValue searches the meta_data list of {key, value} entries. The whole
// remainder of the path is the meta key; platform keys may contain dots.
func metaValue(item core.Item, key string) any {
	entries, ok := item["meta_data"].([]any)
	if !ok {
		return nil
	}
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if k, _ := entry["key"].(string); k == key {
			return entry["value"]
		}
	}
	return nil
}

// attributeValue searches product attributes by display name, first match
// wins. Variant payloads carry the selected value under "option"; parent
// payloads carry all values under "options", joined when there are several.
func attributeValue(item core.Item, name string) any {
	entries, ok := item["attributes"].([]any)
	if !ok {
		return nil
	}
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		entryName, _ := entry["name"].(string)
		if !strings.EqualFold(entryName, name) {
			continue
		}
		if option, ok := entry["option"]; ok && option != nil {
			return option
		}
		options, ok := entry["options"].([]any)
		if !ok || len(options) == 0 {
			return nil
		}
		if len(options) == 1 {
			return options[0]
		}
		parts := make([]string, 0, len(options))
		for _, o := range options {
			s, ok := o.(string)
			if !ok {
				s = fmt.Sprint(o)
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", ")
	}
	return nil
}
