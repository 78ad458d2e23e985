package rule

import (
	"fmt"
	"strconv"
)

// Theme is an opaque nested lookup table handed to Generate and Handler
// callbacks. Nested levels may be Theme, map[string]any or map[any]any
// (as produced by YAML and TOML decoders).
type Theme map[string]any

// Lookup walks the theme one key per path segment.
//
//	theme.Lookup("colors", "red", "500")
func (t Theme) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(t)
	for _, key := range path {
		next, ok := child(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// String looks up a leaf and formats it as a CSS value. Numbers are
// formatted without a trailing zero fraction; nested groups are not leaves.
func (t Theme) String(path ...string) (string, bool) {
	v, ok := t.Lookup(path...)
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool, nil:
		return "", false
	}
	if isGroup(v) {
		return "", false
	}
	return fmt.Sprint(v), true
}

// Keys returns the keys of the group at path, in no particular order.
func (t Theme) Keys(path ...string) []string {
	v, ok := t.Lookup(path...)
	if !ok {
		return nil
	}
	var keys []string
	switch m := v.(type) {
	case Theme:
		for k := range m {
			keys = append(keys, k)
		}
	case map[string]any:
		for k := range m {
			keys = append(keys, k)
		}
	case map[any]any:
		for k := range m {
			keys = append(keys, fmt.Sprint(k))
		}
	case map[string]string:
		for k := range m {
			keys = append(keys, k)
		}
	}
	return keys
}

// MergeThemes deep-merges over onto base and returns a new Theme.
// Leaf values in over win; groups are merged recursively.
func MergeThemes(base, over Theme) Theme {
	out := make(Theme, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		if cur, ok := out[k]; ok && isGroup(cur) && isGroup(v) {
			out[k] = map[string]any(MergeThemes(asTheme(cur), asTheme(v)))
			continue
		}
		out[k] = v
	}
	return out
}

func child(node any, key string) (any, bool) {
	switch m := node.(type) {
	case Theme:
		v, ok := m[key]
		return v, ok
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	case map[any]any:
		for k, v := range m {
			if fmt.Sprint(k) == key {
				return v, true
			}
		}
	}
	return nil, false
}

func isGroup(v any) bool {
	switch v.(type) {
	case Theme, map[string]any, map[any]any, map[string]string:
		return true
	}
	return false
}

func asTheme(v any) Theme {
	switch m := v.(type) {
	case Theme:
		return m
	case map[string]any:
		return Theme(m)
	case map[string]string:
		out := make(Theme, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out
	case map[any]any:
		out := make(Theme, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out
	}
	return nil
}
