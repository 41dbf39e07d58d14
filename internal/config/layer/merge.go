package layer

import (
	"reflect"
	"slices"
	"strings"
)

// DeepMerge writes src over dst and returns dst, allocating it when nil.
// Two maps under the same key merge recursively; anything else in src
// replaces what dst held. Values taken from src are copied.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		sub, isMap := v.(map[string]any)
		if old, ok := dst[k].(map[string]any); ok && isMap {
			dst[k] = DeepMerge(old, sub)
			continue
		}
		dst[k] = copyValue(v)
	}
	return dst
}

// GetByPath looks up a dotted path such as "viewer.panStep".
func GetByPath(data map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var cur any = data
	for seg := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// SetByPath stores value at a dotted path, replacing any non-map value in
// the way with a new map.
func SetByPath(data map[string]any, path string, value any) {
	if data == nil || path == "" {
		return
	}
	segs := strings.Split(path, ".")
	last := len(segs) - 1
	m := data
	for _, seg := range segs[:last] {
		next, ok := m[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[seg] = next
		}
		m = next
	}
	m[segs[last]] = value
}

// FlattenMap returns the leaves of data keyed by their dotted paths.
func FlattenMap(data map[string]any) map[string]any {
	out := map[string]any{}
	var walk func(string, map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			if prefix != "" {
				k = prefix + "." + k
			}
			if sub, ok := v.(map[string]any); ok {
				walk(k, sub)
			} else {
				out[k] = v
			}
		}
	}
	walk("", data)
	return out
}

// Changed lists, sorted, every leaf path that was added, removed or given
// a different value between old and new.
func Changed(old, new map[string]any) []string {
	before, after := FlattenMap(old), FlattenMap(new)
	var paths []string
	for p, v := range after {
		if prev, ok := before[p]; !ok || !reflect.DeepEqual(prev, v) {
			paths = append(paths, p)
		}
	}
	for p := range before {
		if _, ok := after[p]; !ok {
			paths = append(paths, p)
		}
	}
	slices.Sort(paths)
	return paths
}

func copyTree(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return copyTree(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = copyValue(e)
		}
		return out
	}
	return v
}
