package keymap

import "sort"

// FromMap builds a keymap from a keys -> action name map, as found in the
// "keys" configuration section. Non-string values are skipped. Bindings are
// ordered by key so that the result is deterministic.
func FromMap(name string, m map[string]any) *Keymap {
	km := NewKeymap(name).WithSource("config")

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v, ok := m[k].(string)
		if !ok {
			continue
		}
		km.Add(k, v)
	}
	return km
}
