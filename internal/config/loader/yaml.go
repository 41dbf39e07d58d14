package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLoader reads a YAML config file.
type YAMLLoader struct{ file }

func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(OSFS{}, path)
}

func NewYAMLLoaderWithFS(fsys FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{file{fsys: fsys, path: path, parse: parseYAML}}
}

func parseYAML(name string, data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: name, Message: err.Error(), Err: err}
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	return stringKeys(doc).(map[string]any), nil
}

// stringKeys rewrites the map[any]any yaml produces for non-string keys,
// such as `1: next` under keys, so every level is a map[string]any.
func stringKeys(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, x := range v {
			v[k] = stringKeys(x)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, x := range v {
			m[fmt.Sprint(k)] = stringKeys(x)
		}
		return m
	case []any:
		for i, x := range v {
			v[i] = stringKeys(x)
		}
	}
	return v
}
