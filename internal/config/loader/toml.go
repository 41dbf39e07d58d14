package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader reads a TOML config file.
type TOMLLoader struct{ file }

func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(OSFS{}, path)
}

func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{file{fsys: fsys, path: path, parse: parseTOML}}
}

// parseTOML decodes data, reporting the error position go-toml finds.
// Integers decode as int64.
func parseTOML(name string, data []byte) (map[string]any, error) {
	out := map[string]any{}
	err := toml.Unmarshal(data, &out)
	if err == nil {
		return out, nil
	}
	perr := &ParseError{Path: name, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
	}
	return nil, perr
}
