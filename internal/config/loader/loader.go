// Package loader turns config files and RIV_* environment variables into
// nested maps for the layer package. The file format follows the
// extension: .toml, .yaml or .yml.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by ForPath for an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader reads one source. A source that does not exist loads as nil
// with no error.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem reads config files. Tests substitute an in-memory one.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the local disk.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// ForPath picks the loader for path's extension. A nil fsys reads from
// disk.
func ForPath(fsys FileSystem, path string) (Loader, error) {
	if fsys == nil {
		fsys = OSFS{}
	}
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// file is the part shared by the format loaders: where to read and how to
// parse.
type file struct {
	fsys  FileSystem
	path  string
	parse func(name string, data []byte) (map[string]any, error)
}

func (f file) Load() (map[string]any, error) {
	data, err := f.fsys.ReadFile(f.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return f.parse(f.path, data)
}

// LoadFromReader parses r as if it were the file's contents.
func (f file) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return f.parse("<reader>", data)
}

// ParseError is a syntax error in a config file. Line and Column are 1-based
// and zero when the parser does not report them.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Path
	if e.Line > 0 {
		where += fmt.Sprintf(":%d", e.Line)
		if e.Column > 0 {
			where += fmt.Sprintf(":%d", e.Column)
		}
	}
	return fmt.Sprintf("parse %s: %s", where, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }
