// Package layer stacks configuration sources by priority.
//
// riv reads up to four sources: built-in defaults, the config file, RIV_*
// environment variables and command-line flags. Each becomes a Layer and a
// Manager merges them, later sources winning key by key.
package layer

// Source identifies where a layer's values came from.
type Source uint8

const (
	SourceBuiltin Source = iota
	SourceUser           // config.toml or config.yaml
	SourceEnv
	SourceArgs
)

// Priorities leave room between sources so a caller can slot a layer in
// between two of them.
const (
	PriorityBuiltin = 0
	PriorityUser    = 100
	PriorityEnv     = 500
	PriorityArgs    = 600
)

var sources = map[Source]struct {
	name     string
	priority int
}{
	SourceBuiltin: {"builtin", PriorityBuiltin},
	SourceUser:    {"user", PriorityUser},
	SourceEnv:     {"environment", PriorityEnv},
	SourceArgs:    {"arguments", PriorityArgs},
}

func (s Source) String() string {
	if info, ok := sources[s]; ok {
		return info.name
	}
	return "unknown"
}

// DefaultPriority returns the priority a layer from s gets from NewLayer.
// Unknown sources rank with the builtin defaults.
func DefaultPriority(s Source) int {
	return sources[s].priority
}

// Layer is one named set of settings, stored as nested maps keyed by the
// path segments ("viewer" -> "panStep" -> 50).
type Layer struct {
	Name     string
	Priority int
	Source   Source
	Path     string // file the layer was read from, if any
	Data     map[string]any
}

// NewLayer returns a layer for source at its default priority. A nil data
// becomes an empty map.
func NewLayer(name string, source Source, data map[string]any) *Layer {
	if data == nil {
		data = map[string]any{}
	}
	return &Layer{
		Name:     name,
		Priority: DefaultPriority(source),
		Source:   source,
		Data:     data,
	}
}

// Clone returns a copy of l whose Data shares nothing with the original.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = copyTree(l.Data)
	return &c
}
