package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/dshills/riv/internal/config/layer"
)

// EnvPrefix starts every environment variable riv reads.
const EnvPrefix = "RIV_"

// EnvLoader maps RIV_SECTION_SOME_KEY variables to section.someKey
// settings. A few short names are mapped explicitly.
type EnvLoader struct {
	prefix  string
	aliases map[string]string
	environ func() []string
}

// NewEnvLoader returns a loader for variables starting with prefix, which
// includes the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix: prefix,
		aliases: map[string]string{
			"RIV_LOG_LEVEL":  "logging.level",
			"RIV_LOG_FILE":   "logging.file",
			"RIV_FRONTEND":   "viewer.frontend",
			"RIV_BACKGROUND": "viewer.background",
		},
		environ: os.Environ,
	}
}

// AddMapping makes envVar set path regardless of its name.
func (l *EnvLoader) AddMapping(envVar, path string) {
	l.aliases[envVar] = path
}

// Load never fails. Empty values load as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	out := map[string]any{}
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := l.aliases[name]
		if !ok {
			path = l.settingPath(name)
		}
		if path != "" {
			layer.SetByPath(out, path, parseValue(value))
		}
	}
	return out, nil
}

// settingPath turns RIV_VIEWER_PAN_STEP into viewer.panStep. It returns
// "" when the name has no key after the section.
func (l *EnvLoader) settingPath(name string) string {
	section, rest, _ := strings.Cut(strings.TrimPrefix(name, l.prefix), "_")
	words := strings.Split(rest, "_")
	if section == "" || words[0] == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(section))
	b.WriteByte('.')
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		if w == "" {
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}

// parseValue reads booleans spelled as words, integers, and decimals.
// Anything else, "1.5s" included, stays a string. 1 and 0 are integers so
// RIV_CACHE_CAPACITY=1 works.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
