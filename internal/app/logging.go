package app

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// LogLevel orders log messages by severity.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError

	logLevelOff // above every level; used by NullLogger
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLogLevel reads a logging.level value. Unknown names are Info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	}
	return LogLevelInfo
}

// LoggerConfig configures NewLogger. A nil Output means os.Stderr.
type LoggerConfig struct {
	Level  LogLevel
	Output io.Writer
	Prefix string
}

// DefaultLoggerConfig logs Info and above to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{Level: LogLevelInfo, Output: os.Stderr, Prefix: "riv"}
}

// Logger writes one line per message:
//
//	2024-05-01T12:30:00.000 [INFO] riv: loaded image {index=3, path=a.png}
//
// Loggers derived with WithField share the parent's writer and lock, so
// they may be used from the watcher goroutines.
type Logger struct {
	mu     *sync.Mutex
	output io.Writer
	now    func() time.Time
	level  LogLevel
	prefix string
	fields map[string]any
	suffix string // fields rendered once, sorted by key
}

func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		mu:     new(sync.Mutex),
		output: cfg.Output,
		now:    time.Now,
		level:  cfg.Level,
		prefix: cfg.Prefix,
	}
}

// NullLogger drops everything.
var NullLogger = &Logger{mu: new(sync.Mutex), output: io.Discard, now: time.Now, level: logLevelOff}

func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a child logger carrying fields on top of l's. The
// child overrides l on duplicate keys.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	child := *l
	child.fields = maps.Clone(l.fields)
	if child.fields == nil {
		child.fields = make(map[string]any, len(fields))
	}
	maps.Copy(child.fields, fields)

	var b strings.Builder
	b.WriteString(" {")
	for i, k := range slices.Sorted(maps.Keys(child.fields)) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, child.fields[k])
	}
	b.WriteByte('}')
	child.suffix = b.String()
	return &child
}

// WithComponent tags lines with component=name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.WithField("component", name)
}

// Enabled reports whether a message at level would be written. Callers use
// it to skip building expensive arguments.
func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.level
}

func (l *Logger) Debug(format string, args ...any) { l.write(LogLevelDebug, format, args) }
func (l *Logger) Info(format string, args ...any)  { l.write(LogLevelInfo, format, args) }
func (l *Logger) Warn(format string, args ...any)  { l.write(LogLevelWarn, format, args) }
func (l *Logger) Error(format string, args ...any) { l.write(LogLevelError, format, args) }

func (l *Logger) write(level LogLevel, format string, args []any) {
	if !l.Enabled(level) {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	prefix := ""
	if l.prefix != "" {
		prefix = l.prefix + ": "
	}
	line := fmt.Sprintf("%s [%s] %s%s%s\n",
		l.now().Format("2006-01-02T15:04:05.000"), level, prefix, msg, l.suffix)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.output, line)
}
