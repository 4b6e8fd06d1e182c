package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a slog.Logger bound to one component. The component is attached
// once as a handler attribute, so every record carries exactly one
// component field however many times the logger is derived.
type Logger struct {
	*slog.Logger
	base      *slog.Logger // same handler chain, without the component
	level     *slog.LevelVar
	component string
}

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Component string
	Output    io.Writer
	Handler   slog.Handler
}

// DefaultConfig returns sensible defaults for logging
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Component: ComponentApp,
		Output:    os.Stdout,
	}
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger. A custom Handler ignores Level and Output.
func New(config Config) *Logger {
	level := new(slog.LevelVar)
	level.Set(config.Level)

	handler := config.Handler
	if handler == nil {
		out := config.Output
		if out == nil {
			out = os.Stdout
		}
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	}
	return bind(slog.New(handler), level, config.Component)
}

func bind(base *slog.Logger, level *slog.LevelVar, component string) *Logger {
	return &Logger{
		Logger:    base.With(FieldComponent, component),
		base:      base,
		level:     level,
		component: component,
	}
}

// With returns a logger carrying extra attributes under the same component.
func (l *Logger) With(args ...any) *Logger {
	return bind(l.base.With(args...), l.level, l.component)
}

// WithComponent returns a logger that reports under another component.
func (l *Logger) WithComponent(component string) *Logger {
	return bind(l.base, l.level, component)
}

// For returns a plain slog.Logger tagged with component, for packages that
// take *slog.Logger.
func (l *Logger) For(component string) *slog.Logger {
	return l.WithComponent(component).Logger
}

// SetLevel changes the minimum level for this logger and every logger
// derived from it.
func (l *Logger) SetLevel(level slog.Level) {
	if l.level != nil {
		l.level.Set(level)
	}
}

// SetDefault installs the logger, minus its component, as the slog default.
// Packages logging through slog.Default add their own component.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.base)
}

// Component returns the logger's component name
func (l *Logger) Component() string {
	return l.component
}
