// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	defaultLogger *slog.Logger
	logLevel      = new(slog.LevelVar)
	initOnce      sync.Once
	debugFilter   bool // traces filter decisions to stderr
)

// SetDebugFilter toggles tracing of the filtering handler's decisions.
func SetDebugFilter(enabled bool) {
	debugFilter = enabled
}

// Init initializes the logger package. Only the first call has any effect.
func Init(cfg Config, output io.Writer) {
	initialized := false
	initOnce.Do(func() {
		defaultLogger = newLogger(cfg, output, logLevel)
		initialized = true
	})
	if initialized {
		Infof("Logger initialized (level %s)", ParseLevel(cfg.LogLevel))
	}
}

// newLogger builds a text logger behind the filtering handler.
func newLogger(cfg Config, output io.Writer, level *slog.LevelVar) *slog.Logger {
	if output == nil {
		output = io.Discard
	}
	cfg.process()
	level.Set(cfg.level)

	opts := slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	return slog.New(newFilteringHandler(slog.NewTextHandler(output, &opts), &cfg, os.Stderr))
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level slog.Level) {
	logLevel.Set(level)
}

// ensureInitialized installs a discarding logger if Init was never called.
func ensureInitialized() {
	initOnce.Do(func() {
		defaultLogger = newLogger(NewConfig(), io.Discard, logLevel)
	})
}

// logAtLevel creates and logs a record at the specified level, capturing the correct caller source.
func logAtLevel(level slog.Level, tag string, format string, args ...any) {
	ensureInitialized()
	if !defaultLogger.Enabled(context.Background(), level) {
		return
	}

	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = defaultLogger.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...any) {
	logAtLevel(slog.LevelDebug, "", format, args...)
}

// DebugTagf logs a debug message carrying a tag that the filters can select on.
func DebugTagf(tag string, format string, args ...any) {
	logAtLevel(slog.LevelDebug, tag, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...any) {
	logAtLevel(slog.LevelInfo, "", format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...any) {
	logAtLevel(slog.LevelWarn, "", format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...any) {
	logAtLevel(slog.LevelError, "", format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...any) {
	logAtLevel(slog.LevelError, "", format, args...)
	os.Exit(1)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	ensureInitialized()
	return defaultLogger
}
