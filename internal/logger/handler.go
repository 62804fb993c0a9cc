package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler to drop records by package, file and tag.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
	diagnostics io.Writer // receives filter decisions when debugFilter is on
}

func newFilteringHandler(base slog.Handler, cfg *Config, diagnostics io.Writer) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
		diagnostics: diagnostics,
	}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// allowed applies an enable/disable pair. Disabled always wins.
func allowed(enabled, disabled map[string]struct{}, key string) bool {
	key = strings.ToLower(key)
	if _, found := disabled[key]; found {
		return false
	}
	if enabled == nil {
		return true
	}
	_, found := enabled[key]
	return found
}

// source resolves the package directory and file name of the record's caller.
func source(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}

func (h *filteringHandler) trace(format string, args ...any) {
	if debugFilter && h.diagnostics != nil {
		fmt.Fprintf(h.diagnostics, "[FILTER] "+format+"\n", args...)
	}
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	if pkg, file := source(r); pkg != "" {
		if !allowed(h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet, pkg) {
			h.trace("dropped %q: package %s", r.Message, pkg)
			return nil
		}
		if !allowed(h.cfg.enabledFilesSet, h.cfg.disabledFilesSet, file) {
			h.trace("dropped %q: file %s", r.Message, file)
			return nil
		}
	}

	var tag string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})

	switch {
	case tag != "":
		if !allowed(h.cfg.enabledTagsSet, h.cfg.disabledTagsSet, tag) {
			h.trace("dropped %q: tag %s", r.Message, tag)
			return nil
		}
	case h.cfg.enabledTagsSet != nil && r.Level == slog.LevelDebug:
		// Untagged debug noise is dropped once specific tags are requested.
		h.trace("dropped %q: untagged", r.Message)
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg, h.diagnostics)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg, h.diagnostics)
}
