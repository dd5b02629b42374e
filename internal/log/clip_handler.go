package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// MaxValueLen is the number of runes kept from a string attribute.
const MaxValueLen = 120

// Ellipsis marks a clipped value.
const Ellipsis = "..."

// ClipHandler wraps an slog.Handler and bounds string attribute values.
// Values longer than the limit are cut and suffixed with Ellipsis, and line
// breaks are folded into spaces so each record stays on one line.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Libraries that accept *slog.Logger get the same treatment
type ClipHandler struct {
	// handler is the underlying slog handler that receives clipped records.
	handler slog.Handler

	// limit is the maximum rune count of a string value.
	limit int
}

// NewClipHandler creates a new ClipHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. A limit of zero or
// less means MaxValueLen.
func NewClipHandler(handler slog.Handler, limit int) *ClipHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if limit <= 0 {
		limit = MaxValueLen
	}
	return &ClipHandler{handler: handler, limit: limit}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ClipHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle clips the record's attributes and passes it to the underlying handler.
func (h *ClipHandler) Handle(ctx context.Context, r slog.Record) error {
	clipped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clipped.AddAttrs(h.clipAttr(a))
		return true
	})
	return h.handler.Handle(ctx, clipped)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *ClipHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clipped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clipped[i] = h.clipAttr(a)
	}
	return &ClipHandler{handler: h.handler.WithAttrs(clipped), limit: h.limit}
}

// WithGroup returns a new handler with the given group name.
func (h *ClipHandler) WithGroup(name string) slog.Handler {
	return &ClipHandler{handler: h.handler.WithGroup(name), limit: h.limit}
}

// clipAttr clips a single attribute, recursively handling groups.
func (h *ClipHandler) clipAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		clipped := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			clipped[i] = h.clipAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clipped...)}
	case slog.KindString:
		return slog.String(a.Key, Clip(a.Value.String(), h.limit))
	default:
		return a
	}
}

// Clip folds line breaks into spaces and cuts s to limit runes.
func Clip(s string, limit int) string {
	if strings.ContainsAny(s, "\r\n") {
		s = strings.Join(strings.Fields(strings.NewReplacer("\r", " ", "\n", " ").Replace(s)), " ")
	}
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + Ellipsis
}

// NewLogger creates a new slog.Logger writing text records to w.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewClipHandler(slog.NewTextHandler(w, handlerOptions(verbose)), MaxValueLen))
}

// NewJSONLogger creates a new slog.Logger that outputs JSON records.
// Useful for the dashboard server when logs are collected.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewClipHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), MaxValueLen))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
