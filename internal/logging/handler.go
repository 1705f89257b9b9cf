// Package logging writes slog records in NZBGet's extension log protocol:
// one line per message, prefixed with [DEBUG], [DETAIL], [WARNING] or
// [ERROR], which NZBGet uses to pick the level of the entry in its own log.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Prefix returns the protocol prefix for level.
func Prefix(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "[ERROR]"
	case level >= slog.LevelWarn:
		return "[WARNING]"
	case level >= slog.LevelInfo:
		return "[DETAIL]"
	default:
		return "[DEBUG]"
	}
}

// Handler is a slog.Handler for the NZBGet line protocol. Prefixes are
// coloured only when the writer is a terminal.
type Handler struct {
	mu       *sync.Mutex
	w        io.Writer
	level    slog.Leveler
	preAttrs []slog.Attr
	styles   map[string]lipgloss.Style
}

// NewHandler creates a Handler writing to w. A nil opts logs at info level.
func NewHandler(w io.Writer, opts *slog.HandlerOptions) *Handler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &Handler{
		mu:     &sync.Mutex{},
		w:      w,
		level:  level,
		styles: prefixStyles(lipgloss.NewRenderer(w)),
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.preAttrs = append(append([]slog.Attr{}, h.preAttrs...), attrs...)
	return &newH
}

// WithGroup is a no-op; attrs are written flat.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}

// Handle writes r. A message spanning several lines gets the prefix on every
// line so NZBGet does not log continuation lines as plain output.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var attrs strings.Builder
	write := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		fmt.Fprintf(&attrs, " %s=%v", a.Key, a.Value.Resolve())
	}
	for _, a := range h.preAttrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})

	prefix := Prefix(r.Level)
	styled := h.styles[prefix].Render(prefix)

	lines := strings.Split(strings.TrimRight(r.Message, "\n"), "\n")
	lines[len(lines)-1] += attrs.String()

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(styled)
		b.WriteByte(' ')
		b.WriteString(line)
		b.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// NewLogger returns a logger for w at info level, or debug when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(NewHandler(w, &slog.HandlerOptions{Level: level}))
}

// LogError logs msg with err at error level and returns err wrapped with msg.
func LogError(logger *slog.Logger, msg string, err error, attrs ...any) error {
	logger.Error(msg, append([]any{"error", err}, attrs...)...)
	return fmt.Errorf("%s: %w", msg, err)
}
