package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// envKey is the record attribute carrying the environment tag injected by
// the setup middleware.
const envKey = "env"

const timestampLayout = "2006-01-02 15:04:05"

// bracketHandler renders records as
//
//	[2025-01-02 15:04:05] [INFO] [DEV] message key=value
//
// matching the CLI's log line format across console and file sinks.
type bracketHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
	group string
}

func newBracketHandler(w io.Writer, level slog.Leveler) *bracketHandler {
	return &bracketHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	}
}

func (h *bracketHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *bracketHandler) Handle(_ context.Context, record slog.Record) error {
	env := ""
	var extras []string

	collect := func(a slog.Attr) bool {
		if a.Key == envKey && env == "" {
			env = a.Value.String()
			return true
		}
		if a.Equal(slog.Attr{}) {
			return true
		}
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		extras = append(extras, fmt.Sprintf("%s=%s", key, a.Value.String()))
		return true
	}

	for _, a := range h.attrs {
		collect(a)
	}
	record.Attrs(collect)

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(record.Time.Format(timestampLayout))
	b.WriteString("] [")
	b.WriteString(record.Level.String())
	b.WriteString("] [")
	b.WriteString(env)
	b.WriteString("] ")
	b.WriteString(record.Message)
	if len(extras) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(extras, " "))
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *bracketHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *bracketHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}
