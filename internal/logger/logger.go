// Package logger sets up the structured application log: JSON records through
// log/slog into a size-rotated file.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured warning or error, kept for the status line.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Format renders the entry on one line.
func (e Entry) Format() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), e.Level.String(), e.Message)
}

type ring struct {
	mu      sync.Mutex
	entries []Entry
	head    int
	count   int
}

func newRing(size int) *ring {
	return &ring{entries: make([]Entry, size)}
}

func (r *ring) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.head] = e
	r.head = (r.head + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
}

func (r *ring) all() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.entries[(r.head-r.count+i+len(r.entries))%len(r.entries)]
	}
	return out
}

// captureHandler records WARN and above before passing records on.
type captureHandler struct {
	inner slog.Handler
	buf   *ring
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.buf.add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), buf: h.buf}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), buf: h.buf}
}

// Logger is a slog logger bound to its output.
type Logger struct {
	*slog.Logger
	Path string

	closer io.Closer
	buf    *ring
}

// New opens a rotating log file at path and returns a JSON logger writing to
// it at the given level.
func New(level slog.Level, path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	l := NewWithWriter(level, w)
	l.Path = path
	l.closer = w
	return l, nil
}

// NewWithWriter returns a JSON logger writing to w.
func NewWithWriter(level slog.Level, w io.Writer) *Logger {
	buf := newRing(100)
	h := &captureHandler{
		inner: slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
		buf:   buf,
	}
	return &Logger{Logger: slog.New(h), buf: buf}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler), buf: newRing(1)}
}

// Recent returns the captured warnings and errors, oldest first.
func (l *Logger) Recent() []Entry {
	return l.buf.all()
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
