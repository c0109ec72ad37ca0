package outline

import (
	"log/slog"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// DefaultHistoryLimit is the number of undo entries kept when no limit is configured.
const DefaultHistoryLimit = 200

// Option configures an Engine during creation.
type Option func(*Engine)

// WithLines sets the initial lines of the document. Lines without an ID get one.
func WithLines(lines []model.Line) Option {
	return func(e *Engine) {
		e.initLines = lines
	}
}

// WithText sets the initial lines from indent-encoded text: two leading
// spaces (or one tab) per level.
func WithText(text string) Option {
	return func(e *Engine) {
		rows := strings.Split(normalizeNewlines(text), "\n")
		lines := make([]model.Line, 0, len(rows))
		for _, row := range rows {
			indent := 0
			for {
				if rest, ok := strings.CutPrefix(row, "  "); ok {
					row = rest
				} else if rest, ok := strings.CutPrefix(row, "\t"); ok {
					row = rest
				} else {
					break
				}
				indent++
			}
			lines = append(lines, model.Line{Text: row, Indent: indent})
		}
		e.initLines = lines
	}
}

// WithHistoryLimit sets the maximum number of undo entries.
func WithHistoryLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.historyLimit = limit
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithIDGenerator replaces the line ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}
