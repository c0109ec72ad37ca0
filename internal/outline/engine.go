package outline

import (
	"log/slog"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// Engine owns a document, its caret and selection, and its undo history.
type Engine struct {
	lines      []*model.Line
	cursor     model.Point
	selection  *model.Selection
	anchor     *model.Point
	scrollTop  float64
	scrollLeft float64

	// preferredChar is the column kept across vertical moves, -1 when unset.
	preferredChar int

	version  uint64
	visible  []int
	history  *history
	onChange []func(version uint64)

	historyLimit int
	initLines    []model.Line
	logger       *slog.Logger
	newID        func() string
}

// New creates an engine. The document always holds at least one line.
func New(opts ...Option) *Engine {
	e := &Engine{
		historyLimit:  DefaultHistoryLimit,
		logger:        slog.New(slog.DiscardHandler),
		newID:         model.NewID,
		preferredChar: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = newHistory(e.historyLimit)

	seen := make(map[string]bool, len(e.initLines))
	for i := range e.initLines {
		l := e.initLines[i].Clone()
		if l.ID == "" || seen[l.ID] {
			l.ID = e.newID()
		}
		seen[l.ID] = true
		if l.Indent < 0 {
			l.Indent = 0
		}
		e.lines = append(e.lines, l)
	}
	e.initLines = nil
	if len(e.lines) == 0 {
		e.lines = append(e.lines, e.newLine("", 0))
	}
	return e
}

// LineCount returns the number of lines in the document.
func (e *Engine) LineCount() int {
	return len(e.lines)
}

// Line returns a copy of the line at index i.
func (e *Engine) Line(i int) (model.Line, bool) {
	if !e.valid(i) {
		return model.Line{}, false
	}
	return *e.lines[i].Clone(), true
}

// Lines returns a copy of every line in document order.
func (e *Engine) Lines() []model.Line {
	out := make([]model.Line, len(e.lines))
	for i, l := range e.lines {
		out[i] = *l.Clone()
	}
	return out
}

// Version returns the document version. It grows on every mutation.
func (e *Engine) Version() uint64 {
	return e.version
}

// OnChange registers fn to be called after every version bump.
func (e *Engine) OnChange(fn func(version uint64)) {
	e.onChange = append(e.onChange, fn)
}

// markChanged bumps the version and drops derived caches.
func (e *Engine) markChanged() {
	e.version++
	e.visible = nil
	for _, fn := range e.onChange {
		fn(e.version)
	}
}

func (e *Engine) newLine(text string, indent int) *model.Line {
	l := model.NewLine(text, indent)
	l.ID = e.newID()
	return l
}

func (e *Engine) valid(i int) bool {
	return i >= 0 && i < len(e.lines)
}

func (e *Engine) clampLine(i int) int {
	return clamp(i, 0, len(e.lines)-1)
}

func (e *Engine) clampPoint(p model.Point) model.Point {
	p.Line = e.clampLine(p.Line)
	p.Char = clamp(p.Char, 0, e.lines[p.Line].Len())
	return p
}

func (e *Engine) insertLine(at int, l *model.Line) {
	e.lines = append(e.lines, nil)
	copy(e.lines[at+1:], e.lines[at:])
	e.lines[at] = l
}

func (e *Engine) removeLines(from, to int) {
	if from >= to {
		return
	}
	e.lines = append(e.lines[:from], e.lines[to:]...)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
