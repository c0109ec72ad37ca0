package outline

import (
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

type cursorOptions struct {
	keepSelection bool
}

// CursorOption modifies SetCursor.
type CursorOption func(*cursorOptions)

// KeepSelection leaves the selection and its anchor untouched.
func KeepSelection() CursorOption {
	return func(o *cursorOptions) {
		o.keepSelection = true
	}
}

// Cursor returns the caret position.
func (e *Engine) Cursor() model.Point {
	return e.cursor
}

// SetCursor moves the caret, clamping line and char into range. By default
// the selection and its anchor are cleared.
func (e *Engine) SetCursor(line, char int, opts ...CursorOption) {
	var o cursorOptions
	for _, opt := range opts {
		opt(&o)
	}
	e.cursor = e.clampPoint(model.Point{Line: line, Char: char})
	if !o.keepSelection {
		e.selection = nil
		e.anchor = nil
	}
	e.preferredChar = -1
}

// Selection returns the raw selection as set, without ordering its endpoints.
func (e *Engine) Selection() (model.Selection, bool) {
	if e.selection == nil {
		return model.Selection{}, false
	}
	return *e.selection, true
}

// NormalizedSelection returns the selection with Start <= End.
func (e *Engine) NormalizedSelection() (model.Selection, bool) {
	if e.selection == nil {
		return model.Selection{}, false
	}
	return e.selection.Normalize(), true
}

// HasSelection reports whether a non-empty selection is set.
func (e *Engine) HasSelection() bool {
	return e.selection != nil && !e.selection.IsEmpty()
}

// SetSelection selects from start to end. The caret moves to end and start
// becomes the anchor for further extension.
func (e *Engine) SetSelection(start, end model.Point) {
	start = e.clampPoint(start)
	end = e.clampPoint(end)
	e.SetCursor(end.Line, end.Char)
	e.selection = &model.Selection{Start: start, End: end}
	a := start
	e.anchor = &a
}

// SelectRange applies a selection value, e.g. one captured earlier.
func (e *Engine) SelectRange(sel model.Selection) {
	e.SetSelection(sel.Start, sel.End)
}

// ClearSelection drops the selection and its anchor.
func (e *Engine) ClearSelection() {
	e.selection = nil
	e.anchor = nil
}

// SelectAll selects the whole document.
func (e *Engine) SelectAll() {
	last := len(e.lines) - 1
	end := model.Point{Line: last, Char: e.lines[last].Len()}
	e.selection = &model.Selection{Start: model.Point{}, End: end}
	e.SetCursor(end.Line, end.Char, KeepSelection())
}

// SelectedText returns the selected text with lines joined by "\n".
func (e *Engine) SelectedText() string {
	sel, ok := e.NormalizedSelection()
	if !ok {
		return ""
	}
	start, end := e.clampPoint(sel.Start), e.clampPoint(sel.End)
	if start.Line == end.Line {
		l := e.lines[start.Line]
		if l.IsAtomic() {
			return ""
		}
		return sliceRunes(l.Text, start.Char, end.Char)
	}
	parts := []string{tailOf(e.lines[start.Line], start.Char)}
	for i := start.Line + 1; i < end.Line; i++ {
		if e.lines[i].IsAtomic() {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, e.lines[i].Text)
	}
	parts = append(parts, headOf(e.lines[end.Line], end.Char))
	return strings.Join(parts, "\n")
}

// Scroll returns the stored scroll offsets.
func (e *Engine) Scroll() (top, left float64) {
	return e.scrollTop, e.scrollLeft
}

// SetScroll stores the scroll offsets. They travel with snapshots and undo.
func (e *Engine) SetScroll(top, left float64) {
	e.scrollTop = top
	e.scrollLeft = left
}

// ensureAnchor fixes the anchor for selection extension if none is set.
func (e *Engine) ensureAnchor() {
	if e.anchor != nil {
		return
	}
	var a model.Point
	if sel, ok := e.NormalizedSelection(); ok {
		a = sel.Start
	} else {
		a = e.cursor
	}
	e.anchor = &a
}

// moveCaret places the caret at target. When extend is set, the selection is
// rebuilt from the anchor to the new caret.
func (e *Engine) moveCaret(target model.Point, extend bool) {
	if !extend {
		e.SetCursor(target.Line, target.Char)
		return
	}
	e.ensureAnchor()
	e.SetCursor(target.Line, target.Char, KeepSelection())
	e.selection = &model.Selection{Start: *e.anchor, End: e.cursor}
}
