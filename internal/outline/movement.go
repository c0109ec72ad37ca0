package outline

import "github.com/pstuifzand/outline-engine/internal/model"

// MoveHorizontal moves the caret one char left (dir < 0) or right, wrapping
// to the adjacent visible line. Without extend, an existing selection
// collapses to its start or end instead.
func (e *Engine) MoveHorizontal(dir int, extend bool) {
	if e.selection != nil && !extend {
		sel := e.selection.Normalize()
		target := sel.End
		if dir < 0 {
			target = sel.Start
		}
		e.SetCursor(target.Line, target.Char)
		return
	}

	c := e.cursor
	length := e.lines[c.Line].Len()
	target := model.Point{Line: c.Line, Char: c.Char + sign(dir)}
	switch {
	case target.Char < 0:
		if prev, ok := e.PreviousVisibleLine(c.Line); ok {
			target = model.Point{Line: prev, Char: e.lines[prev].Len()}
		} else {
			target.Char = 0
		}
	case target.Char > length:
		if next, ok := e.NextVisibleLine(c.Line); ok {
			target = model.Point{Line: next, Char: 0}
		} else {
			target.Char = length
		}
	}
	e.moveCaret(target, extend)
}

// MoveVertical moves the caret by delta visible lines. The caret column is
// remembered across consecutive vertical moves.
func (e *Engine) MoveVertical(delta int, extend bool) {
	visible := e.visibleLines()
	if len(visible) == 0 {
		return
	}
	// a hidden caret moves from its nearest visible ancestor
	line := e.cursor.Line
	cur := e.VisibleIndex(line)
	for cur == -1 {
		p, ok := e.Parent(line)
		if !ok {
			return
		}
		line = p
		cur = e.VisibleIndex(line)
	}
	preferred := e.preferredChar
	if preferred < 0 {
		preferred = e.cursor.Char
	}
	targetLine := visible[clamp(cur+delta, 0, len(visible)-1)]
	e.moveCaret(model.Point{Line: targetLine, Char: min(preferred, e.lines[targetLine].Len())}, extend)
	e.preferredChar = preferred
}

// MovePage moves the caret by pageSize visible lines in direction dir.
func (e *Engine) MovePage(dir, pageSize int, extend bool) {
	if pageSize < 1 {
		pageSize = 1
	}
	e.MoveVertical(sign(dir)*pageSize, extend)
}

// MoveToLineEdge moves the caret to the start or end of its line.
func (e *Engine) MoveToLineEdge(end, extend bool) {
	target := model.Point{Line: e.cursor.Line}
	if end {
		target.Char = e.lines[e.cursor.Line].Len()
	}
	e.moveCaret(target, extend)
}

// MoveToDocumentEdge moves the caret to the start or end of the document.
func (e *Engine) MoveToDocumentEdge(end, extend bool) {
	target := model.Point{}
	if end {
		last := len(e.lines) - 1
		target = model.Point{Line: last, Char: e.lines[last].Len()}
	}
	e.moveCaret(target, extend)
}

// MoveByWord moves the caret to the previous word start (dir < 0) or the
// next word end. At a line edge it steps onto the adjacent visible line first.
func (e *Engine) MoveByWord(dir int, extend bool) {
	c := e.cursor
	line := e.lines[c.Line]
	target := c

	if line.IsAtomic() {
		if dir < 0 {
			if c.Char > 0 {
				target.Char = 0
			} else {
				prev, ok := e.PreviousVisibleLine(c.Line)
				if !ok {
					return
				}
				target = model.Point{Line: prev, Char: e.lines[prev].Len()}
			}
		} else {
			if c.Char < line.Len() {
				target.Char = line.Len()
			} else {
				next, ok := e.NextVisibleLine(c.Line)
				if !ok {
					return
				}
				target = model.Point{Line: next}
			}
		}
		e.moveCaret(target, extend)
		return
	}

	if dir < 0 {
		if c.Char == 0 {
			prev, ok := e.PreviousVisibleLine(c.Line)
			if !ok {
				return
			}
			target = model.Point{Line: prev, Char: e.lines[prev].Len()}
		}
		target.Char = wordBoundary(e.lines[target.Line], target.Char, -1)
	} else {
		if c.Char == line.Len() {
			next, ok := e.NextVisibleLine(c.Line)
			if !ok {
				return
			}
			target = model.Point{Line: next}
		}
		target.Char = wordBoundary(e.lines[target.Line], target.Char, 1)
	}
	e.moveCaret(target, extend)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
