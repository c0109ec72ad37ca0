package outline

import "github.com/pstuifzand/outline-engine/internal/model"

// IndentOptions selects which lines ChangeIndent affects.
type IndentOptions struct {
	// ApplyToSelection indents every line touched by the selection instead
	// of the caret line. Without a selection nothing happens.
	ApplyToSelection bool
	// IncludeChildren extends each affected line to its whole block.
	IncludeChildren bool
}

// ChangeIndent adds delta to the indent of the affected lines, flooring at 0.
// It reports whether any indent changed.
func (e *Engine) ChangeIndent(delta int, opts IndentOptions) bool {
	if delta == 0 {
		return false
	}
	first, last := e.cursor.Line, e.cursor.Line
	if opts.ApplyToSelection {
		if !e.HasSelection() {
			return false
		}
		first, last = e.selection.LineRange()
		first, last = e.clampLine(first), e.clampLine(last)
	}

	var targets []int
	if opts.IncludeChildren {
		for i := first; i <= last && i < len(e.lines); {
			end := e.DescendantEnd(i)
			for j := i; j < end; j++ {
				targets = append(targets, j)
			}
			i = end
		}
	} else {
		for i := first; i <= last; i++ {
			targets = append(targets, i)
		}
	}

	changed := false
	for _, i := range targets {
		if max(0, e.lines[i].Indent+delta) != e.lines[i].Indent {
			changed = true
			break
		}
	}
	if !changed {
		return false
	}

	e.saveHistory()
	for _, i := range targets {
		e.lines[i].Indent = max(0, e.lines[i].Indent+delta)
	}
	e.markChanged()
	return true
}

// ToggleCollapse folds or unfolds line i. Lines without children are left
// alone. If folding hides the caret, the caret moves onto line i.
func (e *Engine) ToggleCollapse(i int) bool {
	if !e.HasChildren(i) {
		return false
	}
	e.saveHistory()
	line := e.lines[i]
	line.Collapsed = !line.Collapsed
	e.markChanged()
	if line.Collapsed && !e.IsVisible(e.cursor.Line) {
		e.SetCursor(i, min(e.cursor.Char, line.Len()))
	}
	return true
}

// MoveLine shifts the lines spanned by the caret or selection by delta
// positions, ignoring the tree. Points inside the moved range follow it.
func (e *Engine) MoveLine(delta int) bool {
	if delta == 0 {
		return false
	}
	start, end := e.cursor.Line, e.cursor.Line
	if e.selection != nil {
		start, end = e.selection.LineRange()
		start, end = e.clampLine(start), e.clampLine(end)
	}
	if start+delta < 0 || end+delta >= len(e.lines) {
		return false
	}

	e.saveHistory()
	block := make([]*model.Line, end-start+1)
	copy(block, e.lines[start:end+1])
	e.removeLines(start, end+1)
	for n, l := range block {
		e.insertLine(start+delta+n, l)
	}

	shift := func(p model.Point) model.Point {
		if p.Line >= start && p.Line <= end {
			p.Line += delta
		}
		return p
	}
	if e.selection != nil {
		sel := model.Selection{Start: shift(e.selection.Start), End: shift(e.selection.End)}
		e.selection = &sel
	}
	if e.anchor != nil {
		a := shift(*e.anchor)
		e.anchor = &a
	}
	c := shift(e.cursor)
	if e.selection != nil {
		e.SetCursor(c.Line, c.Char, KeepSelection())
	} else {
		e.SetCursor(c.Line, c.Char)
	}
	e.markChanged()
	return true
}

// MoveBlock swaps the caret line's block with the previous (dir < 0) or next
// sibling block at the same indent. Without such a sibling nothing happens.
func (e *Engine) MoveBlock(dir int) bool {
	if dir == 0 {
		return false
	}
	start := e.cursor.Line
	end := e.DescendantEnd(start)
	size := end - start
	base := e.lines[start].Indent
	char := e.cursor.Char

	var at int
	if dir < 0 {
		prev := start - 1
		for prev >= 0 && e.lines[prev].Indent > base {
			prev--
		}
		if prev < 0 || e.lines[prev].Indent != base {
			return false
		}
		at = prev
	} else {
		if end >= len(e.lines) || e.lines[end].Indent != base {
			return false
		}
		at = e.DescendantEnd(end) - size
	}

	e.saveHistory()
	block := make([]*model.Line, size)
	copy(block, e.lines[start:end])
	e.removeLines(start, end)
	for n, l := range block {
		e.insertLine(at+n, l)
	}
	e.markChanged()
	e.SetCursor(at, char)
	return true
}
