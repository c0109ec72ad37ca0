package outline

// Parent returns the nearest preceding line with a smaller indent.
// The second result is false for root lines.
func (e *Engine) Parent(i int) (int, bool) {
	if !e.valid(i) {
		return -1, false
	}
	indent := e.lines[i].Indent
	for j := i - 1; j >= 0; j-- {
		if e.lines[j].Indent < indent {
			return j, true
		}
	}
	return -1, false
}

// HasChildren reports whether the line after i is indented deeper than i.
func (e *Engine) HasChildren(i int) bool {
	if !e.valid(i) || i+1 >= len(e.lines) {
		return false
	}
	return e.lines[i+1].Indent > e.lines[i].Indent
}

// DescendantEnd returns the first index after i whose indent is not greater
// than the indent of i. The block owned by i is [i, DescendantEnd(i)).
func (e *Engine) DescendantEnd(i int) int {
	i = e.clampLine(i)
	base := e.lines[i].Indent
	j := i + 1
	for j < len(e.lines) && e.lines[j].Indent > base {
		j++
	}
	return j
}

// IsVisible reports whether no ancestor of i is collapsed.
func (e *Engine) IsVisible(i int) bool {
	if !e.valid(i) {
		return false
	}
	cur := i
	for {
		p, ok := e.Parent(cur)
		if !ok {
			return true
		}
		if e.lines[p].Collapsed {
			return false
		}
		cur = p
	}
}

// VisibleLines returns the indices of all visible lines in document order.
func (e *Engine) VisibleLines() []int {
	v := e.visibleLines()
	out := make([]int, len(v))
	copy(out, v)
	return out
}

// visibleLines returns the cached list, rebuilding it in one pass when needed.
// While inside the block of a collapsed visible line every deeper line is
// hidden; the first line at or above its indent ends the block.
func (e *Engine) visibleLines() []int {
	if e.visible != nil {
		return e.visible
	}
	out := make([]int, 0, len(e.lines))
	hiding := false
	hideIndent := 0
	for i, l := range e.lines {
		if hiding && l.Indent > hideIndent {
			continue
		}
		hiding = false
		out = append(out, i)
		if l.Collapsed && e.HasChildren(i) {
			hiding = true
			hideIndent = l.Indent
		}
	}
	e.visible = out
	return out
}

// VisibleIndex returns the position of line i in VisibleLines, or -1.
func (e *Engine) VisibleIndex(i int) int {
	for n, idx := range e.visibleLines() {
		if idx == i {
			return n
		}
		if idx > i {
			break
		}
	}
	return -1
}

// PreviousVisibleLine returns the visible line before i.
func (e *Engine) PreviousVisibleLine(i int) (int, bool) {
	n := e.VisibleIndex(i)
	if n <= 0 {
		return -1, false
	}
	return e.visibleLines()[n-1], true
}

// NextVisibleLine returns the visible line after i.
func (e *Engine) NextVisibleLine(i int) (int, bool) {
	v := e.visibleLines()
	n := e.VisibleIndex(i)
	if n == -1 || n >= len(v)-1 {
		return -1, false
	}
	return v[n+1], true
}
