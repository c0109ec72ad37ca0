package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/outline"
	"github.com/pstuifzand/outline-engine/internal/search"
)

const (
	indentWidth = 2
	markerWidth = 2

	markerLeaf      = '•'
	markerExpanded  = '▾'
	markerCollapsed = '▸'
)

// DocumentView renders the visible lines of an outline with tree markers,
// selection and search highlights. Scroll offsets are kept in the engine so
// they travel with snapshots.
type DocumentView struct {
	doc     *outline.Engine
	session *search.Session
}

// NewDocumentView creates a view of doc. session may be nil.
func NewDocumentView(doc *outline.Engine, session *search.Session) *DocumentView {
	return &DocumentView{doc: doc, session: session}
}

// textStart returns the first column of a line's text
func textStart(l model.Line) int {
	return l.Indent*indentWidth + markerWidth
}

// AttachmentLabel is how an attachment line is drawn
func AttachmentLabel(att *model.Attachment) string {
	name := att.Name
	if name == "" {
		name = att.Src
	}
	return "[" + name + "]"
}

// lineCells returns the runes drawn for the body of a line
func lineCells(l model.Line) []rune {
	if l.Attachment != nil {
		return []rune(AttachmentLabel(l.Attachment))
	}
	return []rune(l.Text)
}

// caretColumn returns the column of caret char relative to the text start
func caretColumn(l model.Line, char int) int {
	if l.Attachment != nil {
		if char > 0 {
			return StringWidth(AttachmentLabel(l.Attachment))
		}
		return 0
	}
	return ColumnOf([]rune(l.Text), char)
}

// ScrollToCursor adjusts the scroll offsets so the caret is inside a viewport
// of width x height cells.
func (v *DocumentView) ScrollToCursor(width, height int) {
	if height <= 0 {
		return
	}
	top64, left64 := v.doc.Scroll()
	top, left := int(top64), int(left64)
	cur := v.doc.Cursor()

	row := v.doc.VisibleIndex(cur.Line)
	if row < 0 {
		row = 0
	}
	if row < top {
		top = row
	}
	if row >= top+height {
		top = row - height + 1
	}
	if maxTop := len(v.doc.VisibleLines()) - height; top > maxTop {
		top = max(maxTop, 0)
	}

	l, _ := v.doc.Line(cur.Line)
	avail := width - textStart(l)
	col := caretColumn(l, cur.Char)
	if col < left {
		left = col
	}
	if avail > 0 && col >= left+avail {
		left = col - avail + 1
	}

	if top != int(top64) || left != int(left64) {
		v.doc.SetScroll(float64(top), float64(left))
	}
}

// RowAt returns the line index drawn at screen row y of a view starting at
// y0, or -1.
func (v *DocumentView) RowAt(y0, y int) int {
	top, _ := v.doc.Scroll()
	visible := v.doc.VisibleLines()
	n := int(top) + y - y0
	if y < y0 || n < 0 || n >= len(visible) {
		return -1
	}
	return visible[n]
}

// Render draws rows [y0, y0+height) and returns the screen position of the
// caret, or -1, -1 when it is scrolled out of view.
func (v *DocumentView) Render(screen *Screen, y0, height int) (cx, cy int) {
	width := screen.GetWidth()
	v.ScrollToCursor(width, height)

	top64, left64 := v.doc.Scroll()
	top, left := int(top64), int(left64)
	visible := v.doc.VisibleLines()
	cur := v.doc.Cursor()
	sel, hasSel := v.doc.NormalizedSelection()
	if hasSel && sel.IsEmpty() {
		hasSel = false
	}
	hits, active := v.matchesByLine()

	cx, cy = -1, -1
	base := screen.LineStyle()
	for row := 0; row < height; row++ {
		y := y0 + row
		screen.FillRow(0, y, base)
		n := top + row
		if n >= len(visible) {
			continue
		}
		i := visible[n]
		l, _ := v.doc.Line(i)

		x := l.Indent * indentWidth
		hasChildren := v.doc.HasChildren(i)
		marker := markerLeaf
		if hasChildren {
			marker = markerExpanded
			if l.Collapsed {
				marker = markerCollapsed
			}
		}
		screen.SetCell(x, y, marker, screen.MarkerStyle(hasChildren, l.Collapsed))

		start := textStart(l)
		textStyle := base
		if l.Attachment != nil {
			textStyle = screen.AttachmentStyle()
		}
		v.drawBody(screen, l, i, y, start, left, textStyle, hasSel, sel, hits[i], active)

		if i == cur.Line {
			x := start + caretColumn(l, cur.Char) - left
			if x >= start && x < width {
				cx, cy = x, y
			}
		}
	}
	return cx, cy
}

func (v *DocumentView) drawBody(screen *Screen, l model.Line, i, y, start, left int, style tcell.Style,
	hasSel bool, sel model.Selection, hits []search.Match, active *search.Match) {
	width := screen.GetWidth()
	col := 0
	for c, r := range lineCells(l) {
		cell, w := cellRune(r)
		char := c
		if l.Attachment != nil {
			char = 0
		}
		x := start + col - left
		col += w
		if w == 0 || x < start {
			continue
		}
		if x+w > width {
			break
		}

		st := style
		p := model.Point{Line: i, Char: char}
		if hasSel && model.ComparePoints(p, sel.Start) >= 0 && model.ComparePoints(p, sel.End) < 0 {
			st = screen.SelectionStyle()
		}
		for _, m := range hits {
			if char >= m.Start && char < m.End {
				st = screen.MatchStyle()
				if active != nil && active.Line == i && active.Start == m.Start {
					st = screen.ActiveMatchStyle()
				}
				break
			}
		}
		screen.SetCell(x, y, cell, st)
	}
}

func (v *DocumentView) matchesByLine() (map[int][]search.Match, *search.Match) {
	if v.session == nil || !v.session.IsOpen() {
		return nil, nil
	}
	byLine := make(map[int][]search.Match)
	for _, m := range v.session.Matches() {
		byLine[m.Line] = append(byLine[m.Line], m)
	}
	if m, ok := v.session.ActiveMatch(); ok {
		return byLine, &m
	}
	return byLine, nil
}
