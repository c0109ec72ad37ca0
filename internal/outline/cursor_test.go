package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/model"
)

func TestSetCursorClamps(t *testing.T) {
	e := newEngine(line("abc", 0), line("de", 0))

	e.SetCursor(5, 10)
	assert.Equal(t, pt(1, 2), e.Cursor())

	e.SetCursor(-1, -3)
	assert.Equal(t, pt(0, 0), e.Cursor())

	e.SetCursor(0, 99)
	assert.Equal(t, pt(0, 3), e.Cursor())
}

func TestSetCursorResetsSelection(t *testing.T) {
	e := newEngine(line("abc", 0), line("de", 0))
	e.SetSelection(pt(0, 0), pt(1, 1))
	require.True(t, e.HasSelection())

	e.SetCursor(0, 1, KeepSelection())
	assert.True(t, e.HasSelection())

	e.SetCursor(0, 1)
	assert.False(t, e.HasSelection())
	_, ok := e.Selection()
	assert.False(t, ok)
}

func TestNormalizedSelection(t *testing.T) {
	e := newEngine(line("abc", 0), line("de", 0))

	e.SetSelection(pt(1, 1), pt(0, 2))
	a, ok := e.NormalizedSelection()
	require.True(t, ok)
	assert.Equal(t, model.Selection{Start: pt(0, 2), End: pt(1, 1)}, a)

	e.SetSelection(pt(0, 2), pt(1, 1))
	b, ok := e.NormalizedSelection()
	require.True(t, ok)
	assert.Equal(t, a, b)
	assert.LessOrEqual(t, model.ComparePoints(b.Start, b.End), 0)
}

func TestSelectAll(t *testing.T) {
	e := newEngine(line("abc", 0), line("de", 1))
	e.SelectAll()

	sel, ok := e.NormalizedSelection()
	require.True(t, ok)
	assert.Equal(t, model.Selection{Start: pt(0, 0), End: pt(1, 2)}, sel)
	assert.Equal(t, pt(1, 2), e.Cursor())
	assert.Equal(t, "abc\nde", e.SelectedText())
}

func TestSelectedTextAcrossLines(t *testing.T) {
	e := newEngine(line("hello", 0), line("world", 0), line("again", 0))
	e.SetSelection(pt(2, 3), pt(0, 2))
	assert.Equal(t, "llo\nworld\naga", e.SelectedText())
}

func TestMoveHorizontal(t *testing.T) {
	e := newEngine(line("ab", 0), line("cd", 0))

	e.SetCursor(0, 2)
	e.MoveHorizontal(1, false)
	assert.Equal(t, pt(1, 0), e.Cursor())

	e.MoveHorizontal(-1, false)
	assert.Equal(t, pt(0, 2), e.Cursor())

	e.SetCursor(0, 0)
	e.MoveHorizontal(-1, false)
	assert.Equal(t, pt(0, 0), e.Cursor())

	e.SetCursor(1, 2)
	e.MoveHorizontal(1, false)
	assert.Equal(t, pt(1, 2), e.Cursor())
}

func TestMoveHorizontalSkipsHiddenLines(t *testing.T) {
	e := newEngine(collapsed("A", 0), line("B", 1), line("C", 0))
	e.SetCursor(0, 1)
	e.MoveHorizontal(1, false)
	assert.Equal(t, pt(2, 0), e.Cursor())
}

func TestMoveHorizontalCollapsesSelection(t *testing.T) {
	e := newEngine(line("abcdef", 0))
	e.SetSelection(pt(0, 4), pt(0, 1))

	e.MoveHorizontal(1, false)
	assert.Equal(t, pt(0, 4), e.Cursor())
	assert.False(t, e.HasSelection())

	e.SetSelection(pt(0, 4), pt(0, 1))
	e.MoveHorizontal(-1, false)
	assert.Equal(t, pt(0, 1), e.Cursor())
}

func TestExtendKeepsAnchor(t *testing.T) {
	e := newEngine(line("abcdef", 0))
	e.SetCursor(0, 2)

	e.MoveHorizontal(1, true)
	e.MoveHorizontal(1, true)
	sel, _ := e.Selection()
	assert.Equal(t, model.Selection{Start: pt(0, 2), End: pt(0, 4)}, sel)

	for i := 0; i < 3; i++ {
		e.MoveHorizontal(-1, true)
	}
	sel, _ = e.Selection()
	assert.Equal(t, model.Selection{Start: pt(0, 2), End: pt(0, 1)}, sel)

	norm, _ := e.NormalizedSelection()
	assert.Equal(t, model.Selection{Start: pt(0, 1), End: pt(0, 2)}, norm)
}

func TestMoveVerticalKeepsColumn(t *testing.T) {
	e := newEngine(line("abcdef", 0), line("ab", 0), line("abcdef", 0))
	e.SetCursor(0, 5)

	e.MoveVertical(1, false)
	assert.Equal(t, pt(1, 2), e.Cursor())

	e.MoveVertical(1, false)
	assert.Equal(t, pt(2, 5), e.Cursor())

	e.MoveVertical(10, false)
	assert.Equal(t, pt(2, 5), e.Cursor())

	e.MovePage(-1, 10, false)
	assert.Equal(t, pt(0, 5), e.Cursor())
}

func TestMoveVerticalSkipsHiddenLines(t *testing.T) {
	e := newEngine(collapsed("A", 0), line("hidden", 1), line("C", 0))
	e.MoveVertical(1, false)
	assert.Equal(t, 2, e.Cursor().Line)
}

func TestMoveVerticalFromHiddenLine(t *testing.T) {
	e := newEngine(collapsed("A", 0), line("hidden", 1), line("C", 0))
	e.SetCursor(1, 2)
	e.MoveVertical(1, false)
	assert.Equal(t, 2, e.Cursor().Line)

	e = newEngine(collapsed("A", 0), line("hidden", 1), line("C", 0))
	e.SetCursor(1, 2)
	e.MoveVertical(-1, false)
	assert.Equal(t, 0, e.Cursor().Line)
}

func TestEdgeMovement(t *testing.T) {
	e := newEngine(line("abc", 0), line("de", 0))
	e.SetCursor(0, 1)

	e.MoveToLineEdge(true, false)
	assert.Equal(t, pt(0, 3), e.Cursor())

	e.MoveToLineEdge(false, false)
	assert.Equal(t, pt(0, 0), e.Cursor())

	e.SetCursor(0, 1)
	e.MoveToDocumentEdge(true, true)
	sel, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, model.Selection{Start: pt(0, 1), End: pt(1, 2)}, sel)

	e.MoveToDocumentEdge(false, false)
	assert.Equal(t, pt(0, 0), e.Cursor())
	assert.False(t, e.HasSelection())
}

func TestMoveByWord(t *testing.T) {
	e := newEngine(line("foo bar_baz  qux", 0))

	var rights []int
	for i := 0; i < 5; i++ {
		e.MoveByWord(1, false)
		rights = append(rights, e.Cursor().Char)
	}
	assert.Equal(t, []int{3, 4, 11, 13, 16}, rights)

	var lefts []int
	for i := 0; i < 5; i++ {
		e.MoveByWord(-1, false)
		lefts = append(lefts, e.Cursor().Char)
	}
	assert.Equal(t, []int{13, 11, 4, 3, 0}, lefts)
}

func TestMoveByWordCrossesLines(t *testing.T) {
	e := newEngine(line("ab", 0), line("cd", 0))

	e.SetCursor(0, 2)
	e.MoveByWord(1, false)
	assert.Equal(t, pt(1, 2), e.Cursor())

	e.SetCursor(1, 0)
	e.MoveByWord(-1, false)
	assert.Equal(t, pt(0, 0), e.Cursor())

	e.MoveByWord(-1, false)
	assert.Equal(t, pt(0, 0), e.Cursor())
}

func TestFindWordBoundary(t *testing.T) {
	tests := []struct {
		text  string
		index int
		dir   int
		want  int
	}{
		{"hello world", 0, 1, 5},
		{"hello world", 5, 1, 6},
		{"hello world", 11, -1, 6},
		{"hello world", 6, -1, 5},
		{"a_b1 c", 0, 1, 4},
		{"日本 word", 0, 1, 3},
		{"", 0, 1, 0},
		{"", 0, -1, 0},
	}
	for _, tt := range tests {
		got := findWordBoundary([]rune(tt.text), tt.index, tt.dir)
		if got != tt.want {
			t.Errorf("findWordBoundary(%q, %d, %d): expected %d, got %d", tt.text, tt.index, tt.dir, tt.want, got)
		}
	}
}

func TestSelectRange(t *testing.T) {
	e := newEngine(line("hello", 0), line("world", 0))
	e.SelectRange(model.Selection{Start: pt(1, 3), End: pt(0, 1)})

	sel, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, pt(1, 3), sel.Start)
	assert.Equal(t, pt(0, 1), e.Cursor())
	assert.Equal(t, "ello\nwor", e.SelectedText())
}
