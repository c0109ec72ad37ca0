package outline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/model"
)

func TestSnapshotJSONShape(t *testing.T) {
	e := newEngine(line("a", 0))
	data, err := json.Marshal(e.ToSnapshot())
	require.NoError(t, err)

	s := string(data)
	for _, key := range []string{`"lines"`, `"id":"line-1"`, `"indent":0`, `"collapsed":false`, `"lineIndex":0`, `"charIndex":0`, `"selection":null`, `"scrollTop":0`, `"scrollLeft":0`} {
		assert.Contains(t, s, key)
	}
	assert.NotContains(t, s, "attachment")
}

func TestApplySnapshotReconcilesByID(t *testing.T) {
	e := newEngine(line("a", 0), line("b", 0), line("c", 0))
	ptrB, ptrC := e.lines[1], e.lines[2]
	undo := e.UndoCount()
	v := e.Version()

	e.ApplySnapshot(model.Snapshot{
		Lines: []model.Line{
			{ID: "line-3", Text: "c", Indent: 0},
			{ID: "line-2", Text: "B!", Indent: 1, Collapsed: true},
			{ID: "remote-1", Text: "d", Indent: -2},
		},
	})

	require.Equal(t, 3, e.LineCount(), dump(e))
	assert.Same(t, ptrC, e.lines[0])
	assert.Same(t, ptrB, e.lines[1])
	assert.Equal(t, "B!", ptrB.Text)
	assert.Equal(t, 1, ptrB.Indent)
	assert.True(t, ptrB.Collapsed)
	assert.Equal(t, "remote-1", e.lines[2].ID)
	assert.Equal(t, 0, e.lines[2].Indent)

	assert.Greater(t, e.Version(), v)
	assert.Equal(t, undo, e.UndoCount())
}

func TestApplySnapshotKeepsAtLeastOneLine(t *testing.T) {
	e := newEngine(line("a", 0))
	e.ApplySnapshot(model.Snapshot{})
	require.Equal(t, 1, e.LineCount())
	l, _ := e.Line(0)
	assert.Equal(t, "", l.Text)
	assert.NotEmpty(t, l.ID)
}

func TestApplySnapshotRepairsIDs(t *testing.T) {
	e := newEngine(line("a", 0))
	e.ApplySnapshot(model.Snapshot{
		Lines: []model.Line{
			{ID: "x", Text: "one"},
			{ID: "x", Text: "two"},
			{Text: "three"},
		},
	})

	ids := map[string]bool{}
	for _, l := range e.Lines() {
		assert.NotEmpty(t, l.ID)
		ids[l.ID] = true
	}
	assert.Len(t, ids, 3)
	assert.Equal(t, []string{"one", "two", "three"}, texts(e))
}

func TestApplySnapshotClampsView(t *testing.T) {
	e := newEngine(line("abc", 0), line("def", 0), line("ghi", 0))
	e.SetCursor(2, 1)

	e.ApplySnapshot(model.Snapshot{Lines: []model.Line{{ID: "line-1", Text: "x"}}})
	assert.Equal(t, pt(0, 1), e.Cursor())

	e.ApplySnapshot(model.Snapshot{
		Lines:      []model.Line{{ID: "line-1", Text: "xyz"}},
		Cursor:     &model.Point{Line: 4, Char: 9},
		Selection:  &model.Selection{Start: pt(0, 0), End: pt(3, 3)},
		ScrollTop:  12,
		ScrollLeft: 3,
	})
	assert.Equal(t, pt(0, 3), e.Cursor())
	sel, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, model.Selection{Start: pt(0, 0), End: pt(0, 3)}, sel)
	top, left := e.Scroll()
	assert.Equal(t, 12.0, top)
	assert.Equal(t, 3.0, left)
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := newEngine(line("a", 0), line("b", 1), attachment(2))
	src.SetSelection(pt(0, 0), pt(1, 1))

	dst := New()
	dst.ApplySnapshot(src.ToSnapshot())
	assert.Equal(t, src.Lines(), dst.Lines())
	assert.Equal(t, src.Cursor(), dst.Cursor())
}

func TestOnChange(t *testing.T) {
	e := newEngine(line("a", 0))
	var seen []uint64
	e.OnChange(func(v uint64) { seen = append(seen, v) })

	e.InsertText("b")
	e.ChangeIndent(-1, IndentOptions{})
	require.NoError(t, e.Undo())

	assert.Equal(t, []uint64{1, 2}, seen)
}

func TestLoadLinesIsUndoable(t *testing.T) {
	e := newEngine(line("a", 0), line("b", 0))
	before := e.Lines()

	e.LoadLines([]model.Line{{Text: "x"}, {Text: "y", Indent: 1}})
	assert.Equal(t, []string{"x", "y"}, texts(e))
	assert.True(t, e.CanUndo())

	require.NoError(t, e.Undo())
	assert.Equal(t, before, e.Lines())
}
