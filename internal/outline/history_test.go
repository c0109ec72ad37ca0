package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/model"
)

type viewState struct {
	Lines     []model.Line
	Cursor    model.Point
	Selection *model.Selection
}

func stateOf(e *Engine) viewState {
	s := viewState{Lines: e.Lines(), Cursor: e.Cursor()}
	if sel, ok := e.Selection(); ok {
		s.Selection = &sel
	}
	return s
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e := newEngine(line("first", 0), line("second", 1), line("third", 0))
	e.SetSelection(pt(0, 1), pt(0, 3))
	initial := stateOf(e)

	ops := []func(){
		func() { e.InsertText("XY") },
		func() { e.InsertLineBreak() },
		func() { e.ChangeIndent(1, IndentOptions{}) },
		func() { e.MoveLine(1) },
		func() { e.HandleBackspace() },
	}
	for _, op := range ops {
		op()
	}
	require.Equal(t, len(ops), e.UndoCount(), dump(e))
	final := stateOf(e)

	for range ops {
		require.NoError(t, e.Undo())
	}
	assert.Equal(t, initial, stateOf(e), dump(e))
	assert.False(t, e.CanUndo())

	for range ops {
		require.NoError(t, e.Redo())
	}
	assert.Equal(t, final, stateOf(e), dump(e))
	assert.False(t, e.CanRedo())
}

func TestUndoEmpty(t *testing.T) {
	e := newEngine(line("a", 0))
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
	assert.ErrorIs(t, e.Redo(), ErrNothingToRedo)
}

func TestUndoAlwaysBumpsVersion(t *testing.T) {
	e := newEngine(line("a", 0))
	e.InsertText("b")
	v := e.Version()

	require.NoError(t, e.Undo())
	assert.Greater(t, e.Version(), v)
	assert.Equal(t, 0, e.UndoCount())
	assert.Equal(t, 1, e.RedoCount())
}

func TestHistoryLimitEvictsOldest(t *testing.T) {
	e := New(WithHistoryLimit(3))
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		e.InsertText(s)
	}
	assert.Equal(t, 3, e.UndoCount())

	for e.CanUndo() {
		require.NoError(t, e.Undo())
	}
	assert.Equal(t, []string{"ab"}, texts(e))
}

func TestNewEditClearsRedo(t *testing.T) {
	e := newEngine(line("", 0))
	e.InsertText("a")
	require.NoError(t, e.Undo())
	require.True(t, e.CanRedo())

	e.InsertText("b")
	assert.False(t, e.CanRedo())
	assert.Equal(t, []string{"b"}, texts(e))
}

func TestClearHistory(t *testing.T) {
	e := newEngine(line("", 0))
	e.InsertText("a")
	e.ClearHistory()
	assert.False(t, e.CanUndo())
}
