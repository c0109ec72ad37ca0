package outline

import "github.com/pstuifzand/outline-engine/internal/model"

// history holds bounded undo and redo stacks of full-state snapshots.
type history struct {
	undoStack []model.Snapshot
	redoStack []model.Snapshot
	limit     int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &history{limit: limit}
}

// push records a new undo entry, evicting the oldest past the limit, and
// clears the redo stack.
func (h *history) push(s model.Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if excess := len(h.undoStack) - h.limit; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
	h.redoStack = nil
}

func pop(stack *[]model.Snapshot) model.Snapshot {
	s := (*stack)[len(*stack)-1]
	*stack = (*stack)[:len(*stack)-1]
	return s
}

// saveHistory records the current state before a mutation.
func (e *Engine) saveHistory() {
	e.history.push(e.capture())
}

// Undo restores the state before the last recorded mutation.
func (e *Engine) Undo() error {
	if len(e.history.undoStack) == 0 {
		return ErrNothingToUndo
	}
	current := e.capture()
	s := pop(&e.history.undoStack)
	e.history.redoStack = append(e.history.redoStack, current)
	e.restore(s)
	e.logger.Debug("undo", "version", e.version, "undo", len(e.history.undoStack), "redo", len(e.history.redoStack))
	return nil
}

// Redo reapplies the last undone mutation.
func (e *Engine) Redo() error {
	if len(e.history.redoStack) == 0 {
		return ErrNothingToRedo
	}
	current := e.capture()
	s := pop(&e.history.redoStack)
	e.history.undoStack = append(e.history.undoStack, current)
	e.restore(s)
	e.logger.Debug("redo", "version", e.version, "undo", len(e.history.undoStack), "redo", len(e.history.redoStack))
	return nil
}

// CanUndo reports whether Undo has anything to restore.
func (e *Engine) CanUndo() bool {
	return len(e.history.undoStack) > 0
}

// CanRedo reports whether Redo has anything to restore.
func (e *Engine) CanRedo() bool {
	return len(e.history.redoStack) > 0
}

// UndoCount returns the number of undo entries.
func (e *Engine) UndoCount() int {
	return len(e.history.undoStack)
}

// RedoCount returns the number of redo entries.
func (e *Engine) RedoCount() int {
	return len(e.history.redoStack)
}

// ClearHistory drops both stacks.
func (e *Engine) ClearHistory() {
	e.history.undoStack = nil
	e.history.redoStack = nil
}
