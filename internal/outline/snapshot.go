package outline

import "github.com/pstuifzand/outline-engine/internal/model"

// capture returns a deep copy of the current state.
func (e *Engine) capture() model.Snapshot {
	s := model.Snapshot{
		Lines:      make([]model.Line, len(e.lines)),
		ScrollTop:  e.scrollTop,
		ScrollLeft: e.scrollLeft,
	}
	for i, l := range e.lines {
		s.Lines[i] = *l.Clone()
	}
	c := e.cursor
	s.Cursor = &c
	if e.selection != nil {
		sel := *e.selection
		s.Selection = &sel
	}
	return s
}

// restore replaces the whole state with s. Used by undo and redo.
func (e *Engine) restore(s model.Snapshot) {
	lines := make([]*model.Line, 0, len(s.Lines))
	for i := range s.Lines {
		lines = append(lines, s.Lines[i].Clone())
	}
	if len(lines) == 0 {
		lines = append(lines, e.newLine("", 0))
	}
	e.lines = lines
	e.restoreView(s)
	e.markChanged()
}

// restoreView applies the caret, selection and scroll parts of s, clamped
// to the current lines.
func (e *Engine) restoreView(s model.Snapshot) {
	cursor := e.cursor
	if s.Cursor != nil {
		cursor = *s.Cursor
	}
	e.cursor = e.clampPoint(cursor)
	e.selection = nil
	if s.Selection != nil {
		sel := model.Selection{Start: e.clampPoint(s.Selection.Start), End: e.clampPoint(s.Selection.End)}
		e.selection = &sel
	}
	e.anchor = nil
	e.preferredChar = -1
	e.scrollTop = s.ScrollTop
	e.scrollLeft = s.ScrollLeft
}

// ToSnapshot returns the current state in interchange form.
func (e *Engine) ToSnapshot() model.Snapshot {
	return e.capture()
}

// ApplySnapshot makes the document match s without recording history.
// Lines are reconciled by ID: lines whose ID is still present keep their
// identity and have their fields updated, missing IDs are inserted, and lines
// whose ID is absent are dropped. Empty or repeated IDs get fresh ones. A nil
// cursor in s keeps the current caret, clamped to the new document.
func (e *Engine) ApplySnapshot(s model.Snapshot) {
	existing := make(map[string]*model.Line, len(e.lines))
	position := make(map[string]int, len(e.lines))
	for i, l := range e.lines {
		existing[l.ID] = l
		position[l.ID] = i
	}

	var inserted, updated, moved int
	seen := make(map[string]bool, len(s.Lines))
	next := make([]*model.Line, 0, len(s.Lines))
	for i := range s.Lines {
		in := s.Lines[i]
		if in.ID == "" || seen[in.ID] {
			in.ID = e.newID()
		}
		seen[in.ID] = true

		l, ok := existing[in.ID]
		if !ok {
			c := in.Clone()
			c.Indent = max(0, c.Indent)
			next = append(next, c)
			inserted++
			continue
		}
		if position[in.ID] != len(next) {
			moved++
		}
		if l.Text != in.Text || l.Indent != max(0, in.Indent) || l.Collapsed != in.Collapsed || !sameAttachment(l.Attachment, in.Attachment) {
			updated++
		}
		l.Text = in.Text
		l.Indent = max(0, in.Indent)
		l.Collapsed = in.Collapsed
		l.Attachment = nil
		if in.Attachment != nil {
			att := *in.Attachment
			l.Attachment = &att
		}
		next = append(next, l)
	}
	deleted := len(e.lines) - (len(next) - inserted)
	if len(next) == 0 {
		next = append(next, e.newLine("", 0))
		inserted++
	}

	e.lines = next
	e.restoreView(s)
	e.markChanged()
	e.logger.Debug("applied snapshot",
		"version", e.version,
		"inserted", inserted,
		"updated", updated,
		"moved", moved,
		"deleted", deleted)
}

func sameAttachment(a, b *model.Attachment) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// LoadLines replaces the document with lines as one undoable edit, e.g. when
// restoring a backup or importing a file. Lines are reconciled by ID as in
// ApplySnapshot.
func (e *Engine) LoadLines(lines []model.Line) {
	e.saveHistory()
	e.ApplySnapshot(model.Snapshot{Lines: lines})
}
