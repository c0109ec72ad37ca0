package model

// Snapshot is the serialisable full state of a document: lines, caret,
// selection and scroll offsets. It is used both for undo and for sync.
type Snapshot struct {
	Lines      []Line     `json:"lines"`
	Cursor     *Point     `json:"cursor"`
	Selection  *Selection `json:"selection"`
	ScrollTop  float64    `json:"scrollTop"`
	ScrollLeft float64    `json:"scrollLeft"`
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Lines:      make([]Line, len(s.Lines)),
		ScrollTop:  s.ScrollTop,
		ScrollLeft: s.ScrollLeft,
	}
	for i := range s.Lines {
		c.Lines[i] = *s.Lines[i].Clone()
	}
	if s.Cursor != nil {
		p := *s.Cursor
		c.Cursor = &p
	}
	if s.Selection != nil {
		sel := *s.Selection
		c.Selection = &sel
	}
	return c
}

// LineEdit replaces the whole text of the line at index Line
type LineEdit struct {
	Line int
	Text string
}
