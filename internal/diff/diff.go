// Package diff compares two outline documents by line identity.
package diff

import (
	"github.com/pstuifzand/outline-engine/internal/model"
)

// Compute compares two line lists. Lines are matched by ID, so a line whose
// text and position both changed is still reported as one modified line.
func Compute(before, after []model.Line) *Result {
	old := analyze(before)
	cur := analyze(after)

	oldByID := make(map[string]*LineData, len(old))
	for _, d := range old {
		oldByID[d.ID] = d
	}
	curByID := make(map[string]*LineData, len(cur))
	for _, d := range cur {
		curByID[d.ID] = d
	}

	result := &Result{}
	for _, d := range cur {
		prev, ok := oldByID[d.ID]
		if !ok {
			result.New = append(result.New, d)
			continue
		}
		if change := compareLines(prev, d); change != nil {
			result.Modified = append(result.Modified, change)
		}
	}
	for _, d := range old {
		if _, ok := curByID[d.ID]; !ok {
			result.Deleted = append(result.Deleted, d)
		}
	}
	return result
}

// analyze derives parent and sibling position from the indents.
func analyze(lines []model.Line) []*LineData {
	out := make([]*LineData, len(lines))
	type frame struct {
		indent   int
		id       string
		children int
	}
	// stack of open ancestors; the bottom frame is the virtual root
	stack := []frame{{indent: -1}}
	for i, l := range lines {
		for len(stack) > 1 && stack[len(stack)-1].indent >= l.Indent {
			stack = stack[:len(stack)-1]
		}
		parent := &stack[len(stack)-1]
		d := &LineData{
			ID:        l.ID,
			Text:      l.Text,
			Indent:    l.Indent,
			ParentID:  parent.id,
			Position:  parent.children,
			Index:     i,
			Collapsed: l.Collapsed,
		}
		if l.Attachment != nil {
			d.Attachment = l.Attachment.Src
		}
		parent.children++
		out[i] = d
		stack = append(stack, frame{indent: l.Indent, id: l.ID})
	}
	return out
}

// compareLines returns nil when nothing changed.
func compareLines(old, cur *LineData) *LineChange {
	change := &LineChange{
		Line:              cur,
		OldLine:           old,
		TextChanged:       old.Text != cur.Text,
		IndentChanged:     old.Indent != cur.Indent,
		Moved:             old.ParentID != cur.ParentID || old.Position != cur.Position,
		CollapsedChanged:  old.Collapsed != cur.Collapsed,
		AttachmentChanged: old.Attachment != cur.Attachment,
	}
	if !change.TextChanged && !change.IndentChanged && !change.Moved &&
		!change.CollapsedChanged && !change.AttachmentChanged {
		return nil
	}
	return change
}
