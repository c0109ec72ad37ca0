package outline

import (
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// InsertText inserts text at the caret, replacing the selection if any.
// Newlines split the current line; new lines inherit its indent and the last
// one receives the original tail. The caret ends after the inserted text.
func (e *Engine) InsertText(text string) {
	if text == "" {
		return
	}
	text = normalizeNewlines(text)
	e.saveHistory()
	if e.selection != nil {
		e.collapseSelection()
	}

	c := e.cursor
	line := e.lines[c.Line]
	parts := strings.Split(text, "\n")
	last := parts[len(parts)-1]

	if line.IsAtomic() {
		at := c.Line
		if c.Char != 0 {
			at++
		}
		for _, part := range parts {
			e.insertLine(at, e.newLine(part, line.Indent))
			at++
		}
		e.markChanged()
		e.SetCursor(at-1, runeLen(last))
		return
	}

	head, tail := headOf(line, c.Char), tailOf(line, c.Char)
	if len(parts) == 1 {
		line.Text = head + text + tail
		e.markChanged()
		e.SetCursor(c.Line, c.Char+runeLen(text))
		return
	}

	line.Text = head + parts[0]
	at := c.Line + 1
	for i := 1; i < len(parts); i++ {
		t := parts[i]
		if i == len(parts)-1 {
			t += tail
		}
		e.insertLine(at, e.newLine(t, line.Indent))
		at++
	}
	e.markChanged()
	e.SetCursor(at-1, runeLen(last))
}

// InsertLineBreak splits the current line at the caret. The new line keeps
// the indent of the original.
func (e *Engine) InsertLineBreak() {
	e.insertLineBreak(-1)
}

// InsertLineBreakWithIndent splits the current line and gives the new line
// the given indent.
func (e *Engine) InsertLineBreakWithIndent(indent int) {
	e.insertLineBreak(max(0, indent))
}

func (e *Engine) insertLineBreak(indent int) {
	e.saveHistory()
	if e.selection != nil {
		e.collapseSelection()
	}
	c := e.cursor
	line := e.lines[c.Line]
	if indent < 0 {
		indent = line.Indent
	}

	if line.IsAtomic() {
		at := c.Line
		if c.Char != 0 {
			at++
		}
		e.insertLine(at, e.newLine("", indent))
		e.markChanged()
		e.SetCursor(at, 0)
		return
	}

	tail := tailOf(line, c.Char)
	line.Text = headOf(line, c.Char)
	e.insertLine(c.Line+1, e.newLine(tail, indent))
	e.markChanged()
	e.SetCursor(c.Line+1, 0)
}

// InsertAttachment inserts an attachment line at the caret. An empty text
// line is replaced outright; otherwise the current line is split around the
// caret and the attachment goes in between. Attachments without a source are
// ignored.
func (e *Engine) InsertAttachment(att model.Attachment) {
	if att.Src == "" {
		return
	}
	e.saveHistory()
	if e.selection != nil {
		e.collapseSelection()
	}

	c := e.cursor
	cur := e.lines[c.Line]
	at := c.Line + 1
	var tailLine *model.Line

	if cur.IsAtomic() {
		if c.Char == 0 {
			at = c.Line
		}
	} else {
		head, tail := headOf(cur, c.Char), tailOf(cur, c.Char)
		if head == "" && tail == "" {
			img := model.NewAttachmentLine(att, cur.Indent)
			img.ID = e.newID()
			e.lines[c.Line] = img
			e.markChanged()
			e.SetCursor(c.Line, img.Len())
			return
		}
		cur.Text = head
		if tail != "" {
			tailLine = e.newLine(tail, cur.Indent)
		}
	}

	img := model.NewAttachmentLine(att, cur.Indent)
	img.ID = e.newID()
	e.insertLine(at, img)
	if tailLine != nil {
		e.insertLine(at+1, tailLine)
	}
	e.markChanged()
	if tailLine != nil {
		e.SetCursor(at+1, 0)
		return
	}
	e.SetCursor(at, img.Len())
}

// InsertBracketPair wraps the selection in "[" and "]", or inserts "[]" and
// places the caret between them.
func (e *Engine) InsertBracketPair() {
	e.saveHistory()
	if e.selection != nil {
		extracted := e.SelectedText()
		e.collapseSelection()
		c := e.cursor
		line := e.lines[c.Line]
		if line.IsAtomic() {
			return
		}
		line.Text = headOf(line, c.Char) + "[" + extracted + "]" + tailOf(line, c.Char)
		e.markChanged()
		e.SetCursor(c.Line, c.Char+runeLen(extracted)+2)
		return
	}
	c := e.cursor
	line := e.lines[c.Line]
	if line.IsAtomic() {
		return
	}
	line.Text = headOf(line, c.Char) + "[]" + tailOf(line, c.Char)
	e.markChanged()
	e.SetCursor(c.Line, c.Char+1)
}

// HandleBackspace deletes backwards from the caret. At column 0 an indented
// line is outdented first; an unindented line is merged into the previous
// line. Descendants of a merged line stay where they are with their indent.
func (e *Engine) HandleBackspace() {
	if e.DeleteSelection() {
		return
	}
	c := e.cursor
	line := e.lines[c.Line]

	if line.IsAtomic() {
		if c.Char == 0 && line.Indent > 0 {
			e.ChangeIndent(-1, IndentOptions{})
			return
		}
		if c.Line == 0 {
			return
		}
		e.saveHistory()
		e.removeLines(c.Line, c.Line+1)
		e.markChanged()
		target := c.Line - 1
		e.SetCursor(target, e.lines[target].Len())
		return
	}

	if c.Char > 0 {
		e.saveHistory()
		line.Text = headOf(line, c.Char-1) + tailOf(line, c.Char)
		e.markChanged()
		e.SetCursor(c.Line, c.Char-1)
		return
	}

	if c.Line > 0 && e.lines[c.Line-1].IsAtomic() {
		e.saveHistory()
		e.removeLines(c.Line-1, c.Line)
		e.markChanged()
		e.SetCursor(c.Line-1, 0)
		return
	}

	if line.Indent > 0 {
		e.ChangeIndent(-1, IndentOptions{})
		return
	}
	if c.Line == 0 {
		return
	}

	e.saveHistory()
	prev := e.lines[c.Line-1]
	prevLen := prev.Len()
	prev.Text += line.Text
	e.removeLines(c.Line, c.Line+1)
	e.markChanged()
	e.SetCursor(c.Line-1, prevLen)
}

// HandleDelete deletes forwards from the caret. At the end of a line the next
// line's text is pulled into the current line and the next line is removed.
// Lines nested under the removed line keep their indent.
func (e *Engine) HandleDelete() {
	if e.DeleteSelection() {
		return
	}
	c := e.cursor
	line := e.lines[c.Line]

	if line.IsAtomic() {
		e.saveHistory()
		e.removeLines(c.Line, c.Line+1)
		e.markChanged()
		if len(e.lines) == 0 {
			e.lines = append(e.lines, e.newLine("", 0))
			e.SetCursor(0, 0)
			return
		}
		target := min(c.Line, len(e.lines)-1)
		e.SetCursor(target, c.Char)
		return
	}

	if c.Char < line.Len() {
		e.saveHistory()
		line.Text = headOf(line, c.Char) + tailOf(line, c.Char+1)
		e.markChanged()
		return
	}
	if c.Line >= len(e.lines)-1 {
		return
	}

	e.saveHistory()
	next := e.lines[c.Line+1]
	if !next.IsAtomic() {
		line.Text += next.Text
	}
	e.removeLines(c.Line+1, c.Line+2)
	e.markChanged()
}

// DeleteSelection deletes the selected range. It reports whether anything was
// deleted; an empty selection is cleared and counts as no selection.
func (e *Engine) DeleteSelection() bool {
	if e.selection == nil {
		return false
	}
	if e.selection.IsEmpty() {
		e.ClearSelection()
		return false
	}
	e.saveHistory()
	e.collapseSelection()
	return true
}

// collapseSelection removes the selected range without recording history.
// The unselected head of the first line and tail of the last line are joined
// into the first line. An attachment only disappears when fully selected.
func (e *Engine) collapseSelection() {
	if e.selection == nil {
		return
	}
	sel := e.selection.Normalize()
	start, end := e.clampPoint(sel.Start), e.clampPoint(sel.End)
	first, last := e.lines[start.Line], e.lines[end.Line]

	if start.Line == end.Line {
		switch {
		case !first.IsAtomic():
			first.Text = headOf(first, start.Char) + tailOf(first, end.Char)
		case start.Char == 0 && end.Char == 1:
			first.Attachment = nil
			first.Text = ""
		}
	} else {
		tail := tailOf(last, end.Char)
		keepFirst := first.IsAtomic() && start.Char == 1
		keepLast := last.IsAtomic() && end.Char == 0

		switch {
		case keepFirst:
		case first.IsAtomic():
			first.Attachment = nil
			first.Text = tail
		default:
			first.Text = headOf(first, start.Char) + tail
		}

		removeTo := end.Line + 1
		if keepLast {
			removeTo = end.Line
		}
		e.removeLines(start.Line+1, removeTo)
		if keepFirst && tail != "" {
			e.insertLine(start.Line+1, e.newLine(tail, first.Indent))
		}
	}

	e.markChanged()
	e.SetCursor(start.Line, start.Char)
}

// ReplaceLineTexts replaces the text of several lines as one undoable step.
// Edits that target attachment lines, out-of-range lines, or that would not
// change the text are skipped. It reports whether anything changed.
func (e *Engine) ReplaceLineTexts(edits []model.LineEdit) bool {
	var apply []model.LineEdit
	for _, ed := range edits {
		if !e.valid(ed.Line) || e.lines[ed.Line].IsAtomic() || e.lines[ed.Line].Text == ed.Text {
			continue
		}
		apply = append(apply, ed)
	}
	if len(apply) == 0 {
		return false
	}
	e.saveHistory()
	for _, ed := range apply {
		e.lines[ed.Line].Text = ed.Text
	}
	e.markChanged()
	e.cursor = e.clampPoint(e.cursor)
	if e.selection != nil {
		sel := model.Selection{Start: e.clampPoint(e.selection.Start), End: e.clampPoint(e.selection.End)}
		e.selection = &sel
	}
	if e.anchor != nil {
		a := e.clampPoint(*e.anchor)
		e.anchor = &a
	}
	return true
}

// AppendLine adds text as new lines at the end of the document without moving
// the caret. The indent is clamped so the new line is at most one level below
// the current last line. A trailing empty placeholder line is reused.
func (e *Engine) AppendLine(text string, indent int) {
	parts := strings.Split(normalizeNewlines(text), "\n")
	e.saveHistory()

	last := e.lines[len(e.lines)-1]
	at := len(e.lines)
	if len(e.lines) == 1 && !last.IsAtomic() && last.Text == "" {
		e.removeLines(0, 1)
		at = 0
		indent = 0
	} else {
		indent = clamp(indent, 0, last.Indent+1)
	}
	for _, part := range parts {
		e.insertLine(at, e.newLine(part, indent))
		at++
	}
	e.markChanged()
	e.cursor = e.clampPoint(e.cursor)
}
