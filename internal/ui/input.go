package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/history"
)

// LineInput is a single-line text field with rune-indexed editing and
// optional prompt history.
type LineInput struct {
	text    []rune
	pos     int
	history *history.List
}

// NewLineInput creates an empty input. h may be nil.
func NewLineInput(h *history.List) *LineInput {
	return &LineInput{history: h}
}

// Text returns the current input
func (in *LineInput) Text() string {
	return string(in.text)
}

// SetText replaces the input and moves the cursor to its end
func (in *LineInput) SetText(s string) {
	in.text = []rune(s)
	in.pos = len(in.text)
}

// Cursor returns the cursor position in runes
func (in *LineInput) Cursor() int {
	return in.pos
}

// Reset clears the input and stops history navigation
func (in *LineInput) Reset() {
	in.text = nil
	in.pos = 0
	if in.history != nil {
		in.history.Reset()
	}
}

// Commit records the current input in the history
func (in *LineInput) Commit() error {
	if in.history == nil {
		return nil
	}
	return in.history.Add(in.Text())
}

func (in *LineInput) deleteWordBackwards() bool {
	if in.pos == 0 {
		return false
	}
	start := in.pos
	for start > 0 && unicode.IsSpace(in.text[start-1]) {
		start--
	}
	for start > 0 && !unicode.IsSpace(in.text[start-1]) {
		start--
	}
	in.text = append(in.text[:start], in.text[in.pos:]...)
	in.pos = start
	return true
}

func (in *LineInput) browse(older bool) bool {
	if in.history == nil {
		return false
	}
	var (
		entry string
		ok    bool
	)
	if older {
		if !in.history.IsNavigating() {
			in.history.SetTemporary(in.Text())
		}
		entry, ok = in.history.Previous()
	} else {
		entry, ok = in.history.Next()
	}
	if !ok {
		return false
	}
	in.SetText(entry)
	return true
}

// HandleKey applies an editing key and reports whether the text changed.
// Keys the input does not use are ignored.
func (in *LineInput) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if in.pos == 0 {
			return false
		}
		in.text = append(in.text[:in.pos-1], in.text[in.pos:]...)
		in.pos--
		return true
	case tcell.KeyDelete:
		if in.pos >= len(in.text) {
			return false
		}
		in.text = append(in.text[:in.pos], in.text[in.pos+1:]...)
		return true
	case tcell.KeyCtrlW:
		return in.deleteWordBackwards()
	case tcell.KeyCtrlU:
		changed := in.pos > 0
		in.text = in.text[in.pos:]
		in.pos = 0
		return changed
	case tcell.KeyCtrlK:
		changed := in.pos < len(in.text)
		in.text = in.text[:in.pos]
		return changed
	case tcell.KeyLeft:
		if in.pos > 0 {
			in.pos--
		}
	case tcell.KeyRight:
		if in.pos < len(in.text) {
			in.pos++
		}
	case tcell.KeyHome:
		in.pos = 0
	case tcell.KeyEnd:
		in.pos = len(in.text)
	case tcell.KeyUp:
		return in.browse(true)
	case tcell.KeyDown:
		return in.browse(false)
	case tcell.KeyRune:
		r := ev.Rune()
		in.text = append(in.text[:in.pos], append([]rune{r}, in.text[in.pos:]...)...)
		in.pos++
		return true
	}
	return false
}

// Render draws the input in columns [x, x+width) and returns the terminal
// column of the cursor. The text scrolls so the cursor stays visible.
func (in *LineInput) Render(screen *Screen, x, y, width int, style tcell.Style) int {
	if width <= 0 {
		return -1
	}
	start := 0
	for ColumnOf(in.text, in.pos)-ColumnOf(in.text, start) >= width {
		start++
	}
	col := x
	for _, r := range in.text[start:] {
		cell, w := cellRune(r)
		if col+w > x+width {
			break
		}
		if w > 0 {
			screen.SetCell(col, y, cell, style)
		}
		col += w
	}
	for ; col < x+width; col++ {
		screen.SetCell(col, y, ' ', style)
	}
	return x + ColumnOf(in.text, in.pos) - ColumnOf(in.text, start)
}
