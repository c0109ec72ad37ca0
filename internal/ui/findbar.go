package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/history"
	"github.com/pstuifzand/outline-engine/internal/search"
)

type findField int

const (
	fieldQuery findField = iota
	fieldReplace
)

// FindBar is the find/replace panel drawn at the bottom of the screen. It
// edits the query and replacement of a search.Session.
//
//	Enter / Ctrl-N   next match (replace field: replace current)
//	Ctrl-P           previous match
//	Ctrl-A           replace all (replace field)
//	Tab              switch field
//	Alt-R Alt-C Alt-S toggle regex, case sensitivity, selection scope
//	Up / Down        history
//	Esc              close
type FindBar struct {
	session     *search.Session
	query       *LineInput
	replacement *LineInput
	focus       findField
	withReplace bool
}

// NewFindBar creates a find bar over s. The history lists may be nil.
func NewFindBar(s *search.Session, queries, replacements *history.List) *FindBar {
	return &FindBar{
		session:     s,
		query:       NewLineInput(queries),
		replacement: NewLineInput(replacements),
	}
}

// Session returns the search session driven by the bar
func (f *FindBar) Session() *search.Session {
	return f.session
}

// Open shows the bar, prefilled with the selected text when there is one
func (f *FindBar) Open(withReplace bool) {
	f.withReplace = withReplace
	f.focus = fieldQuery
	f.query.Reset()
	f.replacement.Reset()
	f.session.Open(search.OpenOptions{PrefillSelection: true})
	f.query.SetText(f.session.Query())
	f.replacement.SetText(f.session.Replacement())
}

// SetQuery replaces the query text and re-runs the search
func (f *FindBar) SetQuery(q string) {
	f.query.SetText(q)
	f.session.SetQuery(q)
}

// SetReplacement replaces the replacement pattern
func (f *FindBar) SetReplacement(r string) {
	f.replacement.SetText(r)
	f.session.SetReplacement(r)
}

// Close hides the bar and records both fields in their histories
func (f *FindBar) Close() {
	_ = f.query.Commit()
	if f.withReplace {
		_ = f.replacement.Commit()
	}
	f.session.Close()
}

// IsActive reports whether the bar is shown
func (f *FindBar) IsActive() bool {
	return f.session.IsOpen()
}

// Height returns the number of rows the bar needs
func (f *FindBar) Height() int {
	if !f.IsActive() {
		return 0
	}
	if f.withReplace {
		return 2
	}
	return 1
}

// HandleKey processes a key while the bar is open and returns a status
// message, if any.
func (f *FindBar) HandleKey(ev *tcell.EventKey) string {
	if ev.Modifiers()&tcell.ModAlt != 0 && ev.Key() == tcell.KeyRune {
		return f.toggle(ev.Rune())
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		f.Close()
		return ""
	case tcell.KeyTab, tcell.KeyBacktab:
		if f.withReplace {
			f.focus = 1 - f.focus
		}
		return ""
	case tcell.KeyCtrlN:
		f.session.Step(1)
		return ""
	case tcell.KeyCtrlP:
		f.session.Step(-1)
		return ""
	case tcell.KeyCtrlA:
		if f.focus != fieldReplace {
			break
		}
		_ = f.replacement.Commit()
		n := f.session.ReplaceAll()
		return fmt.Sprintf("Replaced %d match(es)", n)
	case tcell.KeyEnter:
		if f.focus == fieldReplace {
			_ = f.replacement.Commit()
			if !f.session.ReplaceCurrent() {
				return "Nothing to replace"
			}
			return ""
		}
		_ = f.query.Commit()
		f.session.Step(1)
		return ""
	}

	if f.focus == fieldReplace {
		if f.replacement.HandleKey(ev) {
			f.session.SetReplacement(f.replacement.Text())
		}
		return ""
	}
	if f.query.HandleKey(ev) {
		f.session.SetQuery(f.query.Text())
	}
	return ""
}

func (f *FindBar) toggle(r rune) string {
	switch r {
	case 'r', 'R':
		if f.session.Mode() == search.ModeRegex {
			f.session.SetMode(search.ModeLiteral)
		} else {
			f.session.SetMode(search.ModeRegex)
		}
		return "Search mode: " + f.session.Mode().String()
	case 'c', 'C':
		f.session.SetCaseSensitive(!f.session.CaseSensitive())
		if f.session.CaseSensitive() {
			return "Case sensitive"
		}
		return "Ignoring case"
	case 's', 'S':
		f.session.SetScopeToSelection(!f.session.ScopeToSelection())
		if _, ok := f.session.Scope(); ok {
			return "Searching in selection"
		}
		if f.session.ScopeToSelection() {
			return "Select text to limit the search"
		}
		return "Searching whole document"
	}
	return ""
}

// counter describes the result state, e.g. "3/12", "no matches" or the error.
func (f *FindBar) counter() (string, bool) {
	if err := f.session.Err(); err != nil {
		if errors.Is(err, search.ErrTimeout) {
			return "search timed out", true
		}
		return "invalid pattern", true
	}
	n := len(f.session.Matches())
	if f.session.Query() == "" {
		return "", false
	}
	if n == 0 {
		return "no matches", false
	}
	return fmt.Sprintf("%d/%d", f.session.ActiveIndex()+1, n), false
}

func (f *FindBar) flags() string {
	flag := func(on bool, c string) string {
		if on {
			return c
		}
		return "-"
	}
	return "[" + flag(f.session.Mode() == search.ModeRegex, ".*") +
		flag(f.session.CaseSensitive(), "Aa") +
		flag(f.session.ScopeToSelection(), "Sel") + "]"
}

// Render draws the bar starting at row y and returns the cursor position.
func (f *FindBar) Render(screen *Screen, y int) (cx, cy int) {
	if !f.IsActive() {
		return -1, -1
	}
	width := screen.GetWidth()
	labelStyle := screen.SearchLabelStyle()
	textStyle := screen.SearchTextStyle()

	// Right side: counter and flags
	status, isErr := f.counter()
	right := f.flags()
	if status != "" {
		right = status + " " + right
	}
	rightX := width - StringWidth(right)
	countStyle := screen.SearchCountStyle()
	if isErr {
		countStyle = screen.SearchErrorStyle()
	}

	screen.FillRow(0, y, textStyle)
	x := screen.DrawString(0, y, "Find: ", labelStyle)
	qx := f.query.Render(screen, x, y, rightX-x-1, textStyle)
	screen.DrawString(rightX, y, right, countStyle)
	cx, cy = qx, y

	if f.withReplace {
		ry := y + 1
		screen.FillRow(0, ry, textStyle)
		x := screen.DrawString(0, ry, "Repl: ", labelStyle)
		rx := f.replacement.Render(screen, x, ry, width-x, textStyle)
		if f.focus == fieldReplace {
			cx, cy = rx, ry
		}
	}
	return cx, cy
}
