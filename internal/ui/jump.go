package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/search"
)

const jumpListSize = 6

// JumpPrompt jumps to a line by fuzzy matching its text
type JumpPrompt struct {
	active   bool
	input    *LineInput
	lines    []model.Line
	hits     []search.LineHit
	selected int
}

// NewJumpPrompt creates an inactive prompt
func NewJumpPrompt() *JumpPrompt {
	return &JumpPrompt{input: NewLineInput(nil)}
}

// Open starts the prompt over a copy of the document lines
func (j *JumpPrompt) Open(lines []model.Line) {
	j.active = true
	j.lines = lines
	j.input.Reset()
	j.hits = nil
	j.selected = 0
}

// IsActive returns whether the prompt is shown
func (j *JumpPrompt) IsActive() bool {
	return j.active
}

// Hits returns the current candidates, best first
func (j *JumpPrompt) Hits() []search.LineHit {
	return j.hits
}

// Height returns the rows used by the prompt and its candidate list
func (j *JumpPrompt) Height() int {
	if !j.active {
		return 0
	}
	return 1 + min(len(j.hits), jumpListSize)
}

// HandleKey processes a key. When done is true the prompt closed; line is
// the chosen line index, or -1 when cancelled or nothing matched.
func (j *JumpPrompt) HandleKey(ev *tcell.EventKey) (line int, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		j.active = false
		return -1, true
	case tcell.KeyEnter:
		j.active = false
		if len(j.hits) == 0 {
			return -1, true
		}
		return j.hits[j.selected].Line, true
	case tcell.KeyUp, tcell.KeyCtrlP:
		if j.selected > 0 {
			j.selected--
		}
		return -1, false
	case tcell.KeyDown, tcell.KeyCtrlN:
		if j.selected < min(len(j.hits), jumpListSize)-1 {
			j.selected++
		}
		return -1, false
	}
	if j.input.HandleKey(ev) {
		j.hits = search.FuzzyLines(j.lines, j.input.Text())
		j.selected = 0
	}
	return -1, false
}

// Render draws the candidates above row y and the prompt on row y. It
// returns the cursor column.
func (j *JumpPrompt) Render(screen *Screen, y int) int {
	if !j.active {
		return -1
	}
	n := min(len(j.hits), jumpListSize)
	for i := 0; i < n; i++ {
		row := y - n + i
		style := screen.HelpStyle()
		if i == j.selected {
			style = screen.SelectionStyle()
		}
		screen.FillRow(0, row, style)
		label := fmt.Sprintf("%4d  %s", j.hits[i].Line+1, j.hits[i].Text)
		screen.DrawStringLimited(0, row, label, screen.GetWidth(), style)
	}
	x := screen.DrawString(0, y, "Jump: ", screen.SearchLabelStyle())
	return j.input.Render(screen, x, y, screen.GetWidth()-x, screen.SearchTextStyle())
}
