package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/history"
)

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active bool
	input  *LineInput
}

// NewCommandMode creates a command line. h may be nil for no history.
func NewCommandMode(h *history.List) *CommandMode {
	return &CommandMode{input: NewLineInput(h)}
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.input.Reset()
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// HandleKey processes a key press in command mode. done is true when the
// command line closed; command is empty when it was cancelled.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(c.input.Text())
		c.input.SetText(cmd)
		_ = c.input.Commit()
		c.Stop()
		return cmd, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.input.Text() == "" {
			// Backspace on an empty line leaves command mode
			c.Stop()
			return "", true
		}
	}
	c.input.HandleKey(ev)
	return "", false
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.input.Text())
}

// Render renders the command line and returns the cursor column
func (c *CommandMode) Render(screen *Screen, y int) int {
	if !c.active {
		return -1
	}
	x := screen.DrawString(0, y, ":", screen.SearchLabelStyle())
	return c.input.Render(screen, x, y, screen.GetWidth()-x, screen.SearchTextStyle())
}
