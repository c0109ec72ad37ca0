package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/outline"
)

// KeyBinding represents a key binding with its description and handler.
// Shift is not part of a binding: it is passed to the handler as extend.
type KeyBinding struct {
	Key         tcell.Key
	Rune        rune // for tcell.KeyRune bindings
	Mod         tcell.ModMask
	Label       string
	Description string
	Handler     func(app *App, extend bool)
}

// Matches reports whether ev triggers the binding
func (kb *KeyBinding) Matches(ev *tcell.EventKey) bool {
	mod := ev.Modifiers() &^ tcell.ModShift
	key := ev.Key()
	// Ctrl-letter keys arrive with ModCtrl already set
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}
	if key != kb.Key || mod != kb.Mod {
		return false
	}
	return key != tcell.KeyRune || ev.Rune() == kb.Rune
}

// GetKey returns the label shown in the help screen
func (kb *KeyBinding) GetKey() string {
	return kb.Label
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

func move(fn func(e *outline.Engine, extend bool)) func(*App, bool) {
	return func(app *App, extend bool) {
		fn(app.doc, extend)
	}
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{Key: tcell.KeyLeft, Label: "Left", Description: "Move left",
			Handler: move(func(e *outline.Engine, x bool) { e.MoveHorizontal(-1, x) })},
		{Key: tcell.KeyRight, Label: "Right", Description: "Move right",
			Handler: move(func(e *outline.Engine, x bool) { e.MoveHorizontal(1, x) })},
		{Key: tcell.KeyUp, Label: "Up", Description: "Move up",
			Handler: move(func(e *outline.Engine, x bool) { e.MoveVertical(-1, x) })},
		{Key: tcell.KeyDown, Label: "Down", Description: "Move down",
			Handler: move(func(e *outline.Engine, x bool) { e.MoveVertical(1, x) })},
		{Key: tcell.KeyLeft, Mod: tcell.ModCtrl, Label: "Ctrl-Left", Description: "Previous word",
			Handler: move(func(e *outline.Engine, x bool) { e.MoveByWord(-1, x) })},
		{Key: tcell.KeyRight, Mod: tcell.ModCtrl, Label: "Ctrl-Right", Description: "Next word",
			Handler: move(func(e *outline.Engine, x bool) { e.MoveByWord(1, x) })},
		{Key: tcell.KeyHome, Label: "Home", Description: "Start of line",
			Handler: move(func(e *outline.Engine, x bool) { e.MoveToLineEdge(false, x) })},
		{Key: tcell.KeyEnd, Label: "End", Description: "End of line",
			Handler: move(func(e *outline.Engine, x bool) { e.MoveToLineEdge(true, x) })},
		{Key: tcell.KeyHome, Mod: tcell.ModCtrl, Label: "Ctrl-Home", Description: "Start of document",
			Handler: move(func(e *outline.Engine, x bool) { e.MoveToDocumentEdge(false, x) })},
		{Key: tcell.KeyEnd, Mod: tcell.ModCtrl, Label: "Ctrl-End", Description: "End of document",
			Handler: move(func(e *outline.Engine, x bool) { e.MoveToDocumentEdge(true, x) })},
		{Key: tcell.KeyPgUp, Label: "PgUp", Description: "Page up",
			Handler: func(app *App, x bool) { app.doc.MovePage(-1, app.pageSize(), x) }},
		{Key: tcell.KeyPgDn, Label: "PgDn", Description: "Page down",
			Handler: func(app *App, x bool) { app.doc.MovePage(1, app.pageSize(), x) }},
		{Key: tcell.KeyEnter, Label: "Enter", Description: "Split line",
			Handler: func(app *App, _ bool) { app.doc.InsertLineBreak() }},
		{Key: tcell.KeyEnter, Mod: tcell.ModAlt, Label: "Alt-Enter", Description: "New child line",
			Handler: func(app *App, _ bool) {
				l, _ := app.doc.Line(app.doc.Cursor().Line)
				app.doc.InsertLineBreakWithIndent(l.Indent + 1)
			}},
		{Key: tcell.KeyBackspace2, Label: "Backspace", Description: "Delete backward",
			Handler: func(app *App, _ bool) { app.doc.HandleBackspace() }},
		{Key: tcell.KeyBackspace, Label: "Backspace", Description: "Delete backward",
			Handler: func(app *App, _ bool) { app.doc.HandleBackspace() }},
		{Key: tcell.KeyDelete, Label: "Delete", Description: "Delete forward",
			Handler: func(app *App, _ bool) { app.doc.HandleDelete() }},
		{Key: tcell.KeyTab, Label: "Tab", Description: "Indent line or selection",
			Handler: func(app *App, _ bool) { app.indent(1, false) }},
		{Key: tcell.KeyBacktab, Label: "Shift-Tab", Description: "Outdent line or selection",
			Handler: func(app *App, _ bool) { app.indent(-1, false) }},
		{Key: tcell.KeyRight, Mod: tcell.ModAlt, Label: "Alt-Right", Description: "Indent with children",
			Handler: func(app *App, _ bool) { app.indent(1, true) }},
		{Key: tcell.KeyLeft, Mod: tcell.ModAlt, Label: "Alt-Left", Description: "Outdent with children",
			Handler: func(app *App, _ bool) { app.indent(-1, true) }},
		{Key: tcell.KeyUp, Mod: tcell.ModAlt, Label: "Alt-Up", Description: "Move line up",
			Handler: func(app *App, _ bool) { app.doc.MoveLine(-1) }},
		{Key: tcell.KeyDown, Mod: tcell.ModAlt, Label: "Alt-Down", Description: "Move line down",
			Handler: func(app *App, _ bool) { app.doc.MoveLine(1) }},
		{Key: tcell.KeyUp, Mod: tcell.ModCtrl, Label: "Ctrl-Up", Description: "Move block up",
			Handler: func(app *App, _ bool) { app.doc.MoveBlock(-1) }},
		{Key: tcell.KeyDown, Mod: tcell.ModCtrl, Label: "Ctrl-Down", Description: "Move block down",
			Handler: func(app *App, _ bool) { app.doc.MoveBlock(1) }},
		{Key: tcell.KeyCtrlF, Label: "Ctrl-F", Description: "Find",
			Handler: func(app *App, _ bool) { app.findBar.Open(false) }},
		{Key: tcell.KeyCtrlR, Label: "Ctrl-R", Description: "Find and replace",
			Handler: func(app *App, _ bool) { app.findBar.Open(true) }},
		{Key: tcell.KeyCtrlG, Label: "Ctrl-G", Description: "Jump to line",
			Handler: func(app *App, _ bool) { app.jump.Open(app.doc.Lines()) }},
		{Key: tcell.KeyCtrlP, Label: "Ctrl-P", Description: "Command line",
			Handler: func(app *App, _ bool) { app.command.Start() }},
		{Key: tcell.KeyCtrlS, Label: "Ctrl-S", Description: "Save",
			Handler: func(app *App, _ bool) { app.saveWithStatus("") }},
		{Key: tcell.KeyCtrlQ, Label: "Ctrl-Q", Description: "Quit",
			Handler: func(app *App, _ bool) { app.tryQuit(false) }},
		{Key: tcell.KeyCtrlZ, Label: "Ctrl-Z", Description: "Undo",
			Handler: func(app *App, _ bool) { app.undo() }},
		{Key: tcell.KeyCtrlY, Label: "Ctrl-Y", Description: "Redo",
			Handler: func(app *App, _ bool) { app.redo() }},
		{Key: tcell.KeyCtrlA, Label: "Ctrl-A", Description: "Select all",
			Handler: func(app *App, _ bool) { app.doc.SelectAll() }},
		{Key: tcell.KeyCtrlT, Label: "Ctrl-T", Description: "Collapse or expand line",
			Handler: func(app *App, _ bool) { app.toggleCollapse() }},
		{Key: tcell.KeyCtrlB, Label: "Ctrl-B", Description: "Insert bracket pair",
			Handler: func(app *App, _ bool) { app.doc.InsertBracketPair() }},
		{Key: tcell.KeyCtrlE, Label: "Ctrl-E", Description: "Edit line in external editor",
			Handler: func(app *App, _ bool) { app.editExternally() }},
		{Key: tcell.KeyCtrlL, Label: "Ctrl-L", Description: "Redraw screen",
			Handler: func(app *App, _ bool) { app.screen.Sync() }},
		{Key: tcell.KeyF1, Label: "F1", Description: "Show help",
			Handler: func(app *App, _ bool) { app.showHelp() }},
		{Key: tcell.KeyF2, Label: "F2", Description: "Show messages",
			Handler: func(app *App, _ bool) { app.showMessages() }},
	}
}

// helpLines renders the keybinding table for the help overlay
func (a *App) helpLines() []string {
	seen := map[string]bool{}
	var lines []string
	for i := range a.keys {
		kb := &a.keys[i]
		if seen[kb.GetKey()] {
			continue
		}
		seen[kb.GetKey()] = true
		lines = append(lines, fmt.Sprintf("%-12s %s", kb.GetKey(), kb.GetDescription()))
	}
	lines = append(lines, "", "Shift with a movement key extends the selection.", "", "Commands:")
	names := make([]string, 0, len(commandHelp))
	for name := range commandHelp {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  :%-18s %s", name, commandHelp[name]))
	}
	return lines
}

func (a *App) showHelp() {
	a.overlay.Show("Help", a.helpLines())
}

func (a *App) showMessages() {
	lines := a.messages.Lines()
	if len(lines) == 0 {
		lines = []string{"No messages"}
	}
	a.overlay.Show(fmt.Sprintf("Messages (%d)", a.messages.Count()), lines)
}

func (a *App) indent(delta int, withChildren bool) {
	opts := outline.IndentOptions{
		ApplyToSelection: a.doc.HasSelection(),
		IncludeChildren:  withChildren,
	}
	a.doc.ChangeIndent(delta, opts)
}

func (a *App) toggleCollapse() {
	line := a.doc.Cursor().Line
	if !a.doc.HasChildren(line) {
		a.SetStatus("Line has no children")
		return
	}
	a.doc.ToggleCollapse(line)
}

func (a *App) undo() {
	if err := a.doc.Undo(); err != nil {
		a.SetStatus(capitalize(err.Error()))
	}
}

func (a *App) redo() {
	if err := a.doc.Redo(); err != nil {
		a.SetStatus(capitalize(err.Error()))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
