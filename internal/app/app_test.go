package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/config"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/search"
	"github.com/pstuifzand/outline-engine/internal/socket"
	"github.com/pstuifzand/outline-engine/internal/storage"
	"github.com/pstuifzand/outline-engine/internal/theme"
	"github.com/pstuifzand/outline-engine/internal/ui"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple command", "w", []string{"w"}},
		{"command with arguments", "export notes.md", []string{"export", "notes.md"}},
		{"double quoted string", `export "my file.md" markdown`, []string{"export", "my file.md", "markdown"}},
		{"single quoted string", "export 'my file.md'", []string{"export", "my file.md"}},
		{"mixed quotes", `replace "Hello World" 'bye'`, []string{"replace", "Hello World", "bye"}},
		{"escaped quotes", `find "value with \"quotes\""`, []string{"find", `value with "quotes"`}},
		{"escaped backslash", `w "C:\\Users\\test"`, []string{"w", `C:\Users\test`}},
		{"escaped space", `w my\ file.json`, []string{"w", "my file.json"}},
		{"multiple spaces", "set    editor    nano", []string{"set", "editor", "nano"}},
		{"tabs and spaces", "set\teditor\t  nano", []string{"set", "editor", "nano"}},
		{"empty quoted string", `replace cat ""`, []string{"replace", "cat", ""}},
		{"only whitespace", "   ", nil},
		{"quote inside word", `a"b c"d`, []string{"ab cd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCommand(tt.input), "input %q", tt.input)
		})
	}
}

type testApp struct {
	*App
	sim  tcell.SimulationScreen
	path string
	dir  string
}

func newTestApp(t *testing.T, lines ...model.Line) *testApp {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if len(lines) > 0 {
		require.NoError(t, storage.NewJSONStore(path).Save(model.Snapshot{Lines: lines}))
	}

	cfg, err := config.LoadFromFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	cfg.Socket = false

	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim, theme.Default())
	require.NoError(t, err)
	sim.SetSize(60, 12)
	screen.Size()

	a, err := New(Options{
		FilePath: path,
		Config:   cfg,
		Screen:   screen,
		DataDir:  filepath.Join(dir, "data"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return &testApp{App: a, sim: sim, path: path, dir: dir}
}

func line(text string, indent int) model.Line {
	return *model.NewLine(text, indent)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func ctrl(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModCtrl)
}

func (ta *testApp) press(evs ...*tcell.EventKey) {
	for _, ev := range evs {
		ta.handleKeypress(ev)
	}
}

func (ta *testApp) typeText(text string) {
	for _, r := range text {
		ta.handleKeypress(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (ta *testApp) texts() []string {
	var out []string
	for _, l := range ta.doc.Lines() {
		out = append(out, l.Text)
	}
	return out
}

func (ta *testApp) indents() []int {
	var out []int
	for _, l := range ta.doc.Lines() {
		out = append(out, l.Indent)
	}
	return out
}

func (ta *testApp) row(y int) string {
	w, _ := ta.sim.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := ta.sim.GetContent(x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestTypeAndSave(t *testing.T) {
	ta := newTestApp(t)
	ta.typeText("hello")
	ta.press(key(tcell.KeyEnter))
	ta.typeText("world")
	assert.True(t, ta.Modified())

	ta.press(ctrl(tcell.KeyCtrlS))
	assert.False(t, ta.Modified())
	assert.Equal(t, "Saved "+ta.path, ta.statusMsg)

	snap, err := storage.NewJSONStore(ta.path).Load()
	require.NoError(t, err)
	require.Len(t, snap.Lines, 2, spew.Sdump(snap))
	assert.Equal(t, "hello", snap.Lines[0].Text)
	assert.Equal(t, "world", snap.Lines[1].Text)

	backups, err := ta.backups.FindBackupsForFile(ta.path)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestSaveWithoutFile(t *testing.T) {
	ta := newTestApp(t)
	ta.filePath = ""
	ta.store = nil
	assert.ErrorIs(t, ta.Save(""), ErrNoFile)

	ta.handleCommand("w " + filepath.Join(ta.dir, "other.json"))
	assert.Equal(t, filepath.Join(ta.dir, "other.json"), ta.filePath)
	assert.FileExists(t, ta.filePath)
}

func TestQuitRefusesUnsavedChanges(t *testing.T) {
	ta := newTestApp(t, line("a", 0))
	ta.typeText("x")

	ta.press(ctrl(tcell.KeyCtrlQ))
	assert.False(t, ta.quit)
	assert.Contains(t, ta.statusMsg, "Unsaved changes")

	ta.handleCommand("q!")
	assert.True(t, ta.quit)
}

func TestWriteQuit(t *testing.T) {
	ta := newTestApp(t, line("a", 0))
	ta.typeText("x")
	ta.handleCommand("wq")
	assert.True(t, ta.quit)
	assert.False(t, ta.Modified())
}

func TestIndentKeys(t *testing.T) {
	ta := newTestApp(t, line("a", 0), line("b", 0), line("c", 1))
	ta.doc.SetCursor(1, 0)

	ta.press(key(tcell.KeyTab))
	assert.Equal(t, []int{0, 1, 1}, ta.indents())

	ta.press(key(tcell.KeyBacktab))
	assert.Equal(t, []int{0, 0, 1}, ta.indents())

	ta.press(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModAlt))
	assert.Equal(t, []int{0, 1, 2}, ta.indents())
}

func TestShiftExtendsSelection(t *testing.T) {
	ta := newTestApp(t, line("hello world", 0))
	ta.press(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift|tcell.ModCtrl))
	assert.Equal(t, "hello", ta.doc.SelectedText())

	ta.typeText("bye")
	assert.Equal(t, []string{"bye world"}, ta.texts())
}

func TestUndoKeys(t *testing.T) {
	ta := newTestApp(t, line("a", 0))
	ta.press(ctrl(tcell.KeyCtrlZ))
	assert.Equal(t, "Nothing to undo", ta.statusMsg)

	ta.doc.MoveToLineEdge(true, false)
	ta.typeText("b")
	ta.press(ctrl(tcell.KeyCtrlZ))
	assert.Equal(t, []string{"a"}, ta.texts())
	ta.press(ctrl(tcell.KeyCtrlY))
	assert.Equal(t, []string{"ab"}, ta.texts())
}

func TestFindAndReplaceCommands(t *testing.T) {
	ta := newTestApp(t, line("cat dog cat", 0), line("catalog", 0))

	ta.handleCommand("find cat")
	assert.True(t, ta.findBar.IsActive())
	assert.Len(t, ta.session.Matches(), 3)

	ta.press(key(tcell.KeyEscape))
	assert.False(t, ta.findBar.IsActive())
	assert.False(t, ta.session.IsOpen())

	ta.handleCommand(`replace cat "big cat"`)
	assert.Equal(t, "Replaced 3 match(es)", ta.statusMsg)
	assert.Equal(t, []string{"big cat dog big cat", "big catalog"}, ta.texts())
	assert.False(t, ta.findBar.IsActive())
}

func TestReplaceInvalidPattern(t *testing.T) {
	ta := newTestApp(t, line("abc", 0))
	ta.session.SetMode(search.ModeRegex)
	ta.handleCommand(`replace "(" x`)
	assert.True(t, ta.statusErr)
	assert.Equal(t, []string{"abc"}, ta.texts())
}

func TestJumpExpandsCollapsedParent(t *testing.T) {
	parent := line("alpha", 0)
	parent.Collapsed = true
	ta := newTestApp(t, parent, line("beta child", 1), line("gamma", 0))
	assert.Equal(t, []int{0, 2}, ta.doc.VisibleLines())

	ta.press(ctrl(tcell.KeyCtrlG))
	ta.typeText("beta")
	ta.press(key(tcell.KeyEnter))

	assert.Equal(t, 1, ta.doc.Cursor().Line)
	l, _ := ta.doc.Line(0)
	assert.False(t, l.Collapsed)
	assert.Equal(t, []int{0, 1, 2}, ta.doc.VisibleLines())
}

func TestImportAndExport(t *testing.T) {
	ta := newTestApp(t, line("old", 0))

	src := filepath.Join(ta.dir, "in.txt")
	require.NoError(t, os.WriteFile(src, []byte("root\n  child\n"), 0o644))
	ta.handleCommand("import " + src)
	assert.Equal(t, []string{"root", "child"}, ta.texts())
	assert.Equal(t, []int{0, 1}, ta.indents())

	dest := filepath.Join(ta.dir, "out.txt")
	ta.handleCommand("export " + dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "root\n  child\n", string(data))

	ta.press(ctrl(tcell.KeyCtrlZ))
	assert.Equal(t, []string{"old"}, ta.texts())
}

func TestImportMissingFile(t *testing.T) {
	ta := newTestApp(t, line("old", 0))
	ta.handleCommand("import " + filepath.Join(ta.dir, "missing.txt"))
	assert.True(t, ta.statusErr)
	assert.Equal(t, []string{"old"}, ta.texts())
}

func TestDiffCommand(t *testing.T) {
	ta := newTestApp(t, line("a", 0))
	ta.handleCommand("diff")
	assert.True(t, ta.overlay.IsVisible())
	assert.Equal(t, "Changes since last save", ta.overlay.Title())

	ta.press(key(tcell.KeyEscape))
	assert.False(t, ta.overlay.IsVisible())
}

func TestRestoreBackup(t *testing.T) {
	ta := newTestApp(t, line("one", 0))
	require.NoError(t, ta.Save(""))

	ta.doc.MoveToLineEdge(true, false)
	ta.typeText("two")
	ta.handleCommand("backups")
	require.True(t, ta.backupSelector.IsVisible())

	ta.press(key(tcell.KeyEnter))
	assert.False(t, ta.backupSelector.IsVisible())
	assert.Equal(t, []string{"one"}, ta.texts())

	ta.press(ctrl(tcell.KeyCtrlZ))
	assert.Equal(t, []string{"onetwo"}, ta.texts())
}

func TestSocketMessageUpdatesDocument(t *testing.T) {
	ta := newTestApp(t, line("a", 0))
	ta.handleSocketMessage(socket.Message{Command: socket.CommandAppendLine, Text: "from socket", Indent: 1})

	assert.Equal(t, []string{"a", "from socket"}, ta.texts())
	assert.Equal(t, []int{0, 1}, ta.indents())
	assert.Equal(t, "Document updated via socket (append_line)", ta.statusMsg)
	assert.True(t, ta.Modified())

	resp := make(chan *socket.Response, 1)
	ta.handleSocketMessage(socket.Message{Command: socket.CommandSnapshot, ResponseChan: resp})
	got := <-resp
	require.True(t, got.Success)
	assert.Len(t, got.Snapshot.Lines, 2)
}

func TestSetCommand(t *testing.T) {
	ta := newTestApp(t)
	ta.handleCommand("set editor nano -w")
	assert.Equal(t, "nano -w", ta.cfg.Get("editor"))
	assert.NoFileExists(t, filepath.Join(ta.dir, "config.toml"))

	ta.handleCommand("set! backups 5")
	assert.Equal(t, 5, ta.backupKeep())
	assert.FileExists(t, filepath.Join(ta.dir, "config.toml"))

	ta.handleCommand("set")
	assert.Equal(t, "Settings", ta.overlay.Title())
}

func TestUnknownCommand(t *testing.T) {
	ta := newTestApp(t)
	ta.press(ctrl(tcell.KeyCtrlP))
	require.True(t, ta.command.IsActive())
	ta.typeText("frob")
	ta.press(key(tcell.KeyEnter))
	assert.False(t, ta.command.IsActive())
	assert.Equal(t, "Unknown command: frob", ta.statusMsg)
}

func TestRenderStatusLine(t *testing.T) {
	ta := newTestApp(t, line("first", 0), line("second", 1))
	ta.render()
	assert.Equal(t, "▾ first", ta.row(0))
	assert.Equal(t, "  • second", ta.row(1))

	status := ta.row(11)
	assert.Contains(t, status, "EDIT")
	assert.Contains(t, status, "doc.json")
	assert.NotContains(t, status, "[+]")
	assert.True(t, strings.HasSuffix(status, "Ln 1, Col 1"), status)

	ta.typeText("x")
	ta.render()
	assert.Contains(t, ta.row(11), "[+]")
}

func TestHelpOverlay(t *testing.T) {
	ta := newTestApp(t)
	ta.press(key(tcell.KeyF1))
	assert.Equal(t, "Help", ta.overlay.Title())

	lines := ta.helpLines()
	assert.Contains(t, lines, "Ctrl-F       Find")
	assert.Contains(t, lines, "Backspace    Delete backward")
}

func TestAttachCommand(t *testing.T) {
	ta := newTestApp(t)
	ta.handleCommand(`attach img/cat.png "a cat"`)

	lines := ta.doc.Lines()
	require.Len(t, lines, 1, spew.Sdump(lines))
	require.NotNil(t, lines[0].Attachment)
	assert.Equal(t, "img/cat.png", lines[0].Attachment.Src)
	assert.Equal(t, "a cat", lines[0].Attachment.Name)
}
