package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/config"
	"github.com/pstuifzand/outline-engine/internal/history"
	"github.com/pstuifzand/outline-engine/internal/logger"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/outline"
	"github.com/pstuifzand/outline-engine/internal/search"
	"github.com/pstuifzand/outline-engine/internal/socket"
	"github.com/pstuifzand/outline-engine/internal/storage"
	"github.com/pstuifzand/outline-engine/internal/theme"
	"github.com/pstuifzand/outline-engine/internal/ui"
)

const (
	historySize   = 50
	statusTimeout = 4 * time.Second
)

// ErrNoFile is returned when saving a document that has no file name
var ErrNoFile = errors.New("no file name")

// Options configures a new App
type Options struct {
	FilePath string
	Config   *config.Config
	Logger   *logger.Logger
	// Screen is created from the terminal when nil
	Screen *ui.Screen
	// DataDir holds history and backups. Defaults to config.GetDataDir().
	DataDir string
	// SocketDir overrides socket.DefaultDir()
	SocketDir string
}

// App is the main application controller
type App struct {
	screen         *ui.Screen
	doc            *outline.Engine
	session        *search.Session
	view           *ui.DocumentView
	findBar        *ui.FindBar
	command        *ui.CommandMode
	jump           *ui.JumpPrompt
	overlay        *ui.Overlay
	backupSelector *ui.BackupSelector
	messages       *ui.MessageLogger
	keys           []KeyBinding

	cfg       *config.Config
	log       *logger.Logger
	filePath  string
	store     *storage.JSONStore
	backups   *storage.BackupManager
	sessionID string
	server    *socket.Server
	handler   *socket.Handler

	savedVersion uint64
	statusMsg    string
	statusErr    bool
	statusTime   time.Time
	quit         bool
	debugMode    bool
	now          func() time.Time
}

// New loads the document at opts.FilePath (an empty path starts an unnamed
// document) and wires the engine to the terminal, storage and socket.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dir, err := config.GetDataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get data directory: %w", err)
		}
		dataDir = dir
	}

	a := &App{
		cfg:       cfg,
		log:       log,
		filePath:  opts.FilePath,
		sessionID: storage.NewSessionID(),
		messages:  ui.NewMessageLogger(100),
		overlay:   ui.NewOverlay(),
		jump:      ui.NewJumpPrompt(),
		now:       time.Now,
	}

	if err := a.loadDocument(); err != nil {
		return nil, err
	}

	a.session = search.NewSession(a.doc,
		search.WithTimeout(cfg.RegexTimeout()),
		search.WithLogger(log.Logger))
	a.view = ui.NewDocumentView(a.doc, a.session)
	a.backupSelector = ui.NewBackupSelector()

	queries, replacements, commands := a.openHistories(filepath.Join(dataDir, "history"))
	a.findBar = ui.NewFindBar(a.session, queries, replacements)
	a.command = ui.NewCommandMode(commands)

	backups, err := storage.NewBackupManager(filepath.Join(dataDir, "backups"))
	if err != nil {
		log.Warn("backups disabled", "err", err)
	}
	a.backups = backups

	a.handler = &socket.Handler{Doc: a.doc, Matcher: search.NewMatcher(), Logger: log.Logger}
	a.handler.Matcher.Timeout = cfg.RegexTimeout()
	if cfg.Socket {
		dir := opts.SocketDir
		if dir == "" {
			dir = socket.DefaultDir()
		}
		server, err := socket.NewServer(dir, os.Getpid(), log.Logger)
		if err != nil {
			log.Warn("socket disabled", "err", err)
		} else {
			a.server = server
			server.Start()
		}
	}

	a.keys = a.InitializeKeybindings()

	screen := opts.Screen
	if screen == nil {
		screen, err = ui.NewScreen(theme.LoadThemeOrDefault(cfg.Theme))
		if err != nil {
			a.stopServer()
			return nil, fmt.Errorf("failed to create screen: %w", err)
		}
	}
	a.screen = screen

	a.SetStatus("Ready")
	return a, nil
}

func (a *App) loadDocument() error {
	opts := []outline.Option{
		outline.WithHistoryLimit(a.cfg.HistoryLimit),
		outline.WithLogger(a.log.Logger),
	}
	if a.filePath == "" {
		a.doc = outline.New(opts...)
		a.savedVersion = a.doc.Version()
		return nil
	}

	a.store = storage.NewJSONStore(a.filePath)
	snap, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	a.doc = outline.New(append(opts, outline.WithLines(snap.Lines))...)
	if snap.Cursor != nil {
		a.doc.SetCursor(snap.Cursor.Line, snap.Cursor.Char)
	}
	a.savedVersion = a.doc.Version()
	a.log.Info("document loaded", "path", a.filePath, "lines", a.doc.LineCount())
	return nil
}

// openHistories opens the persisted prompt histories. Failures fall back to
// in-memory lists.
func (a *App) openHistories(dir string) (queries, replacements, commands *history.List) {
	m, err := history.NewManager(dir)
	if err != nil {
		a.log.Warn("history disabled", "err", err)
		return history.NewList(historySize), history.NewList(historySize), history.NewList(historySize)
	}
	open := func(name string) *history.List {
		l, err := history.Open(m, name, historySize)
		if err != nil {
			a.log.Warn("failed to load history", "file", name, "err", err)
		}
		return l
	}
	return open(history.SearchFile), open(history.ReplaceFile), open(history.CommandFile)
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			event := a.screen.PollEvent()
			if event == nil {
				close(eventChan)
				return
			}
			eventChan <- event
		}
	}()

	var socketChan <-chan socket.Message
	if a.server != nil {
		socketChan = a.server.Messages()
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			a.handleRawEvent(ev)
			a.render()
		case msg := <-socketChan:
			a.handleSocketMessage(msg)
			a.render()
		case <-ticker.C:
			a.render()
		}
	}
	return nil
}

// Close stops the socket server and releases the terminal. The logger is
// owned by the caller.
func (a *App) Close() error {
	a.stopServer()
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

func (a *App) stopServer() {
	if a.server != nil {
		a.server.Stop()
		a.server = nil
	}
}

// handleSocketMessage runs a socket command on the event loop goroutine,
// which owns the document
func (a *App) handleSocketMessage(msg socket.Message) {
	before := a.doc.Version()
	a.handler.Dispatch(msg)
	if a.doc.Version() != before {
		a.SetStatus(fmt.Sprintf("Document updated via socket (%s)", msg.Command))
	}
}

// Modified reports whether the document changed since it was loaded or saved
func (a *App) Modified() bool {
	return a.doc.Version() != a.savedVersion
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusErr = false
	a.statusTime = a.now()
	a.messages.AddMessage(msg, false)
}

// SetError shows err in the status line and logs it
func (a *App) SetError(context string, err error) {
	msg := context + ": " + err.Error()
	a.statusMsg = msg
	a.statusErr = true
	a.statusTime = a.now()
	a.messages.AddMessage(msg, true)
	a.log.Error(context, "err", err)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

// pageSize is the number of document rows on screen
func (a *App) pageSize() int {
	_, h := a.screen.Size()
	return max(1, h-1-a.findBar.Height()-a.promptHeight())
}

func (a *App) promptHeight() int {
	switch {
	case a.command.IsActive():
		return 1
	case a.jump.IsActive():
		return a.jump.Height()
	}
	return 0
}

// render draws the screen
func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.Size()
	status := height - 1
	viewHeight := a.pageSize()

	cx, cy := a.view.Render(a.screen, 0, viewHeight)
	if a.findBar.IsActive() {
		cx, cy = a.findBar.Render(a.screen, viewHeight)
	}
	switch {
	case a.command.IsActive():
		cx, cy = a.command.Render(a.screen, status-1), status-1
	case a.jump.IsActive():
		cx, cy = a.jump.Render(a.screen, status-1), status-1
	}
	a.renderStatus(status, width)

	if a.backupSelector.IsVisible() {
		a.backupSelector.Render(a.screen)
		cx = -1
	} else if a.overlay.IsVisible() {
		a.overlay.Render(a.screen)
		cx = -1
	}
	a.screen.ShowCursor(cx, cy)
	a.screen.Show()
}

// renderStatus draws the status line: mode, file, message and caret position
func (a *App) renderStatus(y, width int) {
	a.screen.FillRow(0, y, a.screen.StatusMessageStyle())

	mode := " EDIT "
	switch {
	case a.command.IsActive():
		mode = " CMD "
	case a.jump.IsActive():
		mode = " JUMP "
	case a.findBar.IsActive():
		mode = " FIND "
	}
	x := a.screen.DrawString(0, y, mode, a.screen.StatusModeStyle())

	name := "[No Name]"
	if a.filePath != "" {
		name = filepath.Base(a.filePath)
	}
	x = a.screen.DrawString(x+1, y, name, a.screen.StatusMessageStyle())
	if a.Modified() {
		x = a.screen.DrawString(x+1, y, "[+]", a.screen.StatusModifiedStyle())
	}
	if a.debugMode {
		x = a.screen.DrawString(x+1, y, fmt.Sprintf("v%d u%d r%d", a.doc.Version(), a.doc.UndoCount(), a.doc.RedoCount()), a.screen.StatusMessageStyle())
	}

	cur := a.doc.Cursor()
	pos := fmt.Sprintf("Ln %d, Col %d ", cur.Line+1, cur.Char+1)
	posX := width - ui.StringWidth(pos)

	if a.statusMsg != "" && a.now().Sub(a.statusTime) < statusTimeout {
		style := a.screen.StatusMessageStyle()
		if a.statusErr {
			style = a.screen.SearchErrorStyle()
		}
		a.screen.DrawStringLimited(x+2, y, a.statusMsg, posX-x-3, style)
	}
	a.screen.DrawString(posX, y, pos, a.screen.StatusMessageStyle())
}

// handleRawEvent handles both key and resize events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKeypress(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

// handleKeypress routes a key to the topmost active component
func (a *App) handleKeypress(ev *tcell.EventKey) {
	switch {
	case a.backupSelector.IsVisible():
		a.handleBackupKey(ev)
	case a.overlay.IsVisible():
		a.overlay.HandleKey(ev)
	case a.command.IsActive():
		if cmd, done := a.command.HandleKey(ev); done && cmd != "" {
			a.handleCommand(cmd)
		}
	case a.jump.IsActive():
		if line, done := a.jump.HandleKey(ev); done && line >= 0 {
			a.jumpTo(line)
		}
	case a.findBar.IsActive():
		if msg := a.findBar.HandleKey(ev); msg != "" {
			a.SetStatus(msg)
		}
	default:
		a.handleEditorKey(ev)
	}
}

func (a *App) handleEditorKey(ev *tcell.EventKey) {
	extend := ev.Modifiers()&tcell.ModShift != 0
	for i := range a.keys {
		if a.keys[i].Matches(ev) {
			a.keys[i].Handler(a, extend)
			return
		}
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) == 0 {
		a.doc.ProcessCommittedText(string(ev.Rune()))
	}
}

// jumpTo moves the caret to line, expanding collapsed ancestors first
func (a *App) jumpTo(line int) {
	for p, ok := a.doc.Parent(line); ok; p, ok = a.doc.Parent(p) {
		if l, _ := a.doc.Line(p); l.Collapsed {
			a.doc.ToggleCollapse(p)
		}
	}
	a.doc.SetCursor(line, 0)
	a.SetStatus(fmt.Sprintf("Line %d", line+1))
}

// tryQuit quits unless there are unsaved changes and force is false
func (a *App) tryQuit(force bool) {
	if !force && a.Modified() {
		a.SetStatus("Unsaved changes (save with :w or quit with :q!)")
		return
	}
	a.Quit()
}

// Save writes the document to path (the current file when empty), then
// takes a backup and prunes old ones
func (a *App) Save(path string) error {
	if path != "" && path != a.filePath {
		a.filePath = path
		a.store = storage.NewJSONStore(path)
	}
	if a.store == nil {
		return ErrNoFile
	}
	snap := a.doc.ToSnapshot()
	if err := a.store.Save(snap); err != nil {
		return err
	}
	a.savedVersion = a.doc.Version()
	a.log.Info("document saved", "path", a.filePath, "version", a.savedVersion)

	if a.backups != nil {
		if _, err := a.backups.CreateBackup(snap, a.filePath, a.sessionID); err != nil {
			a.log.Warn("failed to create backup", "err", err)
		} else if _, err := a.backups.Prune(a.filePath, a.backupKeep()); err != nil {
			a.log.Warn("failed to prune backups", "err", err)
		}
	}
	return nil
}

func (a *App) saveWithStatus(path string) bool {
	if err := a.Save(path); err != nil {
		a.SetError("Save failed", err)
		return false
	}
	a.SetStatus("Saved " + a.filePath)
	return true
}

// editExternally opens the caret line in $EDITOR
func (a *App) editExternally() {
	line := a.doc.Cursor().Line
	l, _ := a.doc.Line(line)

	if err := a.screen.Suspend(); err != nil {
		a.SetError("Failed to suspend screen", err)
		return
	}
	edit, changed, err := ui.EditLineInExternalEditor(l, ui.ResolveEditor(a.cfg))
	if rerr := a.screen.Resume(); rerr != nil {
		a.log.Error("failed to resume screen", "err", rerr)
	}
	if err != nil {
		a.SetError("Edit failed", err)
		return
	}
	if !changed {
		a.SetStatus("No changes")
		return
	}
	a.applyEdit(line, l, edit)
	a.SetStatus("Line updated")
}

func (a *App) applyEdit(line int, before model.Line, edit ui.ExternalEdit) {
	a.doc.ClearSelection()
	a.doc.SetCursor(line, 0)
	if before.Attachment == nil && edit.Text != before.Text {
		a.doc.ReplaceLineTexts([]model.LineEdit{{Line: line, Text: edit.Text}})
	}
	if delta := edit.Indent - before.Indent; delta != 0 {
		a.doc.ChangeIndent(delta, outline.IndentOptions{})
	}
	if edit.Collapsed != before.Collapsed && a.doc.HasChildren(line) {
		a.doc.ToggleCollapse(line)
	}
}
