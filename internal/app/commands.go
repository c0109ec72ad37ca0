package app

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/pstuifzand/outline-engine/internal/diff"
	"github.com/pstuifzand/outline-engine/internal/export"
	import_parser "github.com/pstuifzand/outline-engine/internal/import"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/theme"
	"github.com/pstuifzand/outline-engine/internal/ui"
)

const defaultBackupKeep = 20

var commandHelp = map[string]string{
	"w [path]":                "Save, optionally under a new name",
	"q":                       "Quit (refuses with unsaved changes)",
	"q!":                      "Quit without saving",
	"wq, x":                   "Save and quit",
	"export <path> [format]":  "Export as markdown or indented text",
	"import <path> [format]":  "Replace the document with an imported file",
	"diff":                    "Compare with the saved file",
	"backups":                 "Browse backups of this file",
	"backup":                  "Take a backup now",
	"attach <src> [name]":     "Insert an attachment line",
	"find <query>":            "Open the find bar with a query",
	"replace <query> <with>":  "Replace every match",
	"set [key [value]]":       "Show or change a session setting",
	"set! <key> <value>":      "Change and persist a setting",
	"theme <name>":            "Switch color theme",
	"undo, redo":              "Undo or redo the last edit",
	"edit":                    "Edit the current line in $EDITOR",
	"jump":                    "Fuzzy jump to a line",
	"help, messages, log":     "Show help, status history or log",
	"debug":                   "Toggle debug info in the status line",
}

// parseCommand splits a command line into words. Single and double quotes
// group words; a backslash escapes the next character.
func parseCommand(input string) []string {
	var (
		parts   []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// handleCommand executes a command line entered with Ctrl-P
func (a *App) handleCommand(line string) {
	parts := parseCommand(line)
	if len(parts) == 0 {
		return
	}
	cmd, args := parts[0], parts[1:]
	a.log.Debug("command", "name", cmd, "args", len(args))

	switch cmd {
	case "w", "write":
		a.saveWithStatus(argOr(args, 0, ""))
	case "q", "quit":
		a.tryQuit(false)
	case "q!":
		a.Quit()
	case "wq", "x":
		if a.saveWithStatus(argOr(args, 0, "")) {
			a.Quit()
		}
	case "export":
		a.exportCommand(args)
	case "import":
		a.importCommand(args)
	case "diff":
		a.diffCommand()
	case "backups":
		a.showBackups()
	case "backup":
		a.backupNow()
	case "attach":
		if len(args) == 0 {
			a.SetStatus("Usage: attach <src> [name]")
			return
		}
		a.doc.InsertAttachment(model.Attachment{Src: args[0], Name: argOr(args, 1, "")})
	case "find":
		a.findBar.Open(false)
		if len(args) > 0 {
			a.findBar.SetQuery(strings.Join(args, " "))
		}
	case "replace":
		a.replaceCommand(args)
	case "set":
		a.setCommand(args, false)
	case "set!":
		a.setCommand(args, true)
	case "theme":
		a.themeCommand(args)
	case "undo":
		a.undo()
	case "redo":
		a.redo()
	case "edit":
		a.editExternally()
	case "jump":
		a.jump.Open(a.doc.Lines())
	case "help":
		a.showHelp()
	case "messages":
		a.showMessages()
	case "log":
		a.showLog()
	case "debug":
		a.debugMode = !a.debugMode
		a.SetStatus(fmt.Sprintf("Debug mode: %t", a.debugMode))
	default:
		a.SetStatus("Unknown command: " + cmd)
	}
}

func argOr(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

func (a *App) exportCommand(args []string) {
	if len(args) == 0 {
		a.SetStatus("Usage: export <path> [markdown|indented]")
		return
	}
	path := args[0]
	format := export.FormatFor(path)
	if len(args) > 1 {
		format = export.Format(strings.ToLower(args[1]))
	}
	if err := export.ExportToFile(a.doc.Lines(), path, format); err != nil {
		a.SetError("Export failed", err)
		return
	}
	a.SetStatus(fmt.Sprintf("Exported %d lines to %s", a.doc.LineCount(), path))
}

func (a *App) importCommand(args []string) {
	if len(args) == 0 {
		a.SetStatus("Usage: import <path> [markdown|indented]")
		return
	}
	path := args[0]
	format, err := import_parser.ParseFormat(argOr(args, 1, ""), path)
	if err != nil {
		a.SetError("Import failed", err)
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		a.SetError("Import failed", err)
		return
	}
	lines, err := import_parser.Import(string(data), format)
	if err != nil {
		a.SetError("Import failed", err)
		return
	}
	a.doc.LoadLines(lines)
	a.SetStatus(fmt.Sprintf("Imported %d lines from %s", len(lines), path))
}

// diffCommand compares the saved file with the document in memory
func (a *App) diffCommand() {
	if a.store == nil || !a.store.FileExists() {
		a.SetStatus("No saved file to compare with")
		return
	}
	saved, err := a.store.Load()
	if err != nil {
		a.SetError("Diff failed", err)
		return
	}
	result := diff.Compute(saved.Lines, a.doc.Lines())
	a.overlay.Show("Changes since last save", ui.DiffOverlayLines(result))
}

func (a *App) replaceCommand(args []string) {
	if len(args) < 2 {
		a.SetStatus("Usage: replace <query> <replacement>")
		return
	}
	a.findBar.Open(true)
	a.findBar.SetQuery(args[0])
	a.findBar.SetReplacement(args[1])
	if err := a.session.Err(); err != nil {
		a.findBar.Close()
		a.SetError("Replace failed", err)
		return
	}
	n := a.session.ReplaceAll()
	a.findBar.Close()
	a.SetStatus(fmt.Sprintf("Replaced %d match(es)", n))
}

func (a *App) setCommand(args []string, persist bool) {
	switch len(args) {
	case 0:
		all := a.cfg.GetAll()
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s = %s", k, all[k]))
		}
		if len(lines) == 0 {
			lines = []string{"No settings"}
		}
		a.overlay.Show("Settings", lines)
	case 1:
		a.SetStatus(fmt.Sprintf("%s = %q", args[0], a.cfg.Get(args[0])))
	default:
		key, value := args[0], strings.Join(args[1:], " ")
		a.cfg.Set(key, value)
		if persist {
			if a.cfg.Settings == nil {
				a.cfg.Settings = make(map[string]string)
			}
			a.cfg.Settings[key] = value
			if err := a.cfg.Save(); err != nil {
				a.SetError("Failed to save config", err)
				return
			}
		}
		a.SetStatus(fmt.Sprintf("%s = %q", key, value))
	}
}

func (a *App) themeCommand(args []string) {
	if len(args) == 0 {
		a.SetStatus("Theme: " + a.screen.Theme.Name)
		return
	}
	var t *theme.Theme
	switch args[0] {
	case "default":
		t = theme.Default()
	case "tokyo-night":
		t = theme.TokyoNight()
	default:
		loaded, err := theme.LoadTheme(args[0])
		if err != nil {
			a.SetError("Failed to load theme", err)
			return
		}
		t = loaded
	}
	a.screen.Theme = t
	a.SetStatus("Theme: " + t.Name)
}

func (a *App) showLog() {
	entries := a.log.Recent()
	lines := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		lines = append(lines, entries[i].Format())
	}
	if len(lines) == 0 {
		lines = []string{"No log entries"}
	}
	a.overlay.Show("Log", lines)
}

// backupKeep is the number of backups kept per file, from the "backups"
// setting
func (a *App) backupKeep() int {
	if n, err := strconv.Atoi(a.cfg.Get("backups")); err == nil && n > 0 {
		return n
	}
	return defaultBackupKeep
}
