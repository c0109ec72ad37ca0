package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/diff"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/storage"
)

// BackupAction is what the user asked for in the backup selector
type BackupAction int

const (
	BackupNone BackupAction = iota
	BackupRestore
	BackupDiff
	BackupClosed
)

type backupEntry struct {
	meta    storage.BackupMetadata
	backup  storage.Backup
	result  *diff.Result
	loadErr error
}

// BackupSelector lists the backups of a document, newest first, with a
// change summary against the current lines.
type BackupSelector struct {
	visible  bool
	entries  []backupEntry
	selected int
}

// NewBackupSelector creates a hidden selector
func NewBackupSelector() *BackupSelector {
	return &BackupSelector{}
}

// Show loads the backups and diffs each against current
func (bs *BackupSelector) Show(backups []storage.BackupMetadata, current []model.Line) {
	bs.entries = bs.entries[:0]
	for i := len(backups) - 1; i >= 0; i-- {
		e := backupEntry{meta: backups[i]}
		e.backup, e.loadErr = storage.LoadBackup(backups[i].FilePath)
		if e.loadErr == nil {
			e.result = diff.Compute(e.backup.Lines, current)
		}
		bs.entries = append(bs.entries, e)
	}
	bs.selected = 0
	bs.visible = true
}

// Hide closes the selector
func (bs *BackupSelector) Hide() {
	bs.visible = false
}

// IsVisible returns whether the selector is shown
func (bs *BackupSelector) IsVisible() bool {
	return bs.visible
}

// Selected returns the highlighted backup and its diff against the current
// document. ok is false when nothing loadable is selected.
func (bs *BackupSelector) Selected() (storage.Backup, *diff.Result, bool) {
	if bs.selected < 0 || bs.selected >= len(bs.entries) {
		return storage.Backup{}, nil, false
	}
	e := bs.entries[bs.selected]
	if e.loadErr != nil {
		return storage.Backup{}, nil, false
	}
	return e.backup, e.result, true
}

// HandleKey moves the selection or returns the chosen action
func (bs *BackupSelector) HandleKey(ev *tcell.EventKey) BackupAction {
	switch ev.Key() {
	case tcell.KeyEscape:
		bs.Hide()
		return BackupClosed
	case tcell.KeyEnter:
		if _, _, ok := bs.Selected(); !ok {
			return BackupNone
		}
		bs.Hide()
		return BackupRestore
	case tcell.KeyUp:
		bs.move(-1)
	case tcell.KeyDown:
		bs.move(1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			bs.Hide()
			return BackupClosed
		case 'k':
			bs.move(-1)
		case 'j':
			bs.move(1)
		case 'd':
			if _, _, ok := bs.Selected(); ok {
				return BackupDiff
			}
		}
	}
	return BackupNone
}

func (bs *BackupSelector) move(delta int) {
	if len(bs.entries) == 0 {
		return
	}
	bs.selected = min(max(bs.selected+delta, 0), len(bs.entries)-1)
}

func (e backupEntry) label() string {
	ts := e.meta.Timestamp.Format("2006-01-02 15:04:05")
	if e.loadErr != nil {
		return fmt.Sprintf("%s  %s  unreadable", ts, e.meta.SessionID)
	}
	return fmt.Sprintf("%s  %s  %d lines  %s", ts, e.meta.SessionID, len(e.backup.Lines), diffSummary(e.result))
}

// Render draws the list in a box
func (bs *BackupSelector) Render(screen *Screen) {
	if !bs.visible {
		return
	}
	width, height := screen.Size()
	inner, ok := drawBox(screen, 2, 1, width-4, height-2, "Backups (Enter restore, d diff, Esc close)")
	if !ok {
		return
	}
	if len(bs.entries) == 0 {
		screen.DrawString(inner.x, inner.y, "No backups for this document", screen.HelpStyle())
		return
	}

	top := max(bs.selected-inner.h+1, 0)
	for row := 0; row < inner.h && top+row < len(bs.entries); row++ {
		n := top + row
		style := screen.HelpStyle()
		if n == bs.selected {
			style = screen.SelectionStyle()
		}
		screen.DrawStringLimited(inner.x, inner.y+row, PadStringToWidth(bs.entries[n].label(), inner.w), inner.w, style)
	}
}
