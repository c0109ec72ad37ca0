package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/ui"
)

const backupTimeFormat = "2006-01-02 15:04:05"

// showBackups opens the backup selector for the current file
func (a *App) showBackups() {
	if a.filePath == "" {
		a.SetStatus("No file to find backups for")
		return
	}
	if a.backups == nil {
		a.SetStatus("Backups are not available")
		return
	}
	backups, err := a.backups.FindBackupsForFile(a.filePath)
	if err != nil {
		a.SetError("Failed to list backups", err)
		return
	}
	a.backupSelector.Show(backups, a.doc.Lines())
}

// backupNow takes a backup of the document as it is in memory
func (a *App) backupNow() {
	if a.filePath == "" {
		a.SetStatus("No file to back up")
		return
	}
	if a.backups == nil {
		a.SetStatus("Backups are not available")
		return
	}
	path, err := a.backups.CreateBackup(a.doc.ToSnapshot(), a.filePath, a.sessionID)
	if err != nil {
		a.SetError("Backup failed", err)
		return
	}
	a.log.Info("backup created", "path", path)
	a.SetStatus("Backup created")
}

func (a *App) handleBackupKey(ev *tcell.EventKey) {
	switch a.backupSelector.HandleKey(ev) {
	case ui.BackupRestore:
		backup, _, ok := a.backupSelector.Selected()
		if !ok {
			a.SetStatus("Backup could not be read")
			return
		}
		a.backupSelector.Hide()
		// undoable, so a wrong restore can be taken back with Ctrl-Z
		a.doc.LoadLines(backup.Lines)
		a.SetStatus(fmt.Sprintf("Restored %d lines from backup", len(backup.Lines)))
	case ui.BackupDiff:
		_, result, ok := a.backupSelector.Selected()
		if !ok {
			a.SetStatus("Backup could not be read")
			return
		}
		a.backupSelector.Hide()
		a.overlay.Show("Backup vs current", ui.DiffOverlayLines(result))
	case ui.BackupClosed:
		a.SetStatus("Backups closed")
	}
}
