package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pstuifzand/outline-engine/internal/model"
)

const (
	backupExt       = ".outline"
	timestampLayout = "20060102_150405"
)

// Backup is the content of a backup file: the snapshot plus the path of the
// document it was taken from.
type Backup struct {
	OriginalFilename string `json:"originalFilename"`
	model.Snapshot
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath     string    // Full path to backup file
	Timestamp    time.Time // Parsed timestamp from filename
	SessionID    string    // 8-character session ID
	OriginalFile string    // Original filename stored in backup
}

// BackupManager writes timestamped snapshot backups into one directory.
type BackupManager struct {
	backupDir string
	now       func() time.Time
}

// NewBackupManager creates the backup directory if needed.
func NewBackupManager(dir string) (*BackupManager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &BackupManager{
		backupDir: dir,
		now:       time.Now,
	}, nil
}

// Dir returns the backup directory.
func (bm *BackupManager) Dir() string {
	return bm.backupDir
}

// NewSessionID returns the 8-character id that groups the backups of one run.
func NewSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CreateBackup writes snap to a new backup file and returns its path.
func (bm *BackupManager) CreateBackup(snap model.Snapshot, originalPath string, sessionID string) (string, error) {
	absPath, err := filepath.Abs(originalPath)
	if err != nil {
		absPath = originalPath
	}

	data, err := json.MarshalIndent(Backup{OriginalFilename: absPath, Snapshot: snap}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup JSON: %w", err)
	}

	backupPath := filepath.Join(bm.backupDir, bm.generateBackupFilename(sessionID))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}

// generateBackupFilename creates a filename in the format: YYYYMMDD_HHMMSS_<sessionID>.outline
func (bm *BackupManager) generateBackupFilename(sessionID string) string {
	return fmt.Sprintf("%s_%s%s", bm.now().Format(timestampLayout), sessionID, backupExt)
}

// LoadBackup reads a backup file.
func LoadBackup(path string) (Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Backup{}, fmt.Errorf("failed to read backup: %w", err)
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("failed to parse backup: %w", err)
	}
	return b, nil
}

// FindBackupsForFile returns all backups of a document, oldest first. An empty
// path returns every backup.
func (bm *BackupManager) FindBackupsForFile(originalFilePath string) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var searchPath string
	if originalFilePath != "" {
		if absPath, err := filepath.Abs(originalFilePath); err == nil {
			searchPath = filepath.Clean(absPath)
		} else {
			searchPath = originalFilePath
		}
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupExt) {
			continue
		}

		metadata, err := parseBackupFilename(entry.Name(), filepath.Join(bm.backupDir, entry.Name()))
		if err != nil {
			continue
		}

		if searchPath != "" && filepath.Clean(metadata.OriginalFile) != searchPath {
			continue
		}

		backups = append(backups, metadata)
	}

	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return backups, nil
}

// Prune deletes the oldest backups of a document, keeping the newest keep.
func (bm *BackupManager) Prune(originalFilePath string, keep int) (int, error) {
	backups, err := bm.FindBackupsForFile(originalFilePath)
	if err != nil {
		return 0, err
	}
	removed := 0
	for i := 0; i < len(backups)-keep; i++ {
		if err := os.Remove(backups[i].FilePath); err != nil {
			return removed, fmt.Errorf("failed to remove backup: %w", err)
		}
		removed++
	}
	return removed, nil
}

// parseBackupFilename extracts metadata from a backup filename
// Expected format: YYYYMMDD_HHMMSS_<sessionID>.outline
func parseBackupFilename(filename string, fullPath string) (BackupMetadata, error) {
	name := strings.TrimSuffix(filename, backupExt)
	if len(name) != len(timestampLayout)+1+8 {
		return BackupMetadata{}, fmt.Errorf("unexpected backup filename %q", filename)
	}

	timestamp, err := time.ParseInLocation(timestampLayout, name[:len(timestampLayout)], time.Local)
	if err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid timestamp format: %w", err)
	}

	var originalFile string
	if b, err := LoadBackup(fullPath); err == nil {
		originalFile = b.OriginalFilename
	}

	return BackupMetadata{
		FilePath:     fullPath,
		Timestamp:    timestamp,
		SessionID:    name[len(timestampLayout)+1:],
		OriginalFile: originalFile,
	}, nil
}
