package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/outline-engine/internal/config"
	"github.com/pstuifzand/outline-engine/internal/diff"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/storage"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output (show old values)")
	summary := flag.Bool("s", false, "Summary only (no line-level details)")
	backupDir := flag.String("backups", "", "Backup directory (default: data dir)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: outline-diff [options] <file.json>
       outline-diff [options] <file1.json> <file2.json>

Compares outline JSON documents line by line, matching lines by id.

Single-file mode: Shows the changes between consecutive backups of the file
Two-file mode: Shows the changes between two specific files

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	var err error
	switch len(args) {
	case 1:
		err = historyMode(args[0], *backupDir, *verbose, *summary)
	case 2:
		err = twoFileMode(args[0], args[1], *verbose, *summary)
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadLines(path string) ([]model.Line, error) {
	snap, err := storage.NewJSONStore(path).Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap.Lines, nil
}

func printResult(before, after []model.Line, verbose, summary bool) {
	result := diff.Compute(before, after)
	if result.Empty() {
		fmt.Println("No changes detected")
		return
	}
	if summary {
		fmt.Printf("  %d modified, %d added, %d deleted\n",
			len(result.Modified), len(result.New), len(result.Deleted))
		return
	}
	fmt.Print(diff.Render(diff.BuildLines(result, verbose)))
}

// twoFileMode compares two specific files
func twoFileMode(path1, path2 string, verbose, summary bool) error {
	before, err := loadLines(path1)
	if err != nil {
		return err
	}
	after, err := loadLines(path2)
	if err != nil {
		return err
	}
	fmt.Printf("=== Outline Diff: %s → %s ===\n\n", path1, path2)
	printResult(before, after, verbose, summary)
	return nil
}

// historyMode walks the backups of a file oldest first and shows what each
// one changed, ending with the file itself
func historyMode(path, backupDir string, verbose, summary bool) error {
	if backupDir == "" {
		dataDir, err := config.GetDataDir()
		if err != nil {
			return err
		}
		backupDir = filepath.Join(dataDir, "backups")
	}
	bm, err := storage.NewBackupManager(backupDir)
	if err != nil {
		return err
	}
	backups, err := bm.FindBackupsForFile(path)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Printf("No backups found for %s\n", path)
		return nil
	}

	var prev []model.Line
	for i, meta := range backups {
		backup, err := storage.LoadBackup(meta.FilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", meta.FilePath, err)
			continue
		}
		fmt.Printf("=== Backup %d: %s (%s) ===\n", i+1, meta.Timestamp.Format("2006-01-02 15:04:05"), meta.SessionID)
		printResult(prev, backup.Lines, verbose, summary)
		fmt.Println()
		prev = backup.Lines
	}

	current, err := loadLines(path)
	if err != nil {
		return err
	}
	fmt.Printf("=== Current: %s ===\n", path)
	printResult(prev, current, verbose, summary)
	return nil
}
