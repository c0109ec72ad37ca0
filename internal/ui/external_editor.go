package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/outline-engine/internal/config"
	"github.com/pstuifzand/outline-engine/internal/model"
)

// ErrAtomicLine is returned when asked to edit an attachment line
var ErrAtomicLine = errors.New("attachment lines cannot be edited as text")

// ExternalEdit is the result of editing a line in an external editor
type ExternalEdit struct {
	Text      string `toml:"-"`
	Indent    int    `toml:"indent"`
	Collapsed bool   `toml:"collapsed"`
}

// runEditor launches the editor on path with the terminal attached
var runEditor = func(editorCmd, path string) error {
	// sh -c so commands with flags like "vim --clean" work
	cmd := exec.Command("sh", "-c", editorCmd+" "+path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// EditLineInExternalEditor opens the text of l in editorCmd. The file starts
// with TOML frontmatter holding the indent and fold state. changed is false
// when the file was left untouched or emptied. Newlines in the edited text
// are joined with spaces since a line holds a single row.
func EditLineInExternalEditor(l model.Line, editorCmd string) (edit ExternalEdit, changed bool, err error) {
	if l.IsAtomic() {
		return ExternalEdit{}, false, ErrAtomicLine
	}
	tmpFile, err := os.CreateTemp("", "outliner-edit-*.txt")
	if err != nil {
		return ExternalEdit{}, false, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	original := ExternalEdit{Text: l.Text, Indent: l.Indent, Collapsed: l.Collapsed}
	originalContent, err := serializeEdit(original)
	if err != nil {
		tmpFile.Close()
		return ExternalEdit{}, false, fmt.Errorf("failed to serialize line: %w", err)
	}
	if _, err := tmpFile.Write(originalContent); err != nil {
		tmpFile.Close()
		return ExternalEdit{}, false, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpFile.Close()

	if err := runEditor(editorCmd, tmpPath); err != nil {
		// A non-zero exit still leaves a file worth reading
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return ExternalEdit{}, false, fmt.Errorf("failed to launch editor: %w", err)
		}
	}

	editedContent, err := os.ReadFile(tmpPath)
	if err != nil {
		return ExternalEdit{}, false, fmt.Errorf("failed to read edited file: %w", err)
	}
	if bytes.Equal(originalContent, editedContent) || len(editedContent) == 0 {
		return original, false, nil
	}

	edit, err = deserializeEdit(editedContent, original)
	if err != nil {
		return original, false, fmt.Errorf("failed to parse edited content: %w (keeping original)", err)
	}
	return edit, edit != original, nil
}

func serializeEdit(e ExternalEdit) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("+++\n")
	if err := toml.NewEncoder(&buf).Encode(e); err != nil {
		return nil, err
	}
	buf.WriteString("+++\n")
	buf.WriteString(e.Text)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// deserializeEdit parses edited content. Without frontmatter the whole file
// is the text and the indent and fold state of base are kept.
func deserializeEdit(content []byte, base ExternalEdit) (ExternalEdit, error) {
	s := strings.ReplaceAll(string(content), "\r\n", "\n")
	edit := base

	body := s
	if rest, ok := strings.CutPrefix(s, "+++\n"); ok {
		end := strings.Index(rest, "+++\n")
		if end >= 0 {
			if err := toml.Unmarshal([]byte(rest[:end]), &edit); err != nil {
				return base, err
			}
			body = rest[end+4:]
		}
	}
	if edit.Indent < 0 {
		edit.Indent = 0
	}
	edit.Text = strings.ReplaceAll(strings.TrimRight(body, "\n"), "\n", " ")
	return edit, nil
}

// ResolveEditor determines which editor to use
func ResolveEditor(cfg *config.Config) string {
	// Set via :set editor
	if cfg != nil {
		if editorVal := cfg.Get("editor"); editorVal != "" {
			return editorVal
		}
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}
