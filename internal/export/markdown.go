// Package export writes outline lines as markdown or indented text.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatIndented Format = "indented"
)

// FormatFor picks the format from the file extension.
func FormatFor(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".md", ".markdown":
		return FormatMarkdown
	}
	return FormatIndented
}

// WriteMarkdown writes lines as an unordered list, two spaces per level.
// Blank text lines are skipped; attachments become image links.
func WriteMarkdown(w io.Writer, lines []model.Line) error {
	var sb strings.Builder
	for _, l := range lines {
		if !l.IsAtomic() && strings.TrimSpace(l.Text) == "" {
			continue
		}
		sb.WriteString(strings.Repeat("  ", l.Indent))
		sb.WriteString("- ")
		if l.IsAtomic() {
			sb.WriteString(fmt.Sprintf("![%s](%s)", l.Attachment.Name, l.Attachment.Src))
		} else {
			sb.WriteString(l.Text)
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteIndented writes one line per outline line, indented two spaces per
// level. Attachment lines are written as their source.
func WriteIndented(w io.Writer, lines []model.Line) error {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(strings.Repeat("  ", l.Indent))
		if l.IsAtomic() {
			sb.WriteString(l.Attachment.Src)
		} else {
			sb.WriteString(l.Text)
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// ExportToFile writes lines to filePath in the given format.
func ExportToFile(lines []model.Line, filePath string, format Format) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatMarkdown:
		err = WriteMarkdown(f, lines)
	case FormatIndented:
		err = WriteIndented(f, lines)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}
