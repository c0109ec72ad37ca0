// Package import_parser turns plain text and markdown into outline lines.
package import_parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// ImportFormat represents different file formats that can be imported
type ImportFormat string

const (
	FormatMarkdown     ImportFormat = "markdown"
	FormatIndentedText ImportFormat = "indented"
	FormatAuto         ImportFormat = "auto" // Auto-detect from extension
)

// Parser converts file content into flat outline lines.
type Parser interface {
	Parse(content string) ([]model.Line, error)
	Name() string
}

// Import parses content in the given format. Every returned line has a fresh
// ID and the indents form a valid outline: the first line is at 0 and no line
// is more than one level deeper than the line before it.
func Import(content string, format ImportFormat) ([]model.Line, error) {
	var parser Parser

	switch format {
	case FormatMarkdown:
		parser = &MarkdownParser{}
	case FormatIndentedText:
		parser = &IndentedTextParser{}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}

	lines, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}

	return normalizeIndents(lines), nil
}

// DetectFormat picks the format from the file extension
func DetectFormat(filename string) ImportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	}
	return FormatIndentedText
}

// ParseFormat converts a format name into an ImportFormat. "auto" and ""
// resolve through DetectFormat.
func ParseFormat(name, filename string) (ImportFormat, error) {
	switch ImportFormat(strings.ToLower(name)) {
	case "", FormatAuto:
		return DetectFormat(filename), nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatIndentedText, "text", "txt":
		return FormatIndentedText, nil
	}
	return "", fmt.Errorf("unsupported import format: %s", name)
}

// normalizeIndents shifts the whole document left to its shallowest line and
// then clamps every jump deeper than one level.
func normalizeIndents(lines []model.Line) []model.Line {
	if len(lines) == 0 {
		return lines
	}
	base := lines[0].Indent
	for _, l := range lines {
		base = min(base, l.Indent)
	}
	prev := -1
	for i := range lines {
		lines[i].Indent -= base
		if lines[i].Indent > prev+1 {
			lines[i].Indent = prev + 1
		}
		if lines[i].Indent < 0 {
			lines[i].Indent = 0
		}
		prev = lines[i].Indent
	}
	return lines
}

// countIndent returns the leading width, counting a tab as two spaces.
func countIndent(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			indent += 2
		} else if line[i] == ' ' {
			indent++
		} else {
			break
		}
	}
	return indent
}
