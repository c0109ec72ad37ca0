package diff

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// BuildLines converts a Result into display lines. It is used by both the
// CLI and the terminal view. verbose adds the old values of changed fields.
func BuildLines(result *Result, verbose bool) []Line {
	var lines []Line

	if len(result.New) > 0 {
		lines = append(lines, Line{Type: TypeNewSection, Content: "New Lines:"}, Line{Type: TypeBlank})
		for _, d := range result.New {
			lines = append(lines, formatNewLine(d)...)
		}
	}

	if len(result.Deleted) > 0 {
		lines = append(lines, Line{Type: TypeDeletedSection, Content: "Deleted Lines:"}, Line{Type: TypeBlank})
		for _, d := range result.Deleted {
			lines = append(lines,
				Line{Type: TypeDeletedLine, Content: fmt.Sprintf("%s: %s", d.ID, label(d)), Indent: 1},
				Line{Type: TypeBlank},
			)
		}
	}

	if len(result.Modified) > 0 {
		lines = append(lines, Line{Type: TypeModifiedSection, Content: "Modified Lines:"}, Line{Type: TypeBlank})
		for _, c := range result.Modified {
			lines = append(lines, formatModifiedLine(c, verbose)...)
		}
	}

	if !result.Empty() {
		lines = append(lines,
			Line{Type: TypeBlank},
			Line{Type: TypeSummary, Content: "=== Summary ==="},
			Line{
				Type: TypeSummary,
				Content: fmt.Sprintf("  %d modified, %d added, %d deleted",
					len(result.Modified), len(result.New), len(result.Deleted)),
			},
		)
	}

	return lines
}

// Render joins the display lines into plain text.
func Render(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		if l.Type != TypeBlank {
			b.WriteString(strings.Repeat("  ", l.Indent))
			b.WriteString(l.Content)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatNewLine(d *LineData) []Line {
	lines := []Line{{Type: TypeNewLine, Content: fmt.Sprintf("%s: %s", d.ID, label(d)), Indent: 1}}
	if d.ParentID != "" {
		lines = append(lines, Line{
			Type:    TypeDetail,
			Content: fmt.Sprintf("PARENT: %s at position %d", d.ParentID, d.Position),
			Indent:  2,
		})
	} else {
		lines = append(lines, Line{
			Type:    TypeDetail,
			Content: fmt.Sprintf("POSITION: root position %d", d.Position),
			Indent:  2,
		})
	}
	return append(lines, Line{Type: TypeBlank})
}

func formatModifiedLine(c *LineChange, verbose bool) []Line {
	lines := []Line{{Type: TypeModifiedLine, Content: fmt.Sprintf("%s: %s", c.Line.ID, label(c.Line)), Indent: 1}}
	detail := func(format string, args ...any) {
		lines = append(lines, Line{Type: TypeDetail, Content: fmt.Sprintf(format, args...), Indent: 2})
	}

	if c.TextChanged {
		detail("TEXT: %s → %s", truncateText(c.OldLine.Text, 40), truncateText(c.Line.Text, 40))
	}
	if c.AttachmentChanged {
		detail("ATTACHMENT: %s → %s", orNone(c.OldLine.Attachment), orNone(c.Line.Attachment))
	}
	if c.IndentChanged {
		detail("INDENT: %d → %d", c.OldLine.Indent, c.Line.Indent)
	}
	if c.Moved {
		oldParent, newParent := orRoot(c.OldLine.ParentID), orRoot(c.Line.ParentID)
		if oldParent != newParent {
			detail("MOVED: from parent %s to parent %s", oldParent, newParent)
		}
		if c.OldLine.Position != c.Line.Position {
			detail("POSITION: %d → %d", c.OldLine.Position, c.Line.Position)
		}
		if verbose {
			detail("INDEX: %d → %d", c.OldLine.Index, c.Line.Index)
		}
	}
	if c.CollapsedChanged {
		if c.Line.Collapsed {
			detail("COLLAPSED")
		} else {
			detail("EXPANDED")
		}
	}
	return append(lines, Line{Type: TypeBlank})
}

func label(d *LineData) string {
	if d.Attachment != "" {
		return "[attachment " + d.Attachment + "]"
	}
	return truncateText(d.Text, 60)
}

func orRoot(id string) string {
	if id == "" {
		return "root"
	}
	return id
}

func orNone(src string) string {
	if src == "" {
		return "none"
	}
	return src
}

// truncateText limits text length for display
func truncateText(text string, maxLen int) string {
	if utf8.RuneCountInString(text) > maxLen {
		return string([]rune(text)[:maxLen]) + "..."
	}
	return text
}
