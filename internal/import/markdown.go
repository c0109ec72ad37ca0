package import_parser

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

var imagePattern = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]+)\)$`)

// MarkdownParser imports markdown. Headers nest by level, list items nest
// under the last header by their own indentation, plain paragraphs become
// children of the last header or list item, and a line holding only an image
// becomes an attachment line.
type MarkdownParser struct{}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

// Parse converts markdown content to lines
func (p *MarkdownParser) Parse(content string) ([]model.Line, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var lines []model.Line
	headerDepth := 0 // indent for content under the current header
	lastDepth := -1  // indent of the last header or list item

	for scanner.Scan() {
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		if level, text := parseHeader(trimmed); level >= 0 {
			lines = append(lines, *model.NewLine(text, level))
			headerDepth = level + 1
			lastDepth = level
			continue
		}

		if level, text := parseListItem(raw); level >= 0 {
			indent := headerDepth + level
			lines = append(lines, *p.newLine(text, indent))
			lastDepth = indent
			continue
		}

		lines = append(lines, *p.newLine(trimmed, lastDepth+1))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (p *MarkdownParser) newLine(text string, indent int) *model.Line {
	if m := imagePattern.FindStringSubmatch(text); m != nil {
		return model.NewAttachmentLine(model.Attachment{Src: m[2], Name: m[1]}, indent)
	}
	return model.NewLine(text, indent)
}

// parseHeader extracts the 0-based level and text of an ATX header
func parseHeader(line string) (level int, text string) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || (n < len(line) && line[n] != ' ') {
		return -1, ""
	}
	return n - 1, strings.TrimSpace(line[n:])
}

// parseListItem extracts the nesting level and text of a list item
func parseListItem(line string) (level int, text string) {
	indent := countIndent(line)
	trimmed := strings.TrimSpace(line)

	if len(trimmed) > 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') && trimmed[1] == ' ' {
		text = strings.TrimSpace(trimmed[2:])
		text = strings.TrimPrefix(strings.TrimPrefix(text, "[ ] "), "[x] ")
		return indent / 2, text
	}

	return -1, ""
}
