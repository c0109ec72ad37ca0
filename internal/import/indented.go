package import_parser

import (
	"bufio"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// IndentedTextParser imports plain text where every two spaces (or one tab)
// of leading whitespace is one level.
type IndentedTextParser struct{}

func (p *IndentedTextParser) Name() string {
	return "Indented Text"
}

// Parse converts indented text to lines. Blank lines are skipped.
func (p *IndentedTextParser) Parse(content string) ([]model.Line, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var lines []model.Line
	for scanner.Scan() {
		raw := scanner.Text()
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lines = append(lines, *model.NewLine(text, countIndent(raw)/2))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
