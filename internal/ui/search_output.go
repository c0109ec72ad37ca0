package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/search"
)

// OutputFormat specifies how search results should be formatted
type OutputFormat int

const (
	OutputFormatText OutputFormat = iota
	OutputFormatFields
	OutputFormatJSON
	OutputFormatJSONL
)

// DefaultFields are printed by the fields format when none are requested
var DefaultFields = []string{"line", "start", "end", "match"}

// SearchOutputFormatter formats search matches for command line output.
// The text format is grep-like with 1-based line and column numbers; the
// other formats report the 0-based rune offsets used everywhere else.
type SearchOutputFormatter struct{}

// NewSearchOutputFormatter creates a new search output formatter
func NewSearchOutputFormatter() *SearchOutputFormatter {
	return &SearchOutputFormatter{}
}

// FormatResults formats matches found in lines
func (f *SearchOutputFormatter) FormatResults(
	matches []search.Match,
	lines []model.Line,
	format OutputFormat,
	fields []string,
) (string, error) {
	if len(matches) == 0 {
		return "", nil
	}

	switch format {
	case OutputFormatFields:
		return f.formatFields(matches, lines, fields), nil
	case OutputFormatJSON:
		return f.formatJSON(matches, lines, fields)
	case OutputFormatJSONL:
		return f.formatJSONL(matches, lines, fields)
	default:
		return f.formatText(matches, lines), nil
	}
}

func (f *SearchOutputFormatter) formatText(matches []search.Match, lines []model.Line) string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, fmt.Sprintf("%d:%d: %s", m.Line+1, m.Start+1, lineText(lines, m.Line)))
	}
	return strings.Join(out, "\n")
}

// formatFields formats results as tab-separated values
func (f *SearchOutputFormatter) formatFields(matches []search.Match, lines []model.Line, fields []string) string {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		values := make([]string, 0, len(fields))
		for _, field := range fields {
			switch v := f.getFieldValue(m, lines, field).(type) {
			case []string:
				values = append(values, strings.Join(v, ","))
			default:
				values = append(values, fmt.Sprintf("%v", v))
			}
		}
		out = append(out, strings.Join(values, "\t"))
	}
	return strings.Join(out, "\n")
}

// formatJSON formats results as a JSON array
func (f *SearchOutputFormatter) formatJSON(matches []search.Match, lines []model.Line, fields []string) (string, error) {
	result := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		result = append(result, f.getMatchAsObject(m, lines, fields))
	}
	data, err := json.MarshalIndent(result, "", "  ")
	return string(data), err
}

// formatJSONL formats results as JSON Lines (one JSON object per line)
func (f *SearchOutputFormatter) formatJSONL(matches []search.Match, lines []model.Line, fields []string) (string, error) {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		data, err := json.Marshal(f.getMatchAsObject(m, lines, fields))
		if err != nil {
			return "", err
		}
		out = append(out, string(data))
	}
	return strings.Join(out, "\n"), nil
}

func (f *SearchOutputFormatter) getMatchAsObject(m search.Match, lines []model.Line, fields []string) map[string]any {
	if len(fields) == 0 {
		fields = []string{"line", "start", "end", "match", "text", "id", "groups"}
	}
	obj := make(map[string]any, len(fields))
	for _, field := range fields {
		obj[field] = f.getFieldValue(m, lines, field)
	}
	return obj
}

// getFieldValue extracts a field of a match. "group:name" selects a named
// regex group.
func (f *SearchOutputFormatter) getFieldValue(m search.Match, lines []model.Line, field string) any {
	if name, ok := strings.CutPrefix(field, "group:"); ok {
		return m.Named[name]
	}
	switch field {
	case "line":
		return m.Line
	case "start":
		return m.Start
	case "end":
		return m.End
	case "match":
		return m.Text
	case "text":
		return lineText(lines, m.Line)
	case "id":
		if m.Line < len(lines) {
			return lines[m.Line].ID
		}
		return ""
	case "indent":
		if m.Line < len(lines) {
			return lines[m.Line].Indent
		}
		return 0
	case "groups":
		if m.Groups == nil {
			return []string{}
		}
		return m.Groups
	default:
		return ""
	}
}

func lineText(lines []model.Line, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i].Text
}

// ParseFormatFlag parses the format flag and returns the corresponding OutputFormat
func ParseFormatFlag(flagValue string) (OutputFormat, error) {
	switch strings.ToLower(flagValue) {
	case "text", "":
		return OutputFormatText, nil
	case "fields":
		return OutputFormatFields, nil
	case "json":
		return OutputFormatJSON, nil
	case "jsonl":
		return OutputFormatJSONL, nil
	default:
		return OutputFormatText, fmt.Errorf("invalid format: %s (valid options: text, fields, json, jsonl)", flagValue)
	}
}

// ParseFieldsFlag parses the --fields flag into a list of field names
func ParseFieldsFlag(flagValue string) []string {
	if flagValue == "" {
		return nil
	}
	var fields []string
	for _, field := range strings.Split(flagValue, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
