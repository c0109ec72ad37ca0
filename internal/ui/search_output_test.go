package ui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/search"
)

func TestParseFormatFlag(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  OutputFormat
		shouldErr bool
	}{
		{"text format", "text", OutputFormatText, false},
		{"fields format", "fields", OutputFormatFields, false},
		{"json format", "json", OutputFormatJSON, false},
		{"jsonl format", "jsonl", OutputFormatJSONL, false},
		{"invalid format", "xml", OutputFormatText, true},
		{"case insensitive", "JSON", OutputFormatJSON, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseFormatFlag(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseFieldsFlag(t *testing.T) {
	assert.Nil(t, ParseFieldsFlag(""))
	assert.Equal(t, []string{"line", "match"}, ParseFieldsFlag(" line, ,match "))
}

func outputFixture() ([]search.Match, []model.Line) {
	lines := []model.Line{
		{ID: "a", Text: "alice@example"},
		{ID: "b", Text: "bob@test", Indent: 1},
	}
	matches := []search.Match{
		{Line: 0, Start: 0, End: 13, Text: "alice@example", Groups: []string{"alice", "example"}, Named: map[string]string{"user": "alice"}},
		{Line: 1, Start: 0, End: 8, Text: "bob@test", Groups: []string{"bob", "test"}, Named: map[string]string{"user": "bob"}},
	}
	return matches, lines
}

func TestFormatText(t *testing.T) {
	matches, lines := outputFixture()
	out, err := NewSearchOutputFormatter().FormatResults(matches, lines, OutputFormatText, nil)
	require.NoError(t, err)
	assert.Equal(t, "1:1: alice@example\n2:1: bob@test", out)
}

func TestFormatFields(t *testing.T) {
	matches, lines := outputFixture()
	f := NewSearchOutputFormatter()

	tests := []struct {
		name     string
		fields   []string
		expected string
	}{
		{"default fields", nil, "0\t0\t13\talice@example\n1\t0\t8\tbob@test"},
		{"id and indent", []string{"id", "indent"}, "a\t0\nb\t1"},
		{"groups", []string{"groups", "group:user"}, "alice,example\talice\nbob,test\tbob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.FormatResults(matches, lines, OutputFormatFields, tt.fields)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestFormatJSONL(t *testing.T) {
	matches, lines := outputFixture()
	out, err := NewSearchOutputFormatter().FormatResults(matches, lines, OutputFormatJSONL, []string{"line", "match"})
	require.NoError(t, err)

	rows := strings.Split(out, "\n")
	require.Len(t, rows, 2)
	var obj map[string]any
	require.NoError(t, json.Unmarshal([]byte(rows[1]), &obj))
	assert.Equal(t, float64(1), obj["line"])
	assert.Equal(t, "bob@test", obj["match"])
}

func TestFormatNoMatches(t *testing.T) {
	out, err := NewSearchOutputFormatter().FormatResults(nil, nil, OutputFormatJSON, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
