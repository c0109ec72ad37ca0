package import_parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/model"
)

type flat struct {
	Text   string
	Indent int
}

func flatten(lines []model.Line) []flat {
	out := make([]flat, len(lines))
	for i, l := range lines {
		out[i] = flat{l.Text, l.Indent}
	}
	return out
}

func TestImportIndentedText(t *testing.T) {
	content := "Groceries\n  Milk\n\tEggs\n      Too deep\n\nWork\n"
	lines, err := Import(content, FormatIndentedText)
	require.NoError(t, err)

	assert.Equal(t, []flat{
		{"Groceries", 0},
		{"Milk", 1},
		{"Eggs", 1},
		{"Too deep", 2},
		{"Work", 0},
	}, flatten(lines))

	seen := map[string]bool{}
	for _, l := range lines {
		assert.NotEmpty(t, l.ID)
		assert.False(t, seen[l.ID])
		seen[l.ID] = true
	}
}

func TestImportIndentedTextLeadingIndent(t *testing.T) {
	lines, err := Import("    a\n    b", FormatIndentedText)
	require.NoError(t, err)
	assert.Equal(t, []flat{{"a", 0}, {"b", 0}}, flatten(lines))
}

func TestImportMarkdown(t *testing.T) {
	content := `# Project
Intro paragraph
## Tasks
- write code
  - [x] tests
- ship
![diagram](img/arch.png)
# Notes
`
	lines, err := Import(content, FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, []flat{
		{"Project", 0},
		{"Intro paragraph", 1},
		{"Tasks", 1},
		{"write code", 2},
		{"tests", 3},
		{"ship", 2},
		{"", 3},
		{"Notes", 0},
	}, flatten(lines))

	att := lines[6].Attachment
	require.NotNil(t, att)
	assert.Equal(t, "img/arch.png", att.Src)
	assert.Equal(t, "diagram", att.Name)
}

func TestParseHeader(t *testing.T) {
	level, text := parseHeader("### Third")
	assert.Equal(t, 2, level)
	assert.Equal(t, "Third", text)

	level, _ = parseHeader("#hashtag")
	assert.Equal(t, -1, level)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatMarkdown, DetectFormat("notes.MD"))
	assert.Equal(t, FormatIndentedText, DetectFormat("notes.txt"))
	assert.Equal(t, FormatIndentedText, DetectFormat("notes"))

	f, err := ParseFormat("auto", "a.markdown")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("opml", "a.opml")
	assert.Error(t, err)
}

func TestImportUnsupported(t *testing.T) {
	_, err := Import("x", ImportFormat("opml"))
	assert.Error(t, err)
}
