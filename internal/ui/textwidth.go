package ui

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Display width helpers. All widths are screen columns, all indices are rune
// indices, matching the char offsets of the outline engine.

// RuneWidth returns the display width of a single rune: 2 for wide runes
// (emoji, CJK), 0 for combining marks and control characters, 1 otherwise.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// cellRune returns the rune drawn for r and its width. Control characters
// such as tab are drawn as a single space so the caret never lands on a
// zero-width cell.
func cellRune(r rune) (rune, int) {
	if unicode.IsControl(r) {
		return ' ', 1
	}
	return r, RuneWidth(r)
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ColumnOf returns the column at which rune index char starts when text is
// drawn from column 0.
func ColumnOf(text []rune, char int) int {
	col := 0
	for i := 0; i < char && i < len(text); i++ {
		_, w := cellRune(text[i])
		col += w
	}
	return col
}

// CharAtColumn returns the rune index whose cell covers col. Columns past the
// end map to len(text).
func CharAtColumn(text []rune, col int) int {
	x := 0
	for i, r := range text {
		_, w := cellRune(r)
		if col < x+w {
			return i
		}
		x += w
	}
	return len(text)
}

// TruncateToWidth truncates s to at most maxWidth columns without splitting
// a rune
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// TruncateToWidthWithEllipsis truncates s with "..." if it exceeds maxWidth
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadStringToWidth pads s with spaces to width columns
func PadStringToWidth(s string, width int) string {
	return runewidth.FillRight(s, width)
}
