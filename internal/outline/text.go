package outline

import (
	"strings"
	"unicode/utf8"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// headOf returns the text of l before rune offset n. Attachment lines have no text.
func headOf(l *model.Line, n int) string {
	if l.IsAtomic() {
		return ""
	}
	r := []rune(l.Text)
	return string(r[:clamp(n, 0, len(r))])
}

// tailOf returns the text of l from rune offset n.
func tailOf(l *model.Line, n int) string {
	if l.IsAtomic() {
		return ""
	}
	r := []rune(l.Text)
	return string(r[clamp(n, 0, len(r)):])
}

func sliceRunes(s string, from, to int) string {
	r := []rune(s)
	from = clamp(from, 0, len(r))
	to = clamp(to, from, len(r))
	return string(r[from:to])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
