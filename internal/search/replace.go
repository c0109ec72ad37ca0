package search

import (
	"sort"
	"strings"
)

// ExpandReplacement builds the replacement text for m. In literal mode the
// pattern is used verbatim. In regex mode these tokens are expanded, left to
// right:
//
//	$$      a literal "$"
//	$&      the whole match
//	$`      the line text before the match
//	$'      the line text after the match
//	$<name> a named group, empty when the group does not exist
//	$N $NN  positional group N (one or two digits), empty when out of range
//
// Any other "$" is copied as is. fullText is the text of the matched line.
func ExpandReplacement(m Match, pattern, fullText string, regex bool) string {
	if !regex || !strings.Contains(pattern, "$") {
		return pattern
	}
	p := []rune(pattern)
	text := []rune(fullText)
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c != '$' || i == len(p)-1 {
			b.WriteRune(c)
			continue
		}
		switch next := p[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i++
			continue
		case next == '&':
			b.WriteString(m.Text)
			i++
			continue
		case next == '`':
			b.WriteString(string(text[:clampIndex(m.Start, len(text))]))
			i++
			continue
		case next == '\'':
			b.WriteString(string(text[clampIndex(m.End, len(text)):]))
			i++
			continue
		case next == '<':
			if closing := indexRune(p, '>', i+2); closing != -1 {
				b.WriteString(m.Named[string(p[i+2 : closing])])
				i = closing
				continue
			}
		case isDigit(next):
			j := i + 1
			for j < len(p) && j-(i+1) < 2 && isDigit(p[j]) {
				j++
			}
			n := 0
			for _, d := range p[i+1 : j] {
				n = n*10 + int(d-'0')
			}
			if n > 0 && n <= len(m.Groups) {
				b.WriteString(m.Groups[n-1])
			}
			i = j - 1
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ReplaceInLine applies the replacement for every match in one line. Matches
// are applied in ascending start order against the original offsets.
func ReplaceInLine(text string, matches []Match, pattern string, regex bool) string {
	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	r := []rune(text)
	var b strings.Builder
	pos := 0
	for _, m := range sorted {
		start := clampIndex(m.Start, len(r))
		if start < pos {
			continue
		}
		b.WriteString(string(r[pos:start]))
		b.WriteString(ExpandReplacement(m, pattern, text, regex))
		pos = clampIndex(m.End, len(r))
	}
	b.WriteString(string(r[pos:]))
	return b.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func indexRune(r []rune, c rune, from int) int {
	for i := from; i < len(r); i++ {
		if r[i] == c {
			return i
		}
	}
	return -1
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
