package outline

import "github.com/pstuifzand/outline-engine/internal/model"

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// wordBoundary returns the caret position for a word move on l. Attachment
// lines have no words, so the char is returned clamped.
func wordBoundary(l *model.Line, index, dir int) int {
	if l.IsAtomic() {
		return clamp(index, 0, l.Len())
	}
	return findWordBoundary([]rune(l.Text), index, dir)
}

// findWordBoundary scans text from index. Moving left it returns the start of
// the run of same-class runes ending before index. Moving right it returns the
// end of the run starting at index.
func findWordBoundary(text []rune, index, dir int) int {
	wordAt := func(i int) bool {
		return i >= 0 && i < len(text) && isWordRune(text[i])
	}
	if dir < 0 {
		i := max(0, index-1)
		class := wordAt(i)
		for i > 0 && wordAt(i-1) == class {
			i--
		}
		return i
	}
	i := clamp(index, 0, len(text))
	class := wordAt(i)
	for i < len(text) && wordAt(i) == class {
		i++
	}
	return i
}
