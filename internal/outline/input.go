package outline

import "strings"

// ProcessCommittedText handles text committed by an input method. A run of
// spaces (ASCII or ideographic) typed at column 0 indents the line, or the
// selected lines, by one level per space instead of being inserted. Any other
// text is inserted. It reports whether the text was consumed.
func (e *Engine) ProcessCommittedText(text string) bool {
	if text == "" {
		return false
	}
	text = normalizeNewlines(text)
	if e.leadingSpaceIndent(text) {
		return true
	}
	e.InsertText(text)
	return true
}

func (e *Engine) leadingSpaceIndent(text string) bool {
	segments := strings.Split(text, "\n")
	first := segments[0]
	if first == "" || strings.Trim(first, " 　") != "" {
		return false
	}
	for _, s := range segments[1:] {
		if s != "" {
			return false
		}
	}
	if e.cursor.Char != 0 {
		return false
	}
	e.ChangeIndent(runeLen(first), IndentOptions{ApplyToSelection: e.HasSelection()})
	return true
}
