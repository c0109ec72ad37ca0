package model

// Point addresses a caret position: a line index and a rune offset in that line.
type Point struct {
	Line int `json:"lineIndex"`
	Char int `json:"charIndex"`
}

// ComparePoints orders points by line, then by char. The result is negative,
// zero or positive.
func ComparePoints(a, b Point) int {
	if a.Line != b.Line {
		return a.Line - b.Line
	}
	return a.Char - b.Char
}

// Before reports whether p sorts before q
func (p Point) Before(q Point) bool {
	return ComparePoints(p, q) < 0
}

// Selection is a range between two points. Start and End are not ordered.
type Selection struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Normalize returns the selection with Start <= End
func (s Selection) Normalize() Selection {
	if ComparePoints(s.Start, s.End) <= 0 {
		return s
	}
	return Selection{Start: s.End, End: s.Start}
}

// IsEmpty reports whether both endpoints are equal
func (s Selection) IsEmpty() bool {
	return ComparePoints(s.Start, s.End) == 0
}

// LineRange returns the first and last line index covered by the selection
func (s Selection) LineRange() (int, int) {
	n := s.Normalize()
	return n.Start.Line, n.End.Line
}
