// Package search finds literal or regular expression matches in outline lines
// and replaces them.
//
// Matching never crosses a line boundary. A scan runs against a deadline
// computed once per call; when it passes, partial results are dropped and
// ErrTimeout is returned. The clock is injectable so timeouts can be tested
// deterministically.
package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// DefaultTimeout is the scan budget used when none is configured.
const DefaultTimeout = 1500 * time.Millisecond

// Mode selects how a query is interpreted.
type Mode int

const (
	ModeLiteral Mode = iota
	ModeRegex
)

func (m Mode) String() string {
	if m == ModeRegex {
		return "regex"
	}
	return "literal"
}

// ParseMode converts "literal" or "regex" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "literal", "text":
		return ModeLiteral, nil
	case "regex", "regexp", "re":
		return ModeRegex, nil
	}
	return ModeLiteral, fmt.Errorf("unknown search mode %q", s)
}

// Query describes one search.
type Query struct {
	Text          string
	Mode          Mode
	CaseSensitive bool
	// Scope limits matching to a range. Only the first and last scoped lines
	// are clipped by char; lines in between are searched whole.
	Scope *model.Selection
}

// Match is a single-line span. Start and End are rune offsets.
type Match struct {
	Line   int
	Start  int
	End    int
	Text   string
	Groups []string
	Named  map[string]string
}

// Matcher computes matches with a time budget.
type Matcher struct {
	// Timeout is the wall clock budget per Compute call. Zero or less disables it.
	Timeout time.Duration
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewMatcher returns a matcher with the default timeout.
func NewMatcher() *Matcher {
	return &Matcher{Timeout: DefaultTimeout, Now: time.Now}
}

type deadline struct {
	now func() time.Time
	at  time.Time
	on  bool
}

func (d deadline) expired() bool {
	return d.on && d.now().After(d.at)
}

// Compute returns every match of q in lines. An empty query matches nothing.
// Attachment lines are skipped.
func (m *Matcher) Compute(lines []model.Line, q Query) ([]Match, error) {
	if q.Text == "" {
		return nil, nil
	}
	now := m.Now
	if now == nil {
		now = time.Now
	}
	dl := deadline{now: now, on: m.Timeout > 0}
	if dl.on {
		dl.at = now().Add(m.Timeout)
	}

	first, last := 0, len(lines)-1
	if q.Scope != nil {
		sc := q.Scope.Normalize()
		first, last = sc.Start.Line, sc.End.Line
	}

	var scan func(lineIndex int, text []rune, lo, hi int, out []Match) ([]Match, error)
	if q.Mode == ModeRegex {
		re, err := m.compile(q)
		if err != nil {
			return nil, err
		}
		order := captureOrder(q.Text)
		scan = func(lineIndex int, text []rune, lo, hi int, out []Match) ([]Match, error) {
			return scanRegex(re, order, lineIndex, text, lo, hi, dl, out)
		}
	} else {
		needle := []rune(q.Text)
		if !q.CaseSensitive {
			needle = foldRunes(needle)
		}
		scan = func(lineIndex int, text []rune, lo, hi int, out []Match) ([]Match, error) {
			return scanLiteral(needle, !q.CaseSensitive, lineIndex, text, lo, hi, dl, out)
		}
	}

	var matches []Match
	for i := max(0, first); i <= last && i < len(lines); i++ {
		if lines[i].IsAtomic() {
			continue
		}
		text := []rune(lines[i].Text)
		lo, hi := 0, len(text)
		if q.Scope != nil {
			sc := q.Scope.Normalize()
			if i == sc.Start.Line {
				lo = sc.Start.Char
			}
			if i == sc.End.Line {
				hi = min(sc.End.Char, len(text))
			}
		}
		if lo >= hi {
			continue
		}
		var err error
		if matches, err = scan(i, text, lo, hi, matches); err != nil {
			return nil, m.timeoutError()
		}
		if dl.expired() {
			return nil, m.timeoutError()
		}
	}
	return matches, nil
}

func (m *Matcher) timeoutError() error {
	return fmt.Errorf("%w after %v", ErrTimeout, m.Timeout)
}

func (m *Matcher) compile(q Query) (*regexp2.Regexp, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if !q.CaseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(q.Text, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	if m.Timeout > 0 {
		re.MatchTimeout = m.Timeout
	}
	return re, nil
}

// scanLiteral finds non-overlapping occurrences of needle in text[lo:hi].
func scanLiteral(needle []rune, fold bool, lineIndex int, text []rune, lo, hi int, dl deadline, out []Match) ([]Match, error) {
	hay := text
	if fold {
		hay = foldRunes(text)
	}
	from := lo
	for {
		idx := indexRunes(hay, needle, from)
		if idx == -1 || idx+len(needle) > hi {
			return out, nil
		}
		end := idx + len(needle)
		out = append(out, Match{
			Line:  lineIndex,
			Start: idx,
			End:   end,
			Text:  string(text[idx:end]),
		})
		if dl.expired() {
			return nil, ErrTimeout
		}
		from = end
	}
}

// scanRegex walks all matches of re over the whole line and keeps those that
// fall inside [lo, hi). Empty matches are skipped; the engine steps past them.
func scanRegex(re *regexp2.Regexp, order []string, lineIndex int, text []rune, lo, hi int, dl deadline, out []Match) ([]Match, error) {
	m, err := re.FindRunesMatchStartingAt(text, 0)
	for ; m != nil; m, err = re.FindNextMatch(m) {
		if m.Length > 0 && m.Index >= lo && m.Index+m.Length <= hi {
			out = append(out, newMatch(lineIndex, m, order))
		}
		if dl.expired() {
			return nil, ErrTimeout
		}
	}
	if err != nil {
		// regexp2 only fails at match time when MatchTimeout is exceeded.
		return nil, ErrTimeout
	}
	return out, nil
}

// newMatch converts a regexp2 match. Groups are listed in the order their
// opening parens appear in the pattern; regexp2 itself numbers named groups
// after all unnamed ones.
func newMatch(lineIndex int, m *regexp2.Match, order []string) Match {
	match := Match{
		Line:  lineIndex,
		Start: m.Index,
		End:   m.Index + m.Length,
		Text:  m.String(),
	}
	add := func(g *regexp2.Group) {
		value := ""
		if g != nil && len(g.Captures) > 0 {
			value = g.String()
		}
		match.Groups = append(match.Groups, value)
		if g == nil {
			return
		}
		if _, err := strconv.Atoi(g.Name); err != nil {
			if match.Named == nil {
				match.Named = make(map[string]string)
			}
			match.Named[g.Name] = value
		}
	}

	groups := m.Groups()[1:]
	if len(order) != len(groups) {
		for i := range groups {
			add(&groups[i])
		}
		return match
	}
	unnamed := 0
	for _, name := range order {
		if name == "" {
			unnamed++
			add(m.GroupByNumber(unnamed))
		} else {
			add(m.GroupByName(name))
		}
	}
	return match
}

// captureOrder lists the capturing groups of pattern in source order: "" for
// an unnamed group, its name for a named one.
func captureOrder(pattern string) []string {
	p := []rune(pattern)
	var order []string
	inClass := false
	for i := 0; i < len(p); i++ {
		switch c := p[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			if i+1 < len(p) && p[i+1] == '?' {
				if name, ok := groupName(p, i+2); ok {
					order = append(order, name)
				}
				continue
			}
			order = append(order, "")
		}
	}
	return order
}

// groupName reads a (?<name> or (?'name' group name starting at p[i].
// Lookbehinds are not groups.
func groupName(p []rune, i int) (string, bool) {
	if i >= len(p) {
		return "", false
	}
	var closer rune
	switch p[i] {
	case '<':
		closer = '>'
	case '\'':
		closer = '\''
	default:
		return "", false
	}
	if i+1 < len(p) && (p[i+1] == '=' || p[i+1] == '!') {
		return "", false
	}
	end := indexRune(p, closer, i+1)
	if end == -1 {
		return "", false
	}
	return string(p[i+1 : end]), true
}

func foldRunes(r []rune) []rune {
	out := make([]rune, len(r))
	for i, c := range r {
		out[i] = unicode.ToLower(c)
	}
	return out
}

// indexRunes returns the rune index of needle in hay at or after from, or -1.
func indexRunes(hay, needle []rune, from int) int {
	if from > len(hay) {
		return -1
	}
	s := string(hay[from:])
	b := strings.Index(s, string(needle))
	if b == -1 {
		return -1
	}
	return from + utf8.RuneCountInString(s[:b])
}
