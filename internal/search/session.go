package search

import (
	"log/slog"
	"time"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// Document is the part of the outline engine a search session works on.
type Document interface {
	Lines() []model.Line
	Version() uint64
	NormalizedSelection() (model.Selection, bool)
	SelectedText() string
	SetSelection(start, end model.Point)
	ReplaceLineTexts(edits []model.LineEdit) bool
}

// State is the lifecycle state of a Session.
type State int

const (
	StateClosed State = iota
	// StateOpen means the session is open but its results are stale.
	StateOpen
	// StateEvaluated means the results match the current document version.
	StateEvaluated
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateEvaluated:
		return "evaluated"
	}
	return "closed"
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTimeout sets the scan budget. Zero disables the timeout.
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.matcher.Timeout = d
	}
}

// WithClock replaces the clock used for the scan deadline.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.matcher.Now = now
		}
	}
}

// WithLogger sets the logger for search failures.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// OpenOptions controls Open.
type OpenOptions struct {
	// PrefillSelection uses the selected text as the query when there is one.
	PrefillSelection bool
}

// Session is one find/replace panel bound to a document. Results are
// recomputed on every query or option change and whenever the document
// version moves past the last evaluated one.
type Session struct {
	doc     Document
	matcher *Matcher
	logger  *slog.Logger

	open          bool
	query         string
	mode          Mode
	caseSensitive bool
	useScope      bool
	scope         *model.Selection
	replacement   string

	matches     []Match
	active      int
	err         error
	lastVersion uint64
}

// NewSession creates a closed session over doc.
func NewSession(doc Document, opts ...SessionOption) *Session {
	s := &Session{
		doc:     doc,
		matcher: NewMatcher(),
		logger:  slog.New(slog.DiscardHandler),
		active:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open shows the session and evaluates the current query.
func (s *Session) Open(opts OpenOptions) {
	if opts.PrefillSelection {
		if text := s.doc.SelectedText(); text != "" {
			s.query = text
		}
	}
	s.scope = nil
	if s.useScope {
		s.captureScope()
	}
	s.open = true
	s.Update(false, -1)
}

// Close hides the session and drops its results and scope.
func (s *Session) Close() {
	if !s.open {
		return
	}
	s.open = false
	s.scope = nil
	s.clear()
}

// IsOpen reports whether the session is open.
func (s *Session) IsOpen() bool {
	return s.open
}

// State returns the lifecycle state.
func (s *Session) State() State {
	switch {
	case !s.open:
		return StateClosed
	case s.Stale():
		return StateOpen
	}
	return StateEvaluated
}

// Query returns the current query text.
func (s *Session) Query() string { return s.query }

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// CaseSensitive reports whether matching is case sensitive.
func (s *Session) CaseSensitive() bool { return s.caseSensitive }

// Replacement returns the replacement pattern.
func (s *Session) Replacement() string { return s.replacement }

// SetQuery changes the query and re-evaluates.
func (s *Session) SetQuery(q string) {
	s.query = q
	s.Update(false, -1)
}

// SetMode switches between literal and regex matching and re-evaluates.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	s.Update(false, -1)
}

// SetCaseSensitive changes case sensitivity and re-evaluates.
func (s *Session) SetCaseSensitive(on bool) {
	s.caseSensitive = on
	s.Update(false, -1)
}

// SetScopeToSelection restricts matching to the current selection. The scope
// is captured now and kept until scoping is turned off or the session closes.
// Without a non-empty selection the previous scope, if any, is kept.
func (s *Session) SetScopeToSelection(on bool) {
	s.useScope = on
	if on {
		s.captureScope()
	} else {
		s.scope = nil
	}
	s.Update(false, -1)
}

// ScopeToSelection reports whether scoping is turned on.
func (s *Session) ScopeToSelection() bool { return s.useScope }

// Scope returns the captured scope.
func (s *Session) Scope() (model.Selection, bool) {
	if s.scope == nil {
		return model.Selection{}, false
	}
	return *s.scope, true
}

// SetReplacement sets the replacement pattern.
func (s *Session) SetReplacement(pattern string) {
	s.replacement = pattern
}

// Matches returns the current results.
func (s *Session) Matches() []Match {
	out := make([]Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// ActiveIndex returns the index of the active match, or -1.
func (s *Session) ActiveIndex() int {
	return s.active
}

// ActiveMatch returns the active match.
func (s *Session) ActiveMatch() (Match, bool) {
	if s.active < 0 || s.active >= len(s.matches) {
		return Match{}, false
	}
	return s.matches[s.active], true
}

// Err returns the error of the last evaluation: ErrInvalidPattern or
// ErrTimeout, wrapped. While it is set navigation and replacement do nothing.
func (s *Session) Err() error {
	return s.err
}

// Stale reports whether the document changed since the last evaluation.
func (s *Session) Stale() bool {
	return s.open && s.doc.Version() != s.lastVersion
}

// Refresh re-evaluates stale results, keeping the active match when it still
// exists. It reports whether an evaluation ran.
func (s *Session) Refresh() bool {
	if !s.Stale() {
		return false
	}
	s.Update(true, -1)
	return true
}

// Update recomputes the matches. With preserveActive the previously active
// match stays active if an identical span is found. A preferred index >= 0
// wins over that and is clamped to the new match count.
func (s *Session) Update(preserveActive bool, preferred int) {
	if !s.open {
		return
	}
	if s.query == "" {
		s.clear()
		return
	}

	var prev *Match
	if preserveActive && s.active >= 0 && s.active < len(s.matches) {
		p := s.matches[s.active]
		prev = &p
	}

	matches, err := s.matcher.Compute(s.doc.Lines(), Query{
		Text:          s.query,
		Mode:          s.mode,
		CaseSensitive: s.caseSensitive,
		Scope:         s.scope,
	})
	s.lastVersion = s.doc.Version()
	if err != nil {
		s.logger.Warn("search failed", "query", s.query, "mode", s.mode.String(), "err", err)
		s.matches = nil
		s.active = -1
		s.err = err
		return
	}
	s.err = nil
	s.matches = matches

	next := -1
	if len(matches) > 0 {
		switch {
		case preferred >= 0:
			next = min(preferred, len(matches)-1)
		case prev != nil:
			for i, m := range matches {
				if m.Line == prev.Line && m.Start == prev.Start && m.End == prev.End {
					next = i
					break
				}
			}
		}
		if next == -1 {
			next = 0
		}
	}
	s.SetActive(next)
}

// SetActive makes match i active and selects it in the document. An index
// out of range clears the active match.
func (s *Session) SetActive(i int) {
	if i < 0 || i >= len(s.matches) {
		s.active = -1
		return
	}
	s.active = i
	m := s.matches[i]
	s.doc.SetSelection(model.Point{Line: m.Line, Char: m.Start}, model.Point{Line: m.Line, Char: m.End})
}

// Step moves to the next (dir > 0) or previous match, wrapping around. With
// no active match it jumps to the first or last one.
func (s *Session) Step(dir int) {
	s.Refresh()
	n := len(s.matches)
	if n == 0 || s.err != nil || dir == 0 {
		return
	}
	next := s.active
	switch {
	case next == -1 && dir > 0:
		next = 0
	case next == -1:
		next = n - 1
	case dir > 0:
		next = (next + 1) % n
	default:
		next = (next - 1 + n) % n
	}
	s.SetActive(next)
}

// ReplaceCurrent replaces the active match and re-evaluates, keeping the
// active position. It reports whether a replacement was made.
func (s *Session) ReplaceCurrent() bool {
	if !s.open {
		return false
	}
	s.Refresh()
	m, ok := s.ActiveMatch()
	if !ok || s.err != nil {
		return false
	}
	lines := s.doc.Lines()
	if m.Line >= len(lines) {
		return false
	}

	text := lines[m.Line].Text
	r := []rune(text)
	replacement := ExpandReplacement(m, s.replacement, text, s.mode == ModeRegex)
	updated := string(r[:clampIndex(m.Start, len(r))]) + replacement + string(r[clampIndex(m.End, len(r)):])
	s.doc.ReplaceLineTexts([]model.LineEdit{{Line: m.Line, Text: updated}})
	s.Update(false, s.active)
	return true
}

// ReplaceAll replaces every match as one undoable step and re-evaluates. It
// returns the number of matches replaced.
func (s *Session) ReplaceAll() int {
	if !s.open {
		return 0
	}
	s.Refresh()
	if len(s.matches) == 0 || s.err != nil {
		return 0
	}

	lines := s.doc.Lines()
	byLine := make(map[int][]Match)
	var order []int
	for _, m := range s.matches {
		if _, ok := byLine[m.Line]; !ok {
			order = append(order, m.Line)
		}
		byLine[m.Line] = append(byLine[m.Line], m)
	}

	edits := make([]model.LineEdit, 0, len(order))
	for _, i := range order {
		if i >= len(lines) {
			continue
		}
		edits = append(edits, model.LineEdit{
			Line: i,
			Text: ReplaceInLine(lines[i].Text, byLine[i], s.replacement, s.mode == ModeRegex),
		})
	}
	count := len(s.matches)
	s.doc.ReplaceLineTexts(edits)
	s.Update(false, -1)
	return count
}

func (s *Session) captureScope() {
	sel, ok := s.doc.NormalizedSelection()
	if !ok || sel.IsEmpty() {
		return
	}
	s.scope = &sel
}

func (s *Session) clear() {
	s.matches = nil
	s.active = -1
	s.err = nil
	s.lastVersion = s.doc.Version()
}
