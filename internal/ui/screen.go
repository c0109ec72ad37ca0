package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/outline-engine/internal/theme"
)

// Screen wraps a tcell screen with width-aware drawing and theme styles
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates and initializes a terminal screen with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initializes an existing tcell screen. Tests pass a
// simulation screen here.
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}
	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Suspend releases the terminal, e.g. while an external editor runs
func (s *Screen) Suspend() error {
	return s.tcellScreen.Suspend()
}

// Resume takes the terminal back after Suspend
func (s *Screen) Resume() error {
	return s.tcellScreen.Resume()
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.SetStyle(s.Theme.Style())
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws text starting at column x and returns the column after
// the last cell drawn. Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		cell, w := cellRune(r)
		if w == 0 {
			continue
		}
		s.SetCell(x, y, cell, style)
		x += w
	}
	return x
}

// DrawStringLimited draws text, truncating it to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// FillRow paints columns [x, width) of row y with style
func (s *Screen) FillRow(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// ShowCursor places the terminal cursor. A negative x hides it.
func (s *Screen) ShowCursor(x, y int) {
	if x < 0 {
		s.tcellScreen.HideCursor()
		return
	}
	s.tcellScreen.ShowCursor(x, y)
}

// PollEvent polls for the next event (key press, resize, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync redraws the whole terminal, used after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// Theme-aware style methods

func (s *Screen) pair(fg, bg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(bg)
}

// LineStyle returns the style for document text
func (s *Screen) LineStyle() tcell.Style {
	return s.Theme.Style()
}

// SelectionStyle returns the style for selected text
func (s *Screen) SelectionStyle() tcell.Style {
	return s.pair(s.Theme.Colors.LineText, s.Theme.Colors.Selection)
}

// MatchStyle returns the style for search hits
func (s *Screen) MatchStyle() tcell.Style {
	return s.pair(s.Theme.Colors.LineText, s.Theme.Colors.Match)
}

// ActiveMatchStyle returns the style for the active search hit
func (s *Screen) ActiveMatchStyle() tcell.Style {
	return s.pair(tcell.ColorBlack, s.Theme.Colors.ActiveMatch).Bold(true)
}

// MarkerStyle returns the style for the tree marker of a line
func (s *Screen) MarkerStyle(hasChildren, collapsed bool) tcell.Style {
	c := s.Theme.Colors.LeafMarker
	switch {
	case hasChildren && collapsed:
		c = s.Theme.Colors.CollapsedMarker
	case hasChildren:
		c = s.Theme.Colors.ExpandedMarker
	}
	return s.pair(c, s.Theme.Colors.Background)
}

// AttachmentStyle returns the style for attachment lines
func (s *Screen) AttachmentStyle() tcell.Style {
	return s.pair(s.Theme.Colors.Attachment, s.Theme.Colors.Background).Italic(true)
}

// SearchLabelStyle returns the style for find bar labels
func (s *Screen) SearchLabelStyle() tcell.Style {
	return s.pair(s.Theme.Colors.SearchLabel, s.Theme.Colors.Background).Bold(true)
}

// SearchTextStyle returns the style for find bar input
func (s *Screen) SearchTextStyle() tcell.Style {
	return s.pair(s.Theme.Colors.SearchText, s.Theme.Colors.Background)
}

// SearchCountStyle returns the style for the match counter
func (s *Screen) SearchCountStyle() tcell.Style {
	return s.pair(s.Theme.Colors.SearchCount, s.Theme.Colors.Background)
}

// SearchErrorStyle returns the style for pattern and timeout errors
func (s *Screen) SearchErrorStyle() tcell.Style {
	return s.pair(s.Theme.Colors.SearchError, s.Theme.Colors.Background)
}

// HelpStyle returns the style for overlay content
func (s *Screen) HelpStyle() tcell.Style {
	return s.pair(s.Theme.Colors.HelpContent, s.Theme.Colors.Background)
}

// HelpBorderStyle returns the style for overlay borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return s.pair(s.Theme.Colors.HelpBorder, s.Theme.Colors.Background)
}

// HelpTitleStyle returns the style for overlay titles
func (s *Screen) HelpTitleStyle() tcell.Style {
	return s.pair(s.Theme.Colors.HelpTitle, s.Theme.Colors.Background).Bold(true)
}

// StatusModeStyle returns the style for the mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return s.pair(s.Theme.Colors.StatusMode, s.Theme.Colors.Background).Reverse(true).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return s.pair(s.Theme.Colors.StatusMessage, s.Theme.Colors.Background)
}

// StatusModifiedStyle returns the style for the modified indicator
func (s *Screen) StatusModifiedStyle() tcell.Style {
	return s.pair(s.Theme.Colors.StatusModified, s.Theme.Colors.Background)
}
