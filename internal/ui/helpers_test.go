package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/outline"
	"github.com/pstuifzand/outline-engine/internal/theme"
)

func newTestScreen(t *testing.T, w, h int) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim, theme.Default())
	require.NoError(t, err)
	sim.SetSize(w, h)
	screen.Size()
	t.Cleanup(func() { screen.Close() })
	return screen
}

// rowText returns the runes of row y with trailing spaces removed
func rowText(s *Screen, y int) string {
	var b strings.Builder
	for x := 0; x < s.GetWidth(); x++ {
		r, _, _, _ := s.tcellScreen.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func styleAt(s *Screen, x, y int) tcell.Style {
	_, _, style, _ := s.tcellScreen.GetContent(x, y)
	return style
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func alt(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModAlt)
}

func typeText(handle func(*tcell.EventKey), text string) {
	for _, r := range text {
		handle(char(r))
	}
}

func line(text string, indent int) model.Line {
	return model.Line{Text: text, Indent: indent}
}

func newDoc(lines ...model.Line) *outline.Engine {
	return outline.New(outline.WithLines(lines))
}

func docTexts(e *outline.Engine) []string {
	var out []string
	for _, l := range e.Lines() {
		out = append(out, l.Text)
	}
	return out
}
