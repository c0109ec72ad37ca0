package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Overlay is a scrollable boxed text panel drawn over the document. It shows
// help, the message log, diffs and backup listings.
type Overlay struct {
	visible bool
	title   string
	lines   []string
	scroll  int
	height  int
}

// NewOverlay creates a hidden overlay
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Show opens the overlay with the given content
func (o *Overlay) Show(title string, lines []string) {
	o.visible = true
	o.title = title
	o.lines = lines
	o.scroll = 0
}

// Hide closes the overlay
func (o *Overlay) Hide() {
	o.visible = false
}

// IsVisible returns whether the overlay is shown
func (o *Overlay) IsVisible() bool {
	return o.visible
}

// Title returns the title of the shown content
func (o *Overlay) Title() string {
	return o.title
}

func (o *Overlay) scrollBy(delta int) {
	maxScroll := max(len(o.lines)-o.height, 0)
	o.scroll = min(max(o.scroll+delta, 0), maxScroll)
}

// HandleKey scrolls or closes the overlay
func (o *Overlay) HandleKey(ev *tcell.EventKey) {
	page := max(o.height-1, 1)
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		o.Hide()
	case tcell.KeyUp:
		o.scrollBy(-1)
	case tcell.KeyDown:
		o.scrollBy(1)
	case tcell.KeyPgUp:
		o.scrollBy(-page)
	case tcell.KeyPgDn:
		o.scrollBy(page)
	case tcell.KeyHome:
		o.scroll = 0
	case tcell.KeyEnd:
		o.scrollBy(len(o.lines))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', '?':
			o.Hide()
		case 'j':
			o.scrollBy(1)
		case 'k':
			o.scrollBy(-1)
		}
	}
}

type rect struct {
	x, y, w, h int
}

// drawBox clears and frames a box with a title and returns the area inside
// the border, with one column of padding. ok is false when the box is too
// small to draw.
func drawBox(screen *Screen, x, y, width, height int, title string) (inner rect, ok bool) {
	if width < 10 || height < 4 {
		return rect{}, false
	}
	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetCell(col, row, ' ', contentStyle)
		}
	}

	bottom := y + height - 1
	right := x + width - 1
	for col := x + 1; col < right; col++ {
		screen.SetCell(col, y, '─', borderStyle)
		screen.SetCell(col, bottom, '─', borderStyle)
	}
	for row := y + 1; row < bottom; row++ {
		screen.SetCell(x, row, '│', borderStyle)
		screen.SetCell(right, row, '│', borderStyle)
	}
	screen.SetCell(x, y, '┌', borderStyle)
	screen.SetCell(right, y, '┐', borderStyle)
	screen.SetCell(x, bottom, '└', borderStyle)
	screen.SetCell(right, bottom, '┘', borderStyle)
	screen.DrawStringLimited(x+2, y, " "+title+" ", width-4, screen.HelpTitleStyle())

	return rect{x: x + 2, y: y + 1, w: width - 4, h: height - 2}, true
}

// Render draws the overlay box inset from the screen edges
func (o *Overlay) Render(screen *Screen) {
	if !o.visible {
		return
	}
	width, height := screen.Size()
	inner, ok := drawBox(screen, 2, 1, width-4, height-2, o.title)
	if !ok {
		return
	}
	o.height = inner.h
	o.scrollBy(0)

	for row := 0; row < o.height; row++ {
		n := o.scroll + row
		if n >= len(o.lines) {
			break
		}
		screen.DrawStringLimited(inner.x, inner.y+row, o.lines[n], inner.w, screen.HelpStyle())
	}
}
