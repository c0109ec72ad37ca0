package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Document view
	LineText        tcell.Color
	Background      tcell.Color
	Selection       tcell.Color // background
	Match           tcell.Color // background of search hits
	ActiveMatch     tcell.Color // background of the active hit
	LeafMarker      tcell.Color
	ExpandedMarker  tcell.Color
	CollapsedMarker tcell.Color
	Attachment      tcell.Color

	// Find/replace bar
	SearchLabel tcell.Color
	SearchText  tcell.Color
	SearchCount tcell.Color
	SearchError tcell.Color

	// Help overlay
	HelpBorder  tcell.Color
	HelpTitle   tcell.Color
	HelpContent tcell.Color

	// Status line
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Style returns the default style for document text.
func (t *Theme) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Colors.LineText).Background(t.Colors.Background)
}

// Default returns a theme that uses the terminal's colors
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			LineText:        tcell.ColorDefault,
			Background:      tcell.ColorDefault,
			Selection:       tcell.ColorSilver,
			Match:           tcell.ColorOlive,
			ActiveMatch:     tcell.ColorYellow,
			LeafMarker:      tcell.ColorDefault,
			ExpandedMarker:  tcell.ColorDefault,
			CollapsedMarker: tcell.ColorDefault,
			Attachment:      tcell.ColorDefault,
			SearchLabel:     tcell.ColorDefault,
			SearchText:      tcell.ColorDefault,
			SearchCount:     tcell.ColorDefault,
			SearchError:     tcell.ColorRed,
			HelpBorder:      tcell.ColorDefault,
			HelpTitle:       tcell.ColorDefault,
			HelpContent:     tcell.ColorDefault,
			StatusMode:      tcell.ColorDefault,
			StatusMessage:   tcell.ColorDefault,
			StatusModified:  tcell.ColorDefault,
		},
	}
}

const (
	tnBackground = "#1a1b26"
	tnText       = "#c0caf5"
	tnBlue       = "#7aa2f7"
	tnCyan       = "#7dcfff"
	tnMagenta    = "#bb9af7"
	tnGreen      = "#9ece6a"
	tnYellow     = "#e0af68"
	tnRed        = "#f7768e"
	tnComment    = "#565f89"
)

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			LineText:        HexToColor(tnText),
			Background:      HexToColor(tnBackground),
			Selection:       Blend(tnBackground, tnBlue, 0.35),
			Match:           Blend(tnBackground, tnYellow, 0.3),
			ActiveMatch:     Blend(tnBackground, tnYellow, 0.7),
			LeafMarker:      HexToColor(tnComment),
			ExpandedMarker:  HexToColor(tnCyan),
			CollapsedMarker: HexToColor(tnCyan),
			Attachment:      HexToColor(tnMagenta),
			SearchLabel:     HexToColor(tnMagenta),
			SearchText:      HexToColor(tnText),
			SearchCount:     HexToColor(tnGreen),
			SearchError:     HexToColor(tnRed),
			HelpBorder:      HexToColor(tnCyan),
			HelpTitle:       HexToColor(tnMagenta),
			HelpContent:     HexToColor(tnText),
			StatusMode:      HexToColor(tnMagenta),
			StatusMessage:   HexToColor(tnGreen),
			StatusModified:  HexToColor(tnRed),
		},
	}
}
