package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig is the raw TOML theme file. Colors maps snake_case names such
// as "line_text" or "active_match" to color strings.
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

func (c *Colors) fields() map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"line_text":        &c.LineText,
		"background":       &c.Background,
		"selection":        &c.Selection,
		"match":            &c.Match,
		"active_match":     &c.ActiveMatch,
		"leaf_marker":      &c.LeafMarker,
		"expanded_marker":  &c.ExpandedMarker,
		"collapsed_marker": &c.CollapsedMarker,
		"attachment":       &c.Attachment,
		"search_label":     &c.SearchLabel,
		"search_text":      &c.SearchText,
		"search_count":     &c.SearchCount,
		"search_error":     &c.SearchError,
		"help_border":      &c.HelpBorder,
		"help_title":       &c.HelpTitle,
		"help_content":     &c.HelpContent,
		"status_mode":      &c.StatusMode,
		"status_message":   &c.StatusMessage,
		"status_modified":  &c.StatusModified,
	}
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "outline-engine", "themes"),
		filepath.Join(home, ".local", "share", "outline-engine", "themes"),
	}
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string, dirs []string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range dirs {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file. Colors it does not name
// keep their Tokyo Night values; unknown keys are an error.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config)
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName, getThemePaths())
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

func configToTheme(config ThemeConfig) (*Theme, error) {
	t := TokyoNight()
	fields := t.Colors.fields()
	for key, value := range config.Colors {
		ptr, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("unknown theme color %q", key)
		}
		*ptr = ParseColorString(value)
	}
	if config.Name != "" {
		t.Name = config.Name
	}
	return t, nil
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "tokyo-night":
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
