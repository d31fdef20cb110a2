package base

import "github.com/charmbracelet/lipgloss"

// ColorPalette defines a consistent color scheme for the viewer chrome and
// the script highlighter.
type ColorPalette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color

	Keyword lipgloss.Color
	Type    lipgloss.Color
	String  lipgloss.Color
	Number  lipgloss.Color
	Comment lipgloss.Color
}

// DarkPalette is the default dark theme palette
var DarkPalette = ColorPalette{
	Primary:   lipgloss.Color("#7C3AED"), // Purple
	Secondary: lipgloss.Color("#06B6D4"), // Cyan
	Accent:    lipgloss.Color("#10B981"), // Emerald
	Error:     lipgloss.Color("#EF4444"), // Red
	Muted:     lipgloss.Color("#94A3B8"), // Slate

	Keyword: lipgloss.Color("#FF79C6"),
	Type:    lipgloss.Color("#8BE9FD"),
	String:  lipgloss.Color("#F1FA8C"),
	Number:  lipgloss.Color("#BD93F9"),
	Comment: lipgloss.Color("#6272A4"),
}

// LightPalette is used when the terminal reports a light background.
var LightPalette = ColorPalette{
	Primary:   lipgloss.Color("#5A56E0"),
	Secondary: lipgloss.Color("#EE6FF8"),
	Accent:    lipgloss.Color("#02BA84"),
	Error:     lipgloss.Color("#FF5F56"),
	Muted:     lipgloss.Color("#9B9B9B"),

	Keyword: lipgloss.Color("#D6336C"),
	Type:    lipgloss.Color("#1C7ED6"),
	String:  lipgloss.Color("#2B8A3E"),
	Number:  lipgloss.Color("#7048E8"),
	Comment: lipgloss.Color("#868E96"),
}

// PaletteFor picks the palette matching the terminal background.
func PaletteFor(darkBackground bool) ColorPalette {
	if darkBackground {
		return DarkPalette
	}
	return LightPalette
}
