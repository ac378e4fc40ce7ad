// Package styles provides the colour palette and lipgloss styles shared by
// the page reader and the command line output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the reader palette, loosely modelled on an illuminated page
// with gilt surah headers.
type Theme struct {
	// Accent marks titles and the selected line.
	Accent lipgloss.Color

	// Gilt is used for surah headers.
	Gilt lipgloss.Color

	// Ground is the status bar background.
	Ground lipgloss.Color

	// Ink is the default text colour.
	Ink lipgloss.Color

	// Faded is for annotations such as line numbers and verse keys.
	Faded lipgloss.Color

	// Marker highlights the selected verse key.
	Marker lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Rule is the colour of borders and header rules.
	Rule lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#2E8B57"), // Sea green
		Gilt:    lipgloss.Color("#D4AF37"), // Gold
		Ground:  lipgloss.Color("#1B1F1D"), // Near black
		Ink:     lipgloss.Color("#E8E2D0"), // Parchment
		Faded:   lipgloss.Color("#7D8579"), // Grey green
		Marker:  lipgloss.Color("#E9C46A"), // Saffron
		Success: lipgloss.Color("#8FBC8F"), // Dark sea green
		Warning: lipgloss.Color("#F4A261"), // Sandy orange
		Error:   lipgloss.Color("#E76F51"), // Terracotta
		Rule:    lipgloss.Color("#4A5248"), // Slate
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title is used for page titles.
	Title lipgloss.Style

	// Subtitle heads lists.
	Subtitle lipgloss.Style

	Normal lipgloss.Style
	Muted  lipgloss.Style

	// Selected highlights the selected line or list entry.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// InputField frames the go-to prompt.
	InputField lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
	Border    lipgloss.Style

	// SurahHeader renders surah title lines between two rules.
	SurahHeader lipgloss.Style

	// Basmallah renders basmallah lines.
	Basmallah lipgloss.Style

	// LineNumber is the right-aligned line gutter.
	LineNumber lipgloss.Style

	// VerseKey marks the selected verse key.
	VerseKey lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Gilt),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Ink),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Faded),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Ink).
			Background(theme.Accent),

		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Rule).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Faded).
			Background(theme.Ground).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Faded),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Rule),

		SurahHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Gilt).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderBottom(true).
			BorderForeground(theme.Rule),

		Basmallah: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Success),

		LineNumber: lipgloss.NewStyle().
			Width(3).
			Align(lipgloss.Right).
			Foreground(theme.Faded),

		VerseKey: lipgloss.NewStyle().
			Foreground(theme.Marker),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
