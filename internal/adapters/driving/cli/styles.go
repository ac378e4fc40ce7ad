package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/styles"
)

const defaultWidth = 80

// Command output uses the reader palette.
var (
	palette      = styles.DefaultStyles()
	titleStyle   = palette.Title
	headerStyle  = palette.Subtitle
	mutedStyle   = palette.Muted
	successStyle = palette.Success
	warningStyle = palette.Warning
)

// termWidth returns the width of stdout, or defaultWidth when stdout is not
// a terminal.
func termWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// centre pads s to width with s in the middle.
func centre(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
