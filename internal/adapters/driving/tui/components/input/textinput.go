// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/styles"
)

// GoToInput wraps a bubbles textinput for the page or verse prompt.
type GoToInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewGoToInput creates a new go-to prompt.
func NewGoToInput(s *styles.Styles) *GoToInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "page number or surah:ayah"
	ti.CharLimit = 16
	ti.Width = 30

	return &GoToInput{
		textinput: ti,
		styles:    s,
		width:     30,
	}
}

// Init initialises the input.
func (g *GoToInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (g *GoToInput) Update(msg tea.Msg) (*GoToInput, tea.Cmd) {
	var cmd tea.Cmd
	g.textinput, cmd = g.textinput.Update(msg)
	return g, cmd
}

// View renders the prompt.
func (g *GoToInput) View() string {
	label := g.styles.Title.Render("Go to: ")
	input := g.styles.InputField.Render(g.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current input value.
func (g *GoToInput) Value() string {
	return g.textinput.Value()
}

// SetValue sets the input value.
func (g *GoToInput) SetValue(value string) {
	g.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (g *GoToInput) Focus() tea.Cmd {
	return g.textinput.Focus()
}

// Blur removes focus from the input.
func (g *GoToInput) Blur() {
	g.textinput.Blur()
}

// Focused returns whether the input is focused.
func (g *GoToInput) Focused() bool {
	return g.textinput.Focused()
}

// SetWidth sets the width of the input.
func (g *GoToInput) SetWidth(width int) {
	g.width = width
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	g.textinput.Width = inputWidth
}

// Width returns the current width.
func (g *GoToInput) Width() int {
	return g.width
}

// Reset clears the input.
func (g *GoToInput) Reset() {
	g.textinput.Reset()
}
