package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// SearchInput wraps a bubbles textinput for verse search. The label shows
// the field being searched.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	field     domain.SearchField
	width     int
}

// NewSearchInput creates a focused search input over verse text.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "words to find"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		field:     domain.FieldText,
		width:     50,
	}
}

// Init initialises the input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the input.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search " + string(s.field) + ": ")
	input := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Field returns the searched field.
func (s *SearchInput) Field() domain.SearchField {
	return s.field
}

// NextField moves to the next searchable field, wrapping around.
func (s *SearchInput) NextField() {
	for i, f := range domain.SearchFields {
		if f == s.field {
			s.field = domain.SearchFields[(i+1)%len(domain.SearchFields)]
			return
		}
	}
	s.field = domain.FieldText
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.textinput.Width = max(width-30, 20)
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}
