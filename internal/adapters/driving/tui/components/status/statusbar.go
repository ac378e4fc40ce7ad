// Package status provides the status bar of the page reader.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/styles"
)

// State selects what the left side of the bar shows.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateHelp    State = "help"
	StateList    State = "list"
	StateQuery   State = "query"
)

// Bar displays the page position and keybinding hints. It handles no
// messages; the owning view sets its fields.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	page    int
	total   int
	verse   string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateQuery:
		return s.styles.Normal.Render("Search")
	case StateReady, StateList:
	}

	if s.page == 0 {
		return s.styles.Muted.Render("Ready")
	}
	pos := fmt.Sprintf("Page %d/%d", s.page, s.total)
	if s.verse != "" {
		pos += "  " + s.styles.VerseKey.Render(s.verse)
	}
	if s.message != "" {
		pos += "  " + s.styles.Muted.Render(s.message)
	}
	return s.styles.Normal.Render(pos)
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateList:
		bindings = s.keymap.ListHelp()
	case StateQuery:
		bindings = s.keymap.QueryHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPosition sets the shown page, page count and selected verse.
func (s *Bar) SetPosition(page, total int, verse string) {
	s.page = page
	s.total = total
	s.verse = verse
}

// Page returns the shown page number.
func (s *Bar) Page() int {
	return s.page
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
