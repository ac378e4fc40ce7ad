// Package search provides the verse search view of the TUI.
package search

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
)

// DefaultLimit is the number of hits listed per search.
const DefaultLimit = 50

// View searches verse text and lists the hits. It starts in input mode;
// submitting a query moves it to results mode.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.HitList
	statusbar *status.Bar

	query driving.QueryService

	focusInput bool
	err        error
	width      int
	height     int
	ready      bool
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, query driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetState(status.StateQuery)

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		list:       list.NewHitList(s),
		statusbar:  bar,
		query:      query,
		focusInput: true,
		width:      80,
		height:     24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Focus returns the view to input mode, keeping the last query.
func (v *View) Focus() tea.Cmd {
	v.focusInput = true
	v.statusbar.SetState(status.StateQuery)
	return v.input.Focus()
}

// Search returns a command running q.
func (v *View) Search(q domain.SearchQuery) tea.Cmd {
	v.statusbar.SetState(status.StateLoading)
	query := v.query
	return func() tea.Msg {
		hits, err := query.SearchVerses(q)
		return messages.SearchLoaded{Query: q, Hits: hits, Err: err}
	}
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SearchLoaded:
		v.handleSearchLoaded(msg)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleSearchLoaded(msg messages.SearchLoaded) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateQuery)
		return
	}
	v.err = nil
	v.list.SetHits(msg.Query.Text, msg.Hits)
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetState(status.StateList)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	if keymap.Matches(key, v.keymap.Back) {
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewReader} }
	}
	if v.focusInput {
		return v.handleInputKey(msg)
	}

	switch {
	case keymap.Matches(key, v.keymap.Quit):
		return v, tea.Quit
	case keymap.Matches(key, v.keymap.Search):
		return v, v.Focus()
	case keymap.Matches(key, v.keymap.Select):
		if h := v.list.SelectedHit(); h != nil {
			target := h.Verse.Key
			return v, func() tea.Msg { return messages.PageRequested{Verse: target} }
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Field):
		v.input.NextField()
		return v, nil
	case keymap.Matches(key, v.keymap.Select):
		text := strings.TrimSpace(v.input.Value())
		if text == "" {
			return v, nil
		}
		return v, v.Search(domain.SearchQuery{Text: text, Field: v.input.Field(), Limit: DefaultLimit})
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Search"), "", v.input.View(), "")
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Value returns the typed query.
func (v *View) Value() string {
	return v.input.Value()
}

// SetValue sets the typed query.
func (v *View) SetValue(s string) {
	v.input.SetValue(s)
}

// Field returns the field searched on submit.
func (v *View) Field() domain.SearchField {
	return v.input.Field()
}

// Hits returns the listed hits.
func (v *View) Hits() []domain.SearchHit {
	return v.list.Hits()
}

// SelectedHit returns the selected hit, or nil if none.
func (v *View) SelectedHit() *domain.SearchHit {
	return v.list.SelectedHit()
}

// InputFocused returns whether the query input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
