// Package similar provides the similar verses view of the TUI.
package similar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
)

// DefaultLimit is the number of similar verses listed when none is configured.
const DefaultLimit = 20

// View lists verses similar to one verse.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.SimilarList
	statusbar *status.Bar

	query driving.QueryService
	limit int

	err    error
	width  int
	height int
	ready  bool
}

// NewView creates a new similar verses view. A limit of 0 uses DefaultLimit.
func NewView(s *styles.Styles, km *keymap.KeyMap, query driving.QueryService, limit int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	bar := status.NewBar(s, km)
	bar.SetState(status.StateList)

	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewSimilarList(s),
		statusbar: bar,
		query:     query,
		limit:     limit,
		width:     80,
		height:    24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command fetching the verses similar to key along with
// their text for previews.
func (v *View) Load(key domain.VerseKey) tea.Cmd {
	v.statusbar.SetState(status.StateLoading)
	query, limit := v.query, v.limit
	return func() tea.Msg {
		r, err := query.Reader()
		if err != nil {
			return messages.SimilarLoaded{Verse: key, Err: err}
		}
		edges, err := r.SimilarTo(key, limit)
		if err != nil {
			return messages.SimilarLoaded{Verse: key, Err: err}
		}
		texts := make(map[domain.VerseKey]string, len(edges))
		for _, e := range edges {
			// Previews are best effort.
			if rec, err := r.VerseRecord(e.Target); err == nil {
				texts[e.Target] = rec.Text
			}
		}
		return messages.SimilarLoaded{Verse: key, Edges: edges, Texts: texts}
	}
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SimilarLoaded:
		v.statusbar.SetState(status.StateList)
		if msg.Err != nil {
			v.err = msg.Err
			v.list.SetEdges(msg.Verse, nil, nil)
			return v, nil
		}
		v.err = nil
		v.list.SetEdges(msg.Verse, msg.Edges, msg.Texts)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Quit):
		return v, tea.Quit
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewReader} }
	case keymap.Matches(key, v.keymap.Select):
		if e := v.list.SelectedEdge(); e != nil {
			target := e.Target
			return v, func() tea.Msg { return messages.PageRequested{Verse: target} }
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)
	sections = append(sections, v.styles.Title.Render("Similar verses"), "", v.list.View(), "")
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-6)
	v.statusbar.SetWidth(width)
}

// Source returns the verse the list was loaded for.
func (v *View) Source() domain.VerseKey {
	return v.list.Source()
}

// Edges returns the listed edges.
func (v *View) Edges() []domain.SimilarityEdge {
	return v.list.Edges()
}

// SelectedEdge returns the selected edge, or nil if none.
func (v *View) SelectedEdge() *domain.SimilarityEdge {
	return v.list.SelectedEdge()
}

// Limit returns the number of verses requested per load.
func (v *View) Limit() int {
	return v.limit
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
