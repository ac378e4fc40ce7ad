package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/views/reader"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/views/similar"
	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// App routes messages between the reader, similar, search and help views. Views
// issue their own service calls; the app only switches between them.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	readerView  *reader.View
	similarView *similar.View
	searchView  *search.View
	currentView messages.ViewType

	// start is sent from Init.
	start messages.PageRequested

	// err is the last load error from any view.
	err error

	width  int
	height int
	ready  bool
}

// App is a tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a reader over the given ports, opening on page 1.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	limit := 0
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			limit = settings.Query.SimilarLimit
		}
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		readerView:  reader.NewView(s, km, ports.Query),
		similarView: similar.NewView(s, km, ports.Query, limit),
		searchView:  search.NewView(s, km, ports.Query),
		currentView: messages.ViewReader,
		start:       messages.PageRequested{Page: 1},
	}, nil
}

// WithContext sets the context for the app. Cancelling it quits the program.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// StartAt sets the page, or the verse, shown first.
func (a *App) StartAt(page int, verse domain.VerseKey) *App {
	a.start = messages.PageRequested{Page: page, Verse: verse}
	return a
}

// Init sets the window title and requests the start page.
func (a *App) Init() tea.Cmd {
	start := a.start
	return tea.Batch(
		tea.SetWindowTitle("mushaf"),
		func() tea.Msg { return start },
	)
}

// Update routes msg. Key presses go to the active view; load results go to
// the view that requested them whatever is active.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewReader:
			a.readerView, cmd = a.readerView.Update(msg)
		case messages.ViewSimilar:
			a.similarView, cmd = a.similarView.Update(msg)
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewHelp:
			if keymap.Matches(msg.String(), a.keymap.Quit) {
				return a, tea.Quit
			}
			a.currentView = messages.ViewReader
		}
		return a, cmd

	case messages.PageRequested:
		a.currentView = messages.ViewReader
		if msg.Verse.Valid() {
			return a, a.readerView.LoadVerse(msg.Verse)
		}
		return a, a.readerView.Load(msg.Page, domain.VerseKey{})

	case messages.PageLoaded:
		a.err = msg.Err
		a.readerView, cmd = a.readerView.Update(msg)
		return a, cmd

	case messages.SimilarRequested:
		a.currentView = messages.ViewSimilar
		return a, a.similarView.Load(msg.Verse)

	case messages.SimilarLoaded:
		a.err = msg.Err
		a.similarView, cmd = a.similarView.Update(msg)
		return a, cmd

	case messages.SearchRequested:
		a.currentView = messages.ViewSearch
		return a, a.searchView.Focus()

	case messages.SearchLoaded:
		a.err = msg.Err
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.GoToSubmitted:
		a.readerView, cmd = a.readerView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.readerView, cmd = a.readerView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewReader:
		a.readerView, cmd = a.readerView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSimilar:
		return a.similarView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	}
	return a.readerView.View()
}

// viewHelp renders the keybindings grouped as in the keymap.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n")
	for _, group := range a.keymap.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("press any key to return"))
	return b.String()
}

// Run starts the reader and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if err != nil && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Reader returns the page view.
func (a *App) Reader() *reader.View {
	return a.readerView
}

// Similar returns the similar verses view.
func (a *App) Similar() *similar.View {
	return a.similarView
}

// Search returns the verse search view.
func (a *App) Search() *search.View {
	return a.searchView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.readerView.SetDimensions(width, height)
	a.similarView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
}
