// Package reader provides the page view of the TUI.
package reader

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
)

// View shows one page with a selectable ayah line.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	goTo      *input.GoToInput
	statusbar *status.Bar

	query driving.QueryService

	page  *domain.RenderedPage
	total int

	// line indexes page.Lines; verse indexes that line's Verses.
	line  int
	verse int

	prompting bool
	err       error
	width     int
	height    int
	ready     bool
}

// NewView creates a new reader view.
func NewView(s *styles.Styles, km *keymap.KeyMap, query driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		goTo:      input.NewGoToInput(s),
		statusbar: status.NewBar(s, km),
		query:     query,
		line:      -1,
		width:     80,
		height:    24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command fetching page n. When verse is valid it is
// selected once the page arrives.
func (v *View) Load(n int, verse domain.VerseKey) tea.Cmd {
	v.statusbar.SetState(status.StateLoading)
	query := v.query
	return func() tea.Msg {
		r, err := query.Reader()
		if err != nil {
			return messages.PageLoaded{Verse: verse, Err: err}
		}
		page, err := r.GetPage(n)
		return messages.PageLoaded{Page: page, Total: r.TotalPages(), Verse: verse, Err: err}
	}
}

// LoadVerse returns a command fetching the first page showing key.
func (v *View) LoadVerse(key domain.VerseKey) tea.Cmd {
	v.statusbar.SetState(status.StateLoading)
	query := v.query
	return func() tea.Msg {
		r, err := query.Reader()
		if err != nil {
			return messages.PageLoaded{Verse: key, Err: err}
		}
		n, err := r.PageForVerse(key)
		if err != nil {
			return messages.PageLoaded{Verse: key, Err: err}
		}
		page, err := r.GetPage(n)
		return messages.PageLoaded{Page: page, Total: r.TotalPages(), Verse: key, Err: err}
	}
}

// Update handles messages for the reader.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PageLoaded:
		v.handlePageLoaded(msg)
		return v, nil

	case messages.GoToSubmitted:
		return v, v.goToTarget(msg.Input)

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	if v.prompting {
		var cmd tea.Cmd
		v.goTo, cmd = v.goTo.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.prompting {
		return v.handlePromptKey(msg)
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Quit):
		return v, tea.Quit
	case keymap.Matches(key, v.keymap.Help):
		return v, changeView(messages.ViewHelp)
	case keymap.Matches(key, v.keymap.Search):
		return v, func() tea.Msg { return messages.SearchRequested{} }
	case keymap.Matches(key, v.keymap.GoTo):
		v.prompting = true
		v.goTo.Reset()
		return v, v.goTo.Focus()
	case keymap.Matches(key, v.keymap.NextPage):
		if v.page != nil && v.page.Number < v.total {
			return v, v.Load(v.page.Number+1, domain.VerseKey{})
		}
	case keymap.Matches(key, v.keymap.PrevPage):
		if v.page != nil && v.page.Number > 1 {
			return v, v.Load(v.page.Number-1, domain.VerseKey{})
		}
	case keymap.Matches(key, v.keymap.Up):
		v.moveLine(-1)
	case keymap.Matches(key, v.keymap.Down):
		v.moveLine(1)
	case keymap.Matches(key, v.keymap.NextVerse):
		v.nextVerse()
	case keymap.Matches(key, v.keymap.Similar):
		if k, ok := v.SelectedVerse(); ok {
			return v, func() tea.Msg { return messages.SimilarRequested{Verse: k} }
		}
	}
	return v, nil
}

func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.closePrompt()
		return v, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(v.goTo.Value())
		v.closePrompt()
		if value == "" {
			return v, nil
		}
		return v, func() tea.Msg { return messages.GoToSubmitted{Input: value} }
	}

	var cmd tea.Cmd
	v.goTo, cmd = v.goTo.Update(msg)
	return v, cmd
}

func (v *View) closePrompt() {
	v.prompting = false
	v.goTo.Blur()
	v.goTo.Reset()
}

// goToTarget accepts a page number or a verse key.
func (v *View) goToTarget(target string) tea.Cmd {
	if strings.Contains(target, ":") {
		key, err := domain.ParseVerseKey(target)
		if err != nil {
			v.setError(err)
			return nil
		}
		return v.LoadVerse(key)
	}

	n, err := strconv.Atoi(target)
	if err != nil {
		v.setError(fmt.Errorf("%w: page number %q", domain.ErrInvalidInput, target))
		return nil
	}
	return v.Load(n, domain.VerseKey{})
}

func (v *View) handlePageLoaded(msg messages.PageLoaded) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.page = msg.Page
	v.total = msg.Total
	v.line, v.verse = -1, 0
	if msg.Verse.Valid() {
		v.selectVerse(msg.Verse)
	}
	if v.line < 0 {
		v.line = v.nextAyahLine(-1, 1)
	}
	v.statusbar.Clear()
	v.syncStatus()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// selectVerse selects the first line holding key.
func (v *View) selectVerse(key domain.VerseKey) {
	for i := range v.page.Lines {
		for j, k := range v.page.Lines[i].Verses {
			if k == key {
				v.line, v.verse = i, j
				return
			}
		}
	}
}

// nextAyahLine returns the next line from index from in direction step
// that carries verses, or -1 when there is none.
func (v *View) nextAyahLine(from, step int) int {
	if v.page == nil {
		return -1
	}
	for i := from + step; i >= 0 && i < len(v.page.Lines); i += step {
		if len(v.page.Lines[i].Verses) > 0 {
			return i
		}
	}
	return -1
}

func (v *View) moveLine(step int) {
	if next := v.nextAyahLine(v.line, step); next >= 0 {
		v.line = next
		v.verse = 0
		v.syncStatus()
	}
}

func (v *View) nextVerse() {
	if v.line < 0 || v.page == nil {
		return
	}
	n := len(v.page.Lines[v.line].Verses)
	if n > 0 {
		v.verse = (v.verse + 1) % n
		v.syncStatus()
	}
}

func (v *View) syncStatus() {
	verse := ""
	if k, ok := v.SelectedVerse(); ok {
		verse = k.String()
	}
	number := 0
	if v.page != nil {
		number = v.page.Number
	}
	v.statusbar.SetPosition(number, v.total, verse)
}

// View renders the reader.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	if v.page == nil {
		sections = append(sections, v.styles.Title.Render("Mushaf"), "")
	} else {
		sections = append(sections,
			v.styles.Title.Render(fmt.Sprintf("Page %d of %d", v.page.Number, v.total)), "",
			v.renderLines(), "")
	}

	if v.prompting {
		sections = append(sections, v.goTo.View(), "")
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderLines() string {
	textWidth := v.width - 6
	if textWidth < 20 {
		textWidth = 20
	}

	rows := make([]string, 0, len(v.page.Lines))
	for i := range v.page.Lines {
		line := &v.page.Lines[i]

		var text string
		switch line.Type {
		case domain.LineSurahName:
			text = v.styles.SurahHeader.Render(v.headerText(line))
		case domain.LineBasmallah:
			text = v.styles.Basmallah.Render(line.Text)
		case domain.LineAyah:
			if i == v.line {
				text = v.styles.Selected.Render(line.Text)
			} else {
				text = v.styles.Normal.Render(line.Text)
			}
		}
		if line.Centered {
			//nolint:misspell // lipgloss.Center is the correct constant from the library
			text = lipgloss.PlaceHorizontal(textWidth, lipgloss.Center, text)
		}
		rows = append(rows, v.styles.LineNumber.Render(strconv.Itoa(line.Number))+"  "+text)

		if len(line.Verses) > 0 {
			rows = append(rows, "     "+v.renderKeys(i, line.Verses))
		}
	}
	return strings.Join(rows, "\n")
}

func (v *View) headerText(line *domain.RenderedLine) string {
	for _, h := range v.page.SurahHeaders {
		if h.Line == line.Number {
			if h.NameArabic != "" {
				return h.NameSimple + "  " + h.NameArabic
			}
			return h.NameSimple
		}
	}
	return line.Text
}

func (v *View) renderKeys(line int, keys []domain.VerseKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		if line == v.line && i == v.verse {
			parts[i] = v.styles.VerseKey.Render("[" + k.String() + "]")
		} else {
			parts[i] = v.styles.Muted.Render(k.String())
		}
	}
	return strings.Join(parts, " ")
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.goTo.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Page returns the shown page, nil before the first load.
func (v *View) Page() *domain.RenderedPage {
	return v.page
}

// SelectedLine returns the index of the selected line, -1 when none.
func (v *View) SelectedLine() int {
	return v.line
}

// SelectedVerse returns the selected verse key.
func (v *View) SelectedVerse() (domain.VerseKey, bool) {
	if v.page == nil || v.line < 0 || v.line >= len(v.page.Lines) {
		return domain.VerseKey{}, false
	}
	keys := v.page.Lines[v.line].Verses
	if v.verse >= len(keys) {
		return domain.VerseKey{}, false
	}
	return keys[v.verse], true
}

// Prompting reports whether the go-to prompt is open.
func (v *View) Prompting() bool {
	return v.prompting
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
