package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mushaf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/services"
)

func testTables() domain.Tables {
	return domain.Tables{
		Lines: domain.Table{
			Name: "pages",
			Columns: []string{
				"page_number", "line_number", "line_type", "is_centered",
				"first_word_id", "last_word_id", "surah_number",
			},
			Rows: [][]any{
				{1, 1, "ayah", false, 1, 2, nil},
				{1, 2, "ayah", false, 3, 4, nil},
				{2, 1, "ayah", false, 5, 5, nil},
			},
		},
		Verses: domain.TextTable{
			"1:1": "a b",
			"1:2": "c d",
			"1:3": "e",
		},
		Matches: domain.MatchTable{
			"1:1": {{MatchedKey: "1:3", Score: 0.8, MatchedWords: 1, Coverage: 0.5}},
		},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	source := memory.NewTableSource(testTables())
	query := services.NewQueryService()
	corpus := services.NewCorpusService(query, source, source, source)
	_, err := corpus.Reload(context.Background(), true)
	require.NoError(t, err)

	config := memory.NewConfigStore()
	settings := services.NewSettingsService(config)

	app, err := NewApp(&Ports{Query: query, Settings: settings})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

// send delivers msg and then every message its commands produce, until
// the chain ends. Batches are flattened.
func send(app *App, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if batch, ok := next.(tea.BatchMsg); ok {
			for _, c := range batch {
				if c != nil {
					queue = append(queue, c())
				}
			}
			continue
		}
		_, cmd := app.Update(next)
		if cmd != nil {
			queue = append(queue, cmd())
		}
	}
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewApp_Validation(t *testing.T) {
	app, err := NewApp(&Ports{})

	require.Error(t, err)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingQueryService)
}

func TestNewApp_SimilarLimitFromSettings(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, domain.DefaultSettings().Query.SimilarLimit, app.Similar().Limit())
}

func TestApp_NotReady(t *testing.T) {
	app, err := NewApp(&Ports{Query: services.NewQueryService()})
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 90, Height: 20})
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_InitLoadsStartPage(t *testing.T) {
	app := newTestApp(t)
	app.StartAt(0, domain.MustParseVerseKey("1:3"))

	send(app, app.Init()())

	require.NotNil(t, app.Reader().Page())
	assert.Equal(t, 2, app.Reader().Page().Number)
	assert.Equal(t, messages.ViewReader, app.CurrentView())
}

func TestApp_SimilarRoundTrip(t *testing.T) {
	app := newTestApp(t)
	send(app, messages.PageRequested{Page: 1})

	send(app, key('s'))
	assert.Equal(t, messages.ViewSimilar, app.CurrentView())
	require.Len(t, app.Similar().Edges(), 1)
	assert.Contains(t, app.View(), "Similar to 1:1")

	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, messages.ViewReader, app.CurrentView())
	assert.Equal(t, 2, app.Reader().Page().Number)
	k, ok := app.Reader().SelectedVerse()
	require.True(t, ok)
	assert.Equal(t, "1:3", k.String())
}

func TestApp_SimilarBack(t *testing.T) {
	app := newTestApp(t)
	send(app, messages.PageRequested{Page: 1})
	send(app, key('s'))

	send(app, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewReader, app.CurrentView())
	assert.Equal(t, 1, app.Reader().Page().Number)
}

func TestApp_SearchRoundTrip(t *testing.T) {
	app := newTestApp(t)
	send(app, messages.PageRequested{Page: 1})

	_, cmd := app.Update(key('/'))
	require.NotNil(t, cmd)
	require.Equal(t, messages.SearchRequested{}, cmd())
	// The focus command starts the cursor blink, which never settles.
	app.Update(messages.SearchRequested{})
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.True(t, app.Search().InputFocused())

	app.Search().SetValue("e")
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())
	require.NoError(t, app.Err())
	require.Len(t, app.Search().Hits(), 1)
	assert.Contains(t, app.View(), "1:3")

	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, messages.ViewReader, app.CurrentView())
	assert.Equal(t, 2, app.Reader().Page().Number)
	k, ok := app.Reader().SelectedVerse()
	require.True(t, ok)
	assert.Equal(t, "1:3", k.String())
}

func TestApp_SearchBack(t *testing.T) {
	app := newTestApp(t)
	send(app, messages.PageRequested{Page: 1})
	app.Update(messages.SearchRequested{})

	send(app, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewReader, app.CurrentView())
	assert.Equal(t, 1, app.Reader().Page().Number)
}

func TestApp_HelpView(t *testing.T) {
	app := newTestApp(t)
	send(app, messages.PageRequested{Page: 1})

	send(app, key('?'))
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	view := app.View()
	assert.Contains(t, view, "next page")
	assert.Contains(t, view, "similar")
	assert.Contains(t, view, "search")

	send(app, key('x'))
	assert.Equal(t, messages.ViewReader, app.CurrentView())
}

func TestApp_LoadErrorIsRecorded(t *testing.T) {
	app := newTestApp(t)

	send(app, messages.PageRequested{Page: 40})

	assert.ErrorIs(t, app.Err(), domain.ErrPageNotFound)
	assert.ErrorIs(t, app.Reader().Err(), domain.ErrPageNotFound)
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t)

	for _, msg := range []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlC}, messages.Quit{}} {
		_, cmd := app.Update(msg)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}
