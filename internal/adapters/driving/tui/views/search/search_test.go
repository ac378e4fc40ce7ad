package search

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
				{1, 1, "ayah", false, 1, 4, nil},
				{1, 2, "ayah", false, 5, 6, nil},
			},
		},
		Verses: domain.TextTable{
			"1:1": "بِسْمِ ٱللَّهِ",
			"1:2": "ٱلرَّحْمَٰنِ ٱلرَّحِيمِ",
			"1:3": "مَٰلِكِ يَوْمِ",
		},
		Translations: domain.TextTable{
			"1:1": "In the name of Allah",
			"1:2": "The Most Merciful",
			"1:3": "Master of the Day",
		},
	}
}

func newTestView(t *testing.T) *View {
	t.Helper()

	source := memory.NewTableSource(testTables())
	query := services.NewQueryService()
	corpus := services.NewCorpusService(query, source, source, source)
	_, err := corpus.Reload(context.Background(), true)
	require.NoError(t, err)

	v := NewView(nil, nil, query)
	v.SetDimensions(120, 30)
	return v
}

// submit types text and presses enter, feeding the result back.
func submit(t *testing.T, v *View, text string) {
	t.Helper()
	v.SetValue(text)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	assert.True(t, v.InputFocused())
	assert.Equal(t, domain.FieldText, v.Field())
	assert.NotNil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Search(t *testing.T) {
	v := newTestView(t)

	submit(t, v, "الرحيم")

	require.NoError(t, v.Err())
	assert.False(t, v.InputFocused(), "hits move the view to results mode")
	require.Len(t, v.Hits(), 1)
	assert.Equal(t, "1:2", v.Hits()[0].Verse.Key.String())
	assert.Contains(t, v.View(), "The Most Merciful")
}

func TestView_SearchTranslation(t *testing.T) {
	v := newTestView(t)

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.FieldTranslation, v.Field())

	submit(t, v, "of")

	require.Len(t, v.Hits(), 2)
	assert.Equal(t, "1:1", v.Hits()[0].Verse.Key.String())
	assert.Equal(t, "1:3", v.Hits()[1].Verse.Key.String())
}

func TestView_EmptyQueryIgnored(t *testing.T) {
	v := newTestView(t)

	v.SetValue("   ")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
}

func TestView_SearchError(t *testing.T) {
	v := NewView(nil, nil, services.NewQueryService())
	v.SetDimensions(100, 30)

	submit(t, v, "mercy")

	assert.ErrorIs(t, v.Err(), domain.ErrNotReady)
	assert.True(t, v.InputFocused())
	assert.Contains(t, v.View(), "Error")
}

func TestView_SelectJumpsToVerse(t *testing.T) {
	v := newTestView(t)
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	submit(t, v, "of")

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.PageRequested{Verse: domain.MustParseVerseKey("1:3")}, cmd())
}

func TestView_SearchKeyRefocuses(t *testing.T) {
	v := newTestView(t)
	submit(t, v, "الرحيم")
	require.False(t, v.InputFocused())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})

	assert.True(t, v.InputFocused())
	assert.Equal(t, "الرحيم", v.Value(), "the last query is kept")
}

func TestView_TypingQuitKey(t *testing.T) {
	v := newTestView(t)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	assert.True(t, v.InputFocused())
	assert.Equal(t, "q", v.Value())
}

func TestView_BackAndQuit(t *testing.T) {
	v := newTestView(t)

	_, back := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, back)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewReader}, back())

	submit(t, v, "الرحيم")
	_, quit := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, quit)
	assert.Equal(t, tea.QuitMsg{}, quit())
}
