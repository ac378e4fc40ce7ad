package similar

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
				{1, 2, "ayah", false, 3, 5, nil},
			},
		},
		Verses: domain.TextTable{
			"1:1": "a b",
			"1:2": "c d",
			"1:3": "e",
		},
		Matches: domain.MatchTable{
			"1:1": {{MatchedKey: "1:3", Score: 0.8, MatchedWords: 1, Coverage: 0.5}},
			"1:2": {{MatchedKey: "1:1", Score: 0.6, MatchedWords: 1, Coverage: 0.5}},
		},
	}
}

func newTestView(t *testing.T, limit int) *View {
	t.Helper()

	source := memory.NewTableSource(testTables())
	query := services.NewQueryService()
	corpus := services.NewCorpusService(query, source, source, source)
	_, err := corpus.Reload(context.Background(), true)
	require.NoError(t, err)

	v := NewView(nil, nil, query, limit)
	v.SetDimensions(100, 30)
	return v
}

func load(t *testing.T, v *View, key string) {
	t.Helper()
	cmd := v.Load(domain.MustParseVerseKey(key))
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestNewView_DefaultLimit(t *testing.T) {
	v := NewView(nil, nil, nil, 0)

	assert.Equal(t, DefaultLimit, v.Limit())
	assert.Nil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())
	assert.Equal(t, -1, NewView(nil, nil, nil, domain.NoLimit).Limit())
}

func TestView_Load(t *testing.T) {
	v := newTestView(t, domain.NoLimit)

	load(t, v, "1:1")

	require.NoError(t, v.Err())
	assert.Equal(t, "1:1", v.Source().String())
	require.Len(t, v.Edges(), 2)
	assert.Equal(t, "1:3", v.Edges()[0].Target.String())
	assert.Equal(t, domain.DirectionDirect, v.Edges()[0].Direction)
	assert.Equal(t, "1:2", v.Edges()[1].Target.String())
	assert.Equal(t, domain.DirectionReverse, v.Edges()[1].Direction)

	view := v.View()
	assert.Contains(t, view, "Similar to 1:1 (2)")
	assert.Contains(t, view, "c d")
}

func TestView_LoadRespectsLimit(t *testing.T) {
	v := newTestView(t, 1)

	load(t, v, "1:1")

	assert.Len(t, v.Edges(), 1)
}

func TestView_LoadUnknownVerse(t *testing.T) {
	v := newTestView(t, 0)

	load(t, v, "100:1")

	assert.NoError(t, v.Err())
	assert.Empty(t, v.Edges())
	assert.Contains(t, v.View(), "No similar verses for 100:1")
}

func TestView_LoadError(t *testing.T) {
	v := NewView(nil, nil, services.NewQueryService(), 0)
	v.SetDimensions(100, 30)

	v.Update(v.Load(domain.MustParseVerseKey("1:1"))())

	assert.ErrorIs(t, v.Err(), domain.ErrNotReady)
	assert.Contains(t, v.View(), "Error")
}

func TestView_SelectJumpsToTarget(t *testing.T) {
	v := newTestView(t, 0)
	load(t, v, "1:1")

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.PageRequested{Verse: domain.MustParseVerseKey("1:2")}, cmd())
}

func TestView_SelectEmpty(t *testing.T) {
	v := newTestView(t, 0)
	load(t, v, "100:1")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_BackAndQuit(t *testing.T) {
	v := newTestView(t, 0)

	_, back := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, back)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewReader}, back())

	_, quit := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, quit)
	assert.Equal(t, tea.QuitMsg{}, quit())
}
