package mcp

import (
	"context"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mushaf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/services"
)

// testTables holds one page of three ayah lines, verses 1:1-1:3.
func testTables() domain.Tables {
	return domain.Tables{
		Lines: domain.Table{
			Name: "pages",
			Columns: []string{
				"page_number", "line_number", "line_type", "is_centered",
				"first_word_id", "last_word_id", "surah_number",
			},
			Rows: [][]any{
				{1, 1, "surah_name", true, nil, nil, 1},
				{1, 2, "ayah", false, 1, 2, nil},
				{1, 3, "ayah", false, 3, 5, nil},
			},
		},
		Verses: domain.TextTable{
			"1:1": "a b",
			"1:2": "c d",
			"1:3": "e",
		},
		Translations: domain.TextTable{"1:2": "second"},
		Matches: domain.MatchTable{
			"1:1": {{MatchedKey: "1:3", Score: 0.8, MatchedWords: 1, Coverage: 0.5}},
			"1:2": {{MatchedKey: "1:1", Score: 0.6, MatchedWords: 1, Coverage: 0.5}},
		},
		Surahs: []domain.SurahInfo{{Number: 1, NameSimple: "Al-Fatihah", NameArabic: "الفاتحة"}},
	}
}

type testEnv struct {
	source *memory.TableSource
	query  *services.QueryService
	corpus *services.CorpusService
	server *Server
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		source: memory.NewTableSource(testTables()),
		query:  services.NewQueryService(),
	}
	env.corpus = services.NewCorpusService(env.query, env.source, env.source, env.source)
	_, err := env.corpus.Reload(context.Background(), true)
	require.NoError(t, err)

	env.server, err = NewServer(&Ports{Query: env.query, Corpus: env.corpus})
	require.NoError(t, err)
	return env
}

func TestNewServer(t *testing.T) {
	t.Run("nil query service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingQueryService)
	})

	t.Run("query only creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: services.NewQueryService()})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingQueryService)
	assert.NoError(t, (&Ports{Query: services.NewQueryService()}).Validate())
}

func TestNewServer_Version(t *testing.T) {
	q := services.NewQueryService()

	s, err := NewServer(&Ports{Query: q})
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, s.Version())

	s, err = NewServer(&Ports{Query: q}, WithVersion("1.2.3"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", s.Version())

	s, err = NewServer(&Ports{Query: q}, WithVersion(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, s.Version())
}

func TestServer_Handler(t *testing.T) {
	env := newTestServer(t)
	assert.NotNil(t, env.server.Handler())
}

func TestServer_ServeInMemory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env := newTestServer(t)
	server, err := NewServer(&Ports{Query: env.query, Corpus: env.corpus}, WithVersion("9.9.9"))
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	served := make(chan error, 1)
	go func() { served <- server.Serve(ctx, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	info := session.InitializeResult()
	require.NotNil(t, info)
	assert.Equal(t, "mushaf", info.ServerInfo.Name)
	assert.Equal(t, "9.9.9", info.ServerInfo.Version)
	assert.Contains(t, info.Instructions, "surah:ayah")

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"get_page", "get_verse", "reload_corpus", "search_verses", "similar_verses", "verse_for_word"}, names)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_verse",
		Arguments: map[string]any{"verse_key": "1:2"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.NotEmpty(t, res.Content)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_page",
		Arguments: map[string]any{"page": 9},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError, "unknown page is reported as a tool error")

	require.NoError(t, session.Close())
	cancel()
	<-served
}
