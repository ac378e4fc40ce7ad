package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/services"
)

func TestServer_handleGetPage(t *testing.T) {
	ctx := context.Background()
	env := newTestServer(t)

	t.Run("returns lines with text", func(t *testing.T) {
		_, out, err := env.server.handleGetPage(ctx, nil, PageInput{Page: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, out.Page)
		assert.Equal(t, 1, out.TotalPages)
		require.Len(t, out.Lines, 3)
		assert.Equal(t, "surah_name", out.Lines[0].Type)
		assert.True(t, out.Lines[0].Centered)
		assert.Equal(t, "a b", out.Lines[1].Text)
		assert.Equal(t, []string{"1:2", "1:3"}, out.Lines[2].VerseKeys)
	})

	t.Run("unknown page", func(t *testing.T) {
		_, _, err := env.server.handleGetPage(ctx, nil, PageInput{Page: 7})
		assert.ErrorIs(t, err, domain.ErrPageNotFound)
	})
}

func TestServer_handleGetVerse(t *testing.T) {
	ctx := context.Background()
	env := newTestServer(t)

	_, out, err := env.server.handleGetVerse(ctx, nil, VerseInput{VerseKey: "1:2"})
	require.NoError(t, err)
	assert.Equal(t, "1:2", out.VerseKey)
	assert.Equal(t, "c d", out.Text)
	assert.Equal(t, "second", out.Translation)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 1, out.SimilarCount)

	_, _, err = env.server.handleGetVerse(ctx, nil, VerseInput{VerseKey: "one"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = env.server.handleGetVerse(ctx, nil, VerseInput{VerseKey: "4:4"})
	assert.ErrorIs(t, err, domain.ErrVerseNotFound)
}

func TestServer_handleVerseForWord(t *testing.T) {
	ctx := context.Background()
	env := newTestServer(t)

	_, out, err := env.server.handleVerseForWord(ctx, nil, WordInput{WordID: 4})
	require.NoError(t, err)
	assert.Equal(t, "1:2", out.VerseKey)
	assert.Equal(t, 1, out.Page)

	_, _, err = env.server.handleVerseForWord(ctx, nil, WordInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = env.server.handleVerseForWord(ctx, nil, WordInput{WordID: 6})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestServer_handleSimilar(t *testing.T) {
	ctx := context.Background()
	env := newTestServer(t)

	t.Run("merges both directions", func(t *testing.T) {
		_, out, err := env.server.handleSimilar(ctx, nil, SimilarInput{VerseKey: "1:1"})

		require.NoError(t, err)
		require.Equal(t, 2, out.Count)
		assert.Equal(t, "1:3", out.Results[0].VerseKey)
		assert.Equal(t, "direct", out.Results[0].Direction)
		assert.Equal(t, "e", out.Results[0].Text)
		assert.Equal(t, "1:2", out.Results[1].VerseKey)
		assert.Equal(t, "reverse", out.Results[1].Direction)
	})

	t.Run("limit", func(t *testing.T) {
		_, out, err := env.server.handleSimilar(ctx, nil, SimilarInput{VerseKey: "1:1", Limit: intPtr(1)})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Count)
	})

	t.Run("zero limit returns nothing", func(t *testing.T) {
		_, out, err := env.server.handleSimilar(ctx, nil, SimilarInput{VerseKey: "1:1", Limit: intPtr(0)})
		require.NoError(t, err)
		assert.Equal(t, 0, out.Count)
		assert.Empty(t, out.Results)
	})

	t.Run("all", func(t *testing.T) {
		_, out, err := env.server.handleSimilar(ctx, nil, SimilarInput{VerseKey: "1:1", Limit: intPtr(domain.NoLimit)})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Count)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, _, err := env.server.handleSimilar(ctx, nil, SimilarInput{VerseKey: "1:1", Limit: intPtr(-3)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestLimitOr(t *testing.T) {
	assert.Equal(t, 10, limitOr(nil, 10))
	assert.Equal(t, 0, limitOr(intPtr(0), 10))
	assert.Equal(t, -1, limitOr(intPtr(-1), 10))
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()
	env := newTestServer(t)

	t.Run("verse text", func(t *testing.T) {
		_, out, err := env.server.handleSearch(ctx, nil, SearchInput{Query: "C"})

		require.NoError(t, err)
		require.Equal(t, 1, out.Count)
		assert.Equal(t, "1:2", out.Results[0].VerseKey)
		assert.Equal(t, "c d", out.Results[0].Text)
		assert.Equal(t, "second", out.Results[0].Translation)
		assert.Equal(t, 1, out.Results[0].Page)
		assert.Equal(t, 1.0, out.Results[0].Score)
	})

	t.Run("translation", func(t *testing.T) {
		_, out, err := env.server.handleSearch(ctx, nil, SearchInput{Query: "secnd", Field: "translation", Fuzzy: true})

		require.NoError(t, err)
		require.Equal(t, 1, out.Count)
		assert.Equal(t, "1:2", out.Results[0].VerseKey)
	})

	t.Run("zero limit", func(t *testing.T) {
		_, out, err := env.server.handleSearch(ctx, nil, SearchInput{Query: "c", Limit: intPtr(0)})
		require.NoError(t, err)
		assert.Equal(t, 0, out.Count)
	})

	t.Run("surah filter", func(t *testing.T) {
		_, out, err := env.server.handleSearch(ctx, nil, SearchInput{Query: "c", Surah: 2})
		require.NoError(t, err)
		assert.Equal(t, 0, out.Count)
	})

	t.Run("bad field", func(t *testing.T) {
		_, _, err := env.server.handleSearch(ctx, nil, SearchInput{Query: "c", Field: "notes"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty query", func(t *testing.T) {
		_, _, err := env.server.handleSearch(ctx, nil, SearchInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func intPtr(n int) *int { return &n }

func TestServer_handleReload(t *testing.T) {
	ctx := context.Background()
	env := newTestServer(t)
	before := env.query.Snapshot()

	_, out, err := env.server.handleReload(ctx, nil, ReloadInput{Force: true})

	require.NoError(t, err)
	assert.True(t, out.Reloaded)
	assert.NotEqual(t, before.ID, out.SnapshotID)
	assert.NotEmpty(t, out.BuiltAt)
}

func TestServer_NotReady(t *testing.T) {
	server, err := NewServer(&Ports{Query: services.NewQueryService()})
	require.NoError(t, err)

	_, _, err = server.handleGetPage(context.Background(), nil, PageInput{Page: 1})
	assert.ErrorIs(t, err, domain.ErrNotReady)
}
