package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

func key(s string) domain.VerseKey { return domain.MustParseVerseKey(s) }

func TestWordIndexFromCounts_PartitionsWordSpace(t *testing.T) {
	counts := []VerseWords{
		{Key: key("2:1"), Count: 1},
		{Key: key("1:2"), Count: 4},
		{Key: key("1:1"), Count: 3},
		{Key: key("1:3"), Count: 0},
	}

	idx, err := WordIndexFromCounts(counts)
	require.NoError(t, err)
	assert.Equal(t, domain.WordID(8), idx.Total())
	assert.Equal(t, 3, idx.Len())

	covered := 0
	for _, k := range idx.Verses() {
		r, ok := idx.RangeOf(k)
		require.True(t, ok)
		for w := r.First; w <= r.Last; w++ {
			got, err := idx.VerseFor(w)
			require.NoError(t, err)
			assert.Equal(t, k, got, "word %d", w)
			covered++
		}
	}
	assert.Equal(t, int(idx.Total()), covered, "ranges leave no gaps or overlaps")

	r, ok := idx.RangeOf(key("1:2"))
	require.True(t, ok)
	assert.Equal(t, domain.WordRange{First: 4, Last: 7}, r)

	_, ok = idx.RangeOf(key("1:3"))
	assert.False(t, ok, "verses without tokens own no ids")
}

func TestWordIndex_OutOfRange(t *testing.T) {
	idx, err := WordIndexFromCounts([]VerseWords{{Key: key("1:1"), Count: 2}})
	require.NoError(t, err)

	for _, id := range []domain.WordID{0, 3, 1000} {
		_, err := idx.VerseFor(id)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
		assert.ErrorIs(t, err, domain.ErrQuery)
	}

	empty, err := WordIndexFromCounts(nil)
	require.NoError(t, err)
	_, err = empty.VerseFor(1)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestWordIndexFromCounts_DuplicateVerse(t *testing.T) {
	_, err := WordIndexFromCounts([]VerseWords{{Key: key("1:1"), Count: 1}, {Key: key("1:1"), Count: 2}})
	assert.ErrorIs(t, err, domain.ErrMalformedRow)
}

func TestWordIndexFromRows(t *testing.T) {
	rows := []domain.WordRow{
		{ID: 3, Verse: key("1:2")},
		{ID: 1, Verse: key("1:1")},
		{ID: 2, Verse: key("1:1")},
		{ID: 4, Verse: key("1:2")},
		{ID: 5, Verse: key("2:1")},
	}

	idx, err := WordIndexFromRows(rows)
	require.NoError(t, err)
	assert.Equal(t, domain.WordID(5), idx.Total())

	got, err := idx.VerseFor(4)
	require.NoError(t, err)
	assert.Equal(t, key("1:2"), got)

	first, last, err := idx.Span(domain.WordRange{First: 2, Last: 5})
	require.NoError(t, err)
	assert.Equal(t, key("1:1"), idx.VerseAt(first))
	assert.Equal(t, key("2:1"), idx.VerseAt(last))
}

func TestWordIndexFromRows_Inconsistent(t *testing.T) {
	tests := []struct {
		name string
		rows []domain.WordRow
	}{
		{"gap", []domain.WordRow{{ID: 1, Verse: key("1:1")}, {ID: 3, Verse: key("1:1")}}},
		{"duplicate id", []domain.WordRow{{ID: 1, Verse: key("1:1")}, {ID: 1, Verse: key("1:2")}}},
		{"not from one", []domain.WordRow{{ID: 2, Verse: key("1:1")}}},
		{"verse goes backwards", []domain.WordRow{{ID: 1, Verse: key("1:2")}, {ID: 2, Verse: key("1:1")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WordIndexFromRows(tt.rows)
			assert.ErrorIs(t, err, domain.ErrInconsistentWordRange)
			assert.ErrorIs(t, err, domain.ErrBuild)
		})
	}
}
