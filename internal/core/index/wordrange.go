package index

import (
	"fmt"
	"slices"
	"sort"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// WordIndex maps global word ids to the verses that own them.
// Verse ranges are stored as sorted breakpoints; the range of verse i is
// [starts[i], starts[i+1]-1], and the last verse ends at total.
type WordIndex struct {
	starts []domain.WordID
	verses []domain.VerseKey
	total  domain.WordID

	ordinal map[domain.VerseKey]int
}

// VerseWords is the token count of one verse.
type VerseWords struct {
	Key   domain.VerseKey
	Count int
}

// WordIndexFromCounts lays verses end to end in canonical order, each
// occupying Count ids. Verses without tokens own no ids.
func WordIndexFromCounts(counts []VerseWords) (*WordIndex, error) {
	sorted := slices.Clone(counts)
	slices.SortFunc(sorted, func(a, b VerseWords) int { return a.Key.Compare(b.Key) })

	idx := &WordIndex{ordinal: make(map[domain.VerseKey]int, len(sorted))}
	next := domain.WordID(1)
	for i, vc := range sorted {
		if i > 0 && sorted[i-1].Key == vc.Key {
			return nil, domain.NewBuildError(domain.ErrMalformedRow, "verses", "duplicate verse %s", vc.Key)
		}
		if vc.Count <= 0 {
			continue
		}
		idx.add(next, vc.Key)
		next += domain.WordID(vc.Count)
	}
	idx.total = next - 1
	return idx, nil
}

// WordIndexFromRows builds breakpoints where the owning verse changes.
// Ids must be contiguous from 1 and verses must not go backwards.
func WordIndexFromRows(rows []domain.WordRow) (*WordIndex, error) {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b domain.WordRow) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	idx := &WordIndex{ordinal: make(map[domain.VerseKey]int)}
	for i, r := range sorted {
		want := domain.WordID(i + 1)
		if r.ID != want {
			return nil, inconsistent("words", "word id %d found where %d was expected", r.ID, want)
		}
		if i == 0 || r.Verse != sorted[i-1].Verse {
			if i > 0 && r.Verse.Less(sorted[i-1].Verse) {
				return nil, inconsistent("words", "word %d of %s follows verse %s", r.ID, r.Verse, sorted[i-1].Verse)
			}
			idx.add(r.ID, r.Verse)
		}
	}
	idx.total = domain.WordID(len(sorted))
	return idx, nil
}

func (x *WordIndex) add(start domain.WordID, key domain.VerseKey) {
	x.ordinal[key] = len(x.verses)
	x.starts = append(x.starts, start)
	x.verses = append(x.verses, key)
}

func inconsistent(table, format string, args ...any) error {
	return domain.NewBuildError(domain.ErrInconsistentWordRange, table, format, args...)
}

// VerseFor returns the verse owning id.
func (x *WordIndex) VerseFor(id domain.WordID) (domain.VerseKey, error) {
	i, ok := x.find(id)
	if !ok {
		return domain.VerseKey{}, domain.OutOfRange(id)
	}
	return x.verses[i], nil
}

// find returns the ordinal of the greatest breakpoint <= id.
func (x *WordIndex) find(id domain.WordID) (int, bool) {
	if len(x.starts) == 0 || id < x.starts[0] || id > x.total {
		return 0, false
	}
	i := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > id })
	return i - 1, true
}

// RangeOf returns the word range of key.
func (x *WordIndex) RangeOf(key domain.VerseKey) (domain.WordRange, bool) {
	i, ok := x.ordinal[key]
	if !ok {
		return domain.WordRange{}, false
	}
	return x.rangeAt(i), true
}

func (x *WordIndex) rangeAt(i int) domain.WordRange {
	last := x.total
	if i+1 < len(x.starts) {
		last = x.starts[i+1] - 1
	}
	return domain.WordRange{First: x.starts[i], Last: last}
}

// Ordinal returns the canonical position of key among verses with words.
func (x *WordIndex) Ordinal(key domain.VerseKey) (int, bool) {
	i, ok := x.ordinal[key]
	return i, ok
}

// VerseAt returns the verse at ordinal i.
func (x *WordIndex) VerseAt(i int) domain.VerseKey {
	return x.verses[i]
}

// Span returns the ordinals of the first and last verse that r touches.
func (x *WordIndex) Span(r domain.WordRange) (first, last int, err error) {
	first, ok := x.find(r.First)
	if !ok {
		return 0, 0, fmt.Errorf("word %d: %w", r.First, domain.ErrOutOfRange)
	}
	last, ok = x.find(r.Last)
	if !ok {
		return 0, 0, fmt.Errorf("word %d: %w", r.Last, domain.ErrOutOfRange)
	}
	return first, last, nil
}

// Total returns the highest known word id, 0 when empty.
func (x *WordIndex) Total() domain.WordID {
	return x.total
}

// Len returns the number of verses that own words.
func (x *WordIndex) Len() int {
	return len(x.verses)
}

// Verses returns all verse keys with words in canonical order.
func (x *WordIndex) Verses() []domain.VerseKey {
	return slices.Clone(x.verses)
}
