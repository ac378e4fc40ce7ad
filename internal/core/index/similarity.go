package index

import (
	"math"
	"slices"
	"sort"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

type matchPayload struct {
	score    float64
	matched  int
	coverage float64
}

// SimilarityIndex answers similarity queries over an asymmetric match table.
// Forward and reverse adjacency are merged once at build time, so a query
// is a map lookup plus an optional truncation.
type SimilarityIndex struct {
	merged map[domain.VerseKey][]domain.SimilarityEdge

	records       int
	pairs         int
	bidirectional int
}

// BuildSimilarity indexes the forward match table. Self matches are
// dropped; a pair recorded twice in one direction keeps the higher score.
func BuildSimilarity(table string, matches domain.MatchTable) (*SimilarityIndex, error) {
	sources := make([]string, 0, len(matches))
	for k := range matches {
		sources = append(sources, k)
	}
	sort.Strings(sources)

	forward := make(map[domain.VerseKey]map[domain.VerseKey]matchPayload)
	reverse := make(map[domain.VerseKey]map[domain.VerseKey]matchPayload)
	idx := &SimilarityIndex{}

	for _, s := range sources {
		src, err := domain.ParseVerseKey(s)
		if err != nil {
			return nil, domain.NewBuildError(domain.ErrMalformedRow, table, "bad source verse key %q", s)
		}
		for i, m := range matches[s] {
			dst, err := domain.ParseVerseKey(m.MatchedKey)
			if err != nil {
				return nil, domain.NewBuildError(domain.ErrMalformedRow, table,
					"match %d of %s has bad verse key %q", i, s, m.MatchedKey)
			}
			if math.IsNaN(m.Score) || math.IsInf(m.Score, 0) {
				return nil, domain.NewBuildError(domain.ErrMalformedRow, table,
					"match %d of %s has non-finite score", i, s)
			}
			idx.records++
			if src == dst {
				continue
			}
			p := matchPayload{score: m.Score, matched: m.MatchedWords, coverage: m.Coverage}
			insertHigher(forward, src, dst, p)
			insertHigher(reverse, dst, src, p)
		}
	}

	idx.merged = make(map[domain.VerseKey][]domain.SimilarityEdge, len(forward)+len(reverse))
	for key := range forward {
		idx.merged[key] = merge(key, forward[key], reverse[key])
	}
	for key := range reverse {
		if _, done := idx.merged[key]; !done {
			idx.merged[key] = merge(key, nil, reverse[key])
		}
	}
	for _, edges := range idx.merged {
		idx.pairs += len(edges)
		for i := range edges {
			if edges[i].Direction == domain.DirectionBidirectional {
				idx.bidirectional++
			}
		}
	}
	// every unordered pair appears in both endpoint lists
	idx.pairs /= 2
	idx.bidirectional /= 2
	return idx, nil
}

func insertHigher(adj map[domain.VerseKey]map[domain.VerseKey]matchPayload, from, to domain.VerseKey, p matchPayload) {
	row, ok := adj[from]
	if !ok {
		row = make(map[domain.VerseKey]matchPayload)
		adj[from] = row
	}
	if old, seen := row[to]; seen && old.score >= p.score {
		return
	}
	row[to] = p
}

// merge unions direct and reverse neighbours of key by target. A pair
// present in both directions keeps the higher score, the direct payload
// on a tie.
func merge(key domain.VerseKey, direct, rev map[domain.VerseKey]matchPayload) []domain.SimilarityEdge {
	edges := make([]domain.SimilarityEdge, 0, len(direct)+len(rev))
	for target, p := range direct {
		dir := domain.DirectionDirect
		if r, ok := rev[target]; ok {
			dir = domain.DirectionBidirectional
			if r.score > p.score {
				p = r
			}
		}
		edges = append(edges, edge(key, target, p, dir))
	}
	for target, p := range rev {
		if _, ok := direct[target]; ok {
			continue
		}
		edges = append(edges, edge(key, target, p, domain.DirectionReverse))
	}
	slices.SortFunc(edges, func(a, b domain.SimilarityEdge) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return a.Target.Compare(b.Target)
		}
	})
	return edges
}

func edge(src, dst domain.VerseKey, p matchPayload, dir domain.Direction) domain.SimilarityEdge {
	return domain.SimilarityEdge{
		Source:       src,
		Target:       dst,
		Score:        p.score,
		MatchedWords: p.matched,
		Coverage:     p.coverage,
		Direction:    dir,
	}
}

// Similar returns the merged edges of key, best first. limit < 0 returns
// all of them; otherwise at most limit edges, always a prefix of the full
// order. Unknown keys yield an empty result.
func (x *SimilarityIndex) Similar(key domain.VerseKey, limit int) []domain.SimilarityEdge {
	edges := x.merged[key]
	if limit >= 0 && limit < len(edges) {
		edges = edges[:limit]
	}
	out := make([]domain.SimilarityEdge, len(edges))
	copy(out, edges)
	return out
}

// Count returns the number of verses related to key in either direction.
func (x *SimilarityIndex) Count(key domain.VerseKey) int {
	return len(x.merged[key])
}

// Records returns the number of forward records read, self matches included.
func (x *SimilarityIndex) Records() int {
	return x.records
}

// Pairs returns the number of related unordered verse pairs.
func (x *SimilarityIndex) Pairs() int {
	return x.pairs
}

// BidirectionalPairs returns the pairs recorded in both directions.
func (x *SimilarityIndex) BidirectionalPairs() int {
	return x.bidirectional
}
