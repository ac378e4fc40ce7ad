package index

import (
	"cmp"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// fuzzyThreshold is the word similarity a fuzzy match must exceed.
const fuzzyThreshold = 0.6

// TextIndex answers substring and fuzzy searches over a list of texts.
// Documents are numbered by their position in that list, and results come
// back in document order (fuzzy results break score ties that way).
//
// Every distinct normalised word has a posting bitmap. A query first
// narrows the documents through the vocabulary, which is far smaller than
// the corpus, and only the survivors are checked against the full text.
type TextIndex struct {
	docs     []string
	vocab    []string
	postings []*roaring.Bitmap
}

// Scored is a document with its fuzzy match score.
type Scored struct {
	Doc   int
	Score float64

	// Matched counts the query words that matched.
	Matched int
}

// NewTextIndex normalises and indexes texts. Empty texts are kept as
// documents that never match.
func NewTextIndex(texts []string) *TextIndex {
	x := &TextIndex{docs: make([]string, len(texts))}
	byWord := make(map[string]*roaring.Bitmap)
	for i, text := range texts {
		n := Normalize(text)
		x.docs[i] = n
		for _, w := range strings.Fields(n) {
			bm, ok := byWord[w]
			if !ok {
				bm = roaring.New()
				byWord[w] = bm
			}
			bm.Add(uint32(i))
		}
	}

	x.vocab = make([]string, 0, len(byWord))
	for w := range byWord {
		x.vocab = append(x.vocab, w)
	}
	slices.Sort(x.vocab)
	x.postings = make([]*roaring.Bitmap, len(x.vocab))
	for i, w := range x.vocab {
		bm := byWord[w]
		bm.RunOptimize()
		x.postings[i] = bm
	}
	return x
}

// Len returns the number of documents.
func (x *TextIndex) Len() int {
	return len(x.docs)
}

// Vocabulary returns the number of distinct normalised words.
func (x *TextIndex) Vocabulary() int {
	return len(x.vocab)
}

// Contains returns the documents whose normalised text contains the
// normalised query, in document order.
func (x *TextIndex) Contains(query string) []int {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	// A query word can only occur inside a single document word, so each
	// one must hit some vocabulary entry.
	var candidates *roaring.Bitmap
	for _, tok := range strings.Fields(q) {
		var hits []*roaring.Bitmap
		for i, w := range x.vocab {
			if strings.Contains(w, tok) {
				hits = append(hits, x.postings[i])
			}
		}
		if len(hits) == 0 {
			return nil
		}
		bm := roaring.FastOr(hits...)
		if candidates == nil {
			candidates = bm
		} else {
			candidates = roaring.And(candidates, bm)
		}
		if candidates.IsEmpty() {
			return nil
		}
	}

	out := make([]int, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		d := int(it.Next())
		if strings.Contains(x.docs[d], q) {
			out = append(out, d)
		}
	}
	return out
}

// Fuzzy scores documents by how closely their words match the query
// words. A query word matches when some word of the document is more
// than fuzzyThreshold similar to it; the score is the mean similarity of
// the matched query words. Documents matching more query words come
// first, then higher scores.
func (x *TextIndex) Fuzzy(query string) []Scored {
	words := strings.Fields(Normalize(query))
	if len(words) == 0 {
		return nil
	}

	best := make(map[uint32][]float64)
	for qi, qw := range words {
		for vi, vw := range x.vocab {
			sim := wordSimilarity(qw, vw)
			if sim <= fuzzyThreshold {
				continue
			}
			it := x.postings[vi].Iterator()
			for it.HasNext() {
				d := it.Next()
				b, ok := best[d]
				if !ok {
					b = make([]float64, len(words))
					best[d] = b
				}
				b[qi] = max(b[qi], sim)
			}
		}
	}

	out := make([]Scored, 0, len(best))
	for d, sims := range best {
		var sum float64
		var n int
		for _, s := range sims {
			if s > 0 {
				sum += s
				n++
			}
		}
		out = append(out, Scored{Doc: int(d), Score: sum / float64(n), Matched: n})
	}
	slices.SortFunc(out, func(a, b Scored) int {
		if c := cmp.Compare(b.Matched, a.Matched); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Doc, b.Doc)
	})
	return out
}

// wordSimilarity is 1 minus the edit distance scaled by the longer word.
// Pairs whose length difference alone rules out the fuzzy threshold
// report 0 without computing the distance.
func wordSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	diff := len(ra) - len(rb)
	if diff < 0 {
		diff = -diff
	}
	if float64(diff) >= (1-fuzzyThreshold)*float64(longest) {
		return 0
	}
	return 1 - float64(editDistance(ra, rb))/float64(longest)
}

// editDistance is the Levenshtein distance between two rune slices.
func editDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
