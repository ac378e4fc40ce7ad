package services

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/index"
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
)

// Ensure Snapshot implements the interface.
var _ driving.SnapshotReader = (*Snapshot)(nil)

// Snapshot is one immutable build of the corpus. Nothing in it is
// modified after Build returns, so any number of readers may share it.
type Snapshot struct {
	info domain.SnapshotInfo

	words   *index.WordIndex
	pages   []domain.Page
	pageMap *index.PageMap
	similar *index.SimilarityIndex
	records map[domain.VerseKey]*domain.VerseRecord
	order   []domain.VerseKey
	surahs  map[int]domain.SurahInfo
	lines   int

	// text indexes the verse fields in order; document i is order[i].
	text map[domain.SearchField]*index.TextIndex
}

// Info describes the snapshot.
func (s *Snapshot) Info() domain.SnapshotInfo {
	return s.info
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("snapshot %s (%d pages)", s.info.ID, len(s.pages))
}

// GetPage returns page n with line text joined from verse records.
func (s *Snapshot) GetPage(n int) (*domain.RenderedPage, error) {
	if n < 1 || n > len(s.pages) {
		return nil, domain.PageNotFound(n)
	}
	p := &s.pages[n-1]
	out := &domain.RenderedPage{
		Number:       p.Number,
		Lines:        make([]domain.RenderedLine, 0, len(p.Lines)),
		SurahHeaders: make([]domain.RenderedSurahHeader, 0, len(p.SurahHeaders)),
	}
	for i := range p.Lines {
		out.Lines = append(out.Lines, s.renderLine(&p.Lines[i]))
	}
	for _, h := range p.SurahHeaders {
		info := s.surahInfo(h.Surah)
		out.SurahHeaders = append(out.SurahHeaders, domain.RenderedSurahHeader{
			Surah:      h.Surah,
			Line:       h.Line,
			NameSimple: info.NameSimple,
			NameArabic: info.NameArabic,
		})
	}
	return out, nil
}

func (s *Snapshot) renderLine(line *domain.PageLine) domain.RenderedLine {
	out := domain.RenderedLine{
		Number:   line.Number,
		Type:     line.Type,
		Centered: line.Centered,
		Surah:    line.Surah,
	}
	switch line.Type {
	case domain.LineAyah:
		words := line.Words
		out.Words = &words
		out.Verses = slices.Clone(line.Verses)
		out.Text = s.lineText(line)
	case domain.LineSurahName:
		info := s.surahInfo(line.Surah)
		out.Text = info.NameArabic
		if out.Text == "" {
			out.Text = info.NameSimple
		}
	case domain.LineBasmallah:
		out.Text = domain.Basmallah
	}
	return out
}

// lineText joins the tokens of every verse the line spans, cut to the
// line's word range.
func (s *Snapshot) lineText(line *domain.PageLine) string {
	var parts []string
	for _, key := range line.Verses {
		rec, ok := s.records[key]
		if !ok {
			continue
		}
		r, ok := s.words.RangeOf(key)
		if !ok {
			continue
		}
		tokens := domain.Tokenize(rec.Text)
		from := int(max(line.Words.First, r.First) - r.First)
		to := int(min(line.Words.Last, r.Last)-r.First) + 1
		to = min(to, len(tokens))
		if from < to {
			parts = append(parts, tokens[from:to]...)
		}
	}
	return strings.Join(parts, " ")
}

// surahInfo falls back to a numbered name when no metadata was loaded.
func (s *Snapshot) surahInfo(n int) domain.SurahInfo {
	if info, ok := s.surahs[n]; ok {
		if info.NameSimple == "" {
			info.NameSimple = "Surah " + strconv.Itoa(n)
		}
		return info
	}
	return domain.SurahInfo{Number: n, NameSimple: "Surah " + strconv.Itoa(n)}
}

// VerseForWord returns the verse owning id.
func (s *Snapshot) VerseForWord(id domain.WordID) (domain.VerseKey, error) {
	return s.words.VerseFor(id)
}

// SimilarTo returns verses similar to key, best first.
func (s *Snapshot) SimilarTo(key domain.VerseKey, limit int) ([]domain.SimilarityEdge, error) {
	if limit < domain.NoLimit {
		return nil, fmt.Errorf("%w: limit %d", domain.ErrInvalidInput, limit)
	}
	return s.similar.Similar(key, limit), nil
}

// SimilarCount returns the number of verses related to key.
func (s *Snapshot) SimilarCount(key domain.VerseKey) int {
	return s.similar.Count(key)
}

// PageForVerse returns the first page showing key.
func (s *Snapshot) PageForVerse(key domain.VerseKey) (int, error) {
	n, ok := s.pageMap.FirstPage(key)
	if !ok {
		return 0, domain.VerseNotFound(key)
	}
	return n, nil
}

// VersesOnPage returns the verses on page n in canonical order.
func (s *Snapshot) VersesOnPage(n int) ([]domain.VerseKey, error) {
	keys, ok := s.pageMap.VersesOn(n)
	if !ok {
		return nil, domain.PageNotFound(n)
	}
	return keys, nil
}

// Surah returns the metadata of surah n.
func (s *Snapshot) Surah(n int) (*domain.SurahInfo, error) {
	info, ok := s.surahs[n]
	if !ok {
		return nil, &domain.QueryError{Kind: domain.ErrSurahNotFound, Subject: strconv.Itoa(n)}
	}
	return &info, nil
}

// TotalPages returns the number of pages.
func (s *Snapshot) TotalPages() int {
	return len(s.pages)
}

// VerseRecord returns a copy of the verse record for key.
func (s *Snapshot) VerseRecord(key domain.VerseKey) (*domain.VerseRecord, error) {
	rec, ok := s.records[key]
	if !ok {
		return nil, domain.VerseNotFound(key)
	}
	cp := *rec
	return &cp, nil
}

// VersesInRange returns the verse records from..to inclusive.
func (s *Snapshot) VersesInRange(from, to domain.VerseKey) ([]domain.VerseRecord, error) {
	if to.Less(from) {
		return nil, fmt.Errorf("%w: range %s-%s is reversed", domain.ErrInvalidInput, from, to)
	}
	lo := sort.Search(len(s.order), func(i int) bool { return !s.order[i].Less(from) })
	hi := sort.Search(len(s.order), func(i int) bool { return to.Less(s.order[i]) })
	out := make([]domain.VerseRecord, 0, max(hi-lo, 0))
	for _, key := range s.order[lo:hi] {
		out = append(out, *s.records[key])
	}
	return out, nil
}

// Stats summarises the snapshot.
func (s *Snapshot) Stats() domain.CorpusStats {
	surahs := len(s.surahs)
	if surahs == 0 {
		seen := make(map[int]struct{})
		for _, key := range s.order {
			seen[key.Surah] = struct{}{}
		}
		surahs = len(seen)
	}
	return domain.CorpusStats{
		Surahs:             surahs,
		Verses:             len(s.records),
		Words:              int(s.words.Total()),
		Pages:              len(s.pages),
		Lines:              s.lines,
		MatchRecords:       s.similar.Records(),
		SimilarPairs:       s.similar.Pairs(),
		BidirectionalPairs: s.similar.BidirectionalPairs(),
	}
}

func sortedKeys(m map[domain.VerseKey]*domain.VerseRecord) []domain.VerseKey {
	keys := make([]domain.VerseKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, domain.VerseKey.Compare)
	return keys
}
