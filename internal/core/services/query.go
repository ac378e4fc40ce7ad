package services

import (
	"context"
	"sync/atomic"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
	"github.com/custodia-labs/mushaf/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers queries against the published snapshot.
// Readers load the snapshot pointer once per call and never lock; a
// rebuild swaps the pointer, so in-flight calls finish on the old one.
type QueryService struct {
	current atomic.Pointer[Snapshot]
}

// NewQueryService creates a query service with no snapshot published.
func NewQueryService() *QueryService {
	return &QueryService{}
}

// Rebuild builds a snapshot from tables and publishes it. On error the
// previously published snapshot keeps serving.
func (s *QueryService) Rebuild(ctx context.Context, tables domain.Tables) (*Snapshot, error) {
	snap, err := Build(ctx, tables)
	if err != nil {
		logger.Warn("rebuild rejected: %v", err)
		return nil, err
	}
	s.Publish(snap)
	return snap, nil
}

// Publish makes snap the snapshot served to new calls.
func (s *QueryService) Publish(snap *Snapshot) {
	if old := s.current.Swap(snap); old != nil {
		logger.Debug("replaced %s with %s", old, snap)
	}
}

func (s *QueryService) load() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrNotReady
	}
	return snap, nil
}

// Reader returns the published snapshot. It keeps answering from that
// build after later reloads.
func (s *QueryService) Reader() (driving.SnapshotReader, error) {
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// read runs fn against the published snapshot.
func read[T any](s *QueryService, fn func(*Snapshot) (T, error)) (T, error) {
	snap, err := s.load()
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(snap)
}

// GetPage returns page n with line text joined from verse records.
func (s *QueryService) GetPage(n int) (*domain.RenderedPage, error) {
	return read(s, func(snap *Snapshot) (*domain.RenderedPage, error) { return snap.GetPage(n) })
}

// VerseForWord returns the verse owning id.
func (s *QueryService) VerseForWord(id domain.WordID) (domain.VerseKey, error) {
	return read(s, func(snap *Snapshot) (domain.VerseKey, error) { return snap.VerseForWord(id) })
}

// SimilarTo returns verses similar to key, best first.
func (s *QueryService) SimilarTo(key domain.VerseKey, limit int) ([]domain.SimilarityEdge, error) {
	return read(s, func(snap *Snapshot) ([]domain.SimilarityEdge, error) { return snap.SimilarTo(key, limit) })
}

// VerseRecord returns a copy of the verse record for key.
func (s *QueryService) VerseRecord(key domain.VerseKey) (*domain.VerseRecord, error) {
	return read(s, func(snap *Snapshot) (*domain.VerseRecord, error) { return snap.VerseRecord(key) })
}

// PageForVerse returns the first page showing key.
func (s *QueryService) PageForVerse(key domain.VerseKey) (int, error) {
	return read(s, func(snap *Snapshot) (int, error) { return snap.PageForVerse(key) })
}

// VersesOnPage returns the verses on page n in canonical order.
func (s *QueryService) VersesOnPage(n int) ([]domain.VerseKey, error) {
	return read(s, func(snap *Snapshot) ([]domain.VerseKey, error) { return snap.VersesOnPage(n) })
}

// VersesInRange returns the verse records from..to inclusive.
func (s *QueryService) VersesInRange(from, to domain.VerseKey) ([]domain.VerseRecord, error) {
	return read(s, func(snap *Snapshot) ([]domain.VerseRecord, error) { return snap.VersesInRange(from, to) })
}

// Surah returns the metadata of surah n.
func (s *QueryService) Surah(n int) (*domain.SurahInfo, error) {
	return read(s, func(snap *Snapshot) (*domain.SurahInfo, error) { return snap.Surah(n) })
}

// SimilarCount returns the number of verses related to key.
func (s *QueryService) SimilarCount(key domain.VerseKey) (int, error) {
	return read(s, func(snap *Snapshot) (int, error) { return snap.SimilarCount(key), nil })
}

// SearchVerses searches verse text, translation or transliteration.
func (s *QueryService) SearchVerses(q domain.SearchQuery) ([]domain.SearchHit, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return read(s, func(snap *Snapshot) ([]domain.SearchHit, error) { return snap.SearchVerses(q) })
}

// TotalPages returns the number of pages, 0 before the first snapshot.
func (s *QueryService) TotalPages() int {
	snap := s.current.Load()
	if snap == nil {
		return 0
	}
	return snap.TotalPages()
}

// Stats summarises the published snapshot.
func (s *QueryService) Stats() (domain.CorpusStats, error) {
	return read(s, func(snap *Snapshot) (domain.CorpusStats, error) { return snap.Stats(), nil })
}

// Snapshot describes the published snapshot, nil before the first one.
func (s *QueryService) Snapshot() *domain.SnapshotInfo {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	info := snap.Info()
	return &info
}
