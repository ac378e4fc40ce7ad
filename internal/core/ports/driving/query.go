package driving

import (
	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// SnapshotReader answers queries against one snapshot. A caller that
// combines several answers into one response takes a reader once, so a
// reload between the calls cannot mix two builds.
type SnapshotReader interface {
	// GetPage returns page n with line text joined from verse records.
	GetPage(n int) (*domain.RenderedPage, error)

	// VerseForWord returns the verse owning a global word id.
	VerseForWord(id domain.WordID) (domain.VerseKey, error)

	// SimilarTo returns verses similar to key, best first.
	// limit truncates the result; domain.NoLimit returns all.
	// Unknown keys return an empty result, not an error.
	SimilarTo(key domain.VerseKey, limit int) ([]domain.SimilarityEdge, error)

	// VerseRecord returns a verse with its translation data.
	VerseRecord(key domain.VerseKey) (*domain.VerseRecord, error)

	// PageForVerse returns the first page showing key.
	PageForVerse(key domain.VerseKey) (int, error)

	// VersesOnPage returns the verses laid out on page n in canonical order.
	VersesOnPage(n int) ([]domain.VerseKey, error)

	// VersesInRange returns the verse records from..to inclusive.
	VersesInRange(from, to domain.VerseKey) ([]domain.VerseRecord, error)

	// Surah returns surah metadata.
	Surah(n int) (*domain.SurahInfo, error)

	// SimilarCount returns the number of verses related to key.
	SimilarCount(key domain.VerseKey) int

	// SearchVerses returns the verses whose text, translation or
	// transliteration matches q. Substring hits come in canonical order;
	// fuzzy hits best first.
	SearchVerses(q domain.SearchQuery) ([]domain.SearchHit, error)

	// TotalPages returns the number of pages.
	TotalPages() int

	// Stats summarises the snapshot.
	Stats() domain.CorpusStats

	// Info describes the snapshot.
	Info() domain.SnapshotInfo
}

// QueryService answers read queries against the published corpus snapshot.
// Every method is a pure read and safe for concurrent use. Each call reads
// whichever snapshot is published at that moment; use Reader to pin one.
// Before the first snapshot is published, methods return domain.ErrNotReady.
type QueryService interface {
	// Reader pins the published snapshot.
	Reader() (SnapshotReader, error)

	// GetPage returns page n with line text joined from verse records.
	GetPage(n int) (*domain.RenderedPage, error)

	// VerseForWord returns the verse owning a global word id.
	VerseForWord(id domain.WordID) (domain.VerseKey, error)

	// SimilarTo returns verses similar to key, best first.
	SimilarTo(key domain.VerseKey, limit int) ([]domain.SimilarityEdge, error)

	// VerseRecord returns a verse with its translation data.
	VerseRecord(key domain.VerseKey) (*domain.VerseRecord, error)

	// PageForVerse returns the first page showing key.
	PageForVerse(key domain.VerseKey) (int, error)

	// VersesOnPage returns the verses laid out on page n in canonical order.
	VersesOnPage(n int) ([]domain.VerseKey, error)

	// VersesInRange returns the verse records from..to inclusive.
	VersesInRange(from, to domain.VerseKey) ([]domain.VerseRecord, error)

	// Surah returns surah metadata.
	Surah(n int) (*domain.SurahInfo, error)

	// SimilarCount returns the number of verses related to key.
	SimilarCount(key domain.VerseKey) (int, error)

	// SearchVerses searches verse text, translation or transliteration.
	SearchVerses(q domain.SearchQuery) ([]domain.SearchHit, error)

	// TotalPages returns the number of pages, 0 before the first snapshot.
	TotalPages() int

	// Stats summarises the published snapshot.
	Stats() (domain.CorpusStats, error)

	// Snapshot describes the published snapshot, nil before the first one.
	Snapshot() *domain.SnapshotInfo
}
