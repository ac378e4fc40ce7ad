package driven

import (
	"context"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// LayoutSource loads the page layout tables.
type LayoutSource interface {
	// LoadLayout returns the page/line table in source order and the
	// word-to-verse table, both from one read of the source. The word
	// table is empty when the source has none.
	LoadLayout(ctx context.Context) (lines, words domain.Table, err error)
}

// TextSource loads verse text and verse-keyed annotations.
type TextSource interface {
	// LoadVerses returns raw verse text keyed by verse key.
	LoadVerses(ctx context.Context) (domain.TextTable, error)

	// LoadTranslations returns translated text keyed by verse key.
	// Returns nil when no translation is configured.
	LoadTranslations(ctx context.Context) (domain.TextTable, error)

	// LoadTransliterations returns transliterated text keyed by verse key.
	// Returns nil when no transliteration is configured.
	LoadTransliterations(ctx context.Context) (domain.TextTable, error)

	// LoadSurahs returns surah metadata. May be empty.
	LoadSurahs(ctx context.Context) ([]domain.SurahInfo, error)
}

// MatchSource loads the forward-only similarity match table.
type MatchSource interface {
	LoadMatches(ctx context.Context) (domain.MatchTable, error)
}

// Fingerprinter identifies the content of a source without parsing it.
// Sources that implement it let reloads skip unchanged inputs.
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

// ChangeNotifier reports changes to the corpus inputs.
type ChangeNotifier interface {
	// Watch returns a channel of change events.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.ChangeEvent, error)
}

// LayoutSink stores validated layout rows, replacing any previous content.
type LayoutSink interface {
	WriteLines(ctx context.Context, rows []domain.AyahLineRow) error
	WriteWords(ctx context.Context, rows []domain.WordRow) error
	Close() error
}
