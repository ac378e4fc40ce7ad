package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/index"
	"github.com/custodia-labs/mushaf/internal/logger"
)

// parsed holds the independently validated inputs of a build.
type parsed struct {
	lines            []domain.AyahLineRow
	words            []domain.WordRow
	verses           map[domain.VerseKey]string
	translations     map[domain.VerseKey]string
	transliterations map[domain.VerseKey]string
	surahs           map[int]domain.SurahInfo
	similar          *index.SimilarityIndex
}

// Build turns tables into an immutable snapshot. Independent tables are
// parsed concurrently; the word index, pages and verse records are joined
// once all of them are valid. Any error aborts the whole build.
func Build(ctx context.Context, tables domain.Tables) (*Snapshot, error) {
	start := time.Now()
	logger.Section("Build snapshot")

	p, err := parseTables(ctx, tables)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words, err := buildWordIndex(p)
	if err != nil {
		return nil, err
	}
	logger.Debug("word index: %s verses, %s words", logger.Count(words.Len()), logger.Count(int(words.Total())))

	stop := logger.Timed("page layout")
	pages, err := index.BuildPages(tableName(tables.Lines, "pages"), p.lines, words)
	stop()
	if err != nil {
		return nil, err
	}
	checkLineCoverage(pages, words)

	snap := &Snapshot{
		words:   words,
		pages:   pages,
		pageMap: index.NewPageMap(pages, words),
		similar: p.similar,
		surahs:  p.surahs,
		lines:   len(p.lines),
	}
	snap.records, snap.order = joinRecords(p)
	snap.text = buildTextIndexes(snap.records, snap.order)

	snap.info = domain.SnapshotInfo{
		ID:            uuid.NewString(),
		Fingerprint:   tables.Fingerprint,
		BuiltAt:       time.Now(),
		BuildDuration: time.Since(start),
	}
	logger.Info("snapshot %s: %s pages, %s verses, %s similar pairs in %s",
		snap.info.ID, logger.Count(len(pages)), logger.Count(len(snap.records)),
		logger.Count(p.similar.Pairs()), snap.info.BuildDuration.Round(time.Millisecond))
	return snap, nil
}

// parseTables validates every input table in its own goroutine.
func parseTables(ctx context.Context, t domain.Tables) (*parsed, error) {
	defer logger.Timed("parse tables")()

	p := &parsed{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		p.lines, err = domain.ParseLineRows(withName(t.Lines, "pages"))
		return err
	})
	g.Go(func() error {
		var err error
		p.words, err = domain.ParseWordRows(withName(t.Words, "words"))
		return err
	})
	g.Go(func() error {
		var err error
		p.verses, err = domain.ParseTextTable("verses", t.Verses)
		return err
	})
	g.Go(func() error {
		var err error
		p.translations, err = domain.ParseTextTable("translations", t.Translations)
		return err
	})
	g.Go(func() error {
		var err error
		p.transliterations, err = domain.ParseTextTable("transliterations", t.Transliterations)
		return err
	})
	g.Go(func() error {
		var err error
		p.surahs, err = indexSurahs(t.Surahs)
		return err
	})
	g.Go(func() error {
		var err error
		p.similar, err = index.BuildSimilarity("matches", t.Matches)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

func withName(t domain.Table, name string) domain.Table {
	t.Name = tableName(t, name)
	return t
}

func tableName(t domain.Table, fallback string) string {
	if t.Name != "" {
		return t.Name
	}
	return fallback
}

func indexSurahs(list []domain.SurahInfo) (map[int]domain.SurahInfo, error) {
	out := make(map[int]domain.SurahInfo, len(list))
	for _, s := range list {
		if s.Number < 1 || s.Number > domain.MaxSurah {
			return nil, domain.NewBuildError(domain.ErrMalformedRow, "surahs", "surah number %d out of range", s.Number)
		}
		out[s.Number] = s
	}
	return out, nil
}

// buildWordIndex prefers the word table and falls back to laying verse
// token counts end to end.
func buildWordIndex(p *parsed) (*index.WordIndex, error) {
	if len(p.words) > 0 {
		words, err := index.WordIndexFromRows(p.words)
		if err != nil {
			return nil, err
		}
		for key, text := range p.verses {
			r, ok := words.RangeOf(key)
			if n := len(domain.Tokenize(text)); ok && n != r.Len() {
				logger.Warn("verse %s has %d tokens but owns %d word ids", key, n, r.Len())
			}
		}
		return words, nil
	}

	counts := make([]index.VerseWords, 0, len(p.verses))
	for key, text := range p.verses {
		counts = append(counts, index.VerseWords{Key: key, Count: len(domain.Tokenize(text))})
	}
	return index.WordIndexFromCounts(counts)
}

// checkLineCoverage warns about words no ayah line shows. Gaps are legal
// (partial layouts) but usually mean the layout and text tables disagree.
func checkLineCoverage(pages []domain.Page, words *index.WordIndex) {
	if !logger.IsVerbose() || len(pages) == 0 {
		return
	}
	var shown int
	for i := range pages {
		for _, line := range pages[i].Lines {
			if line.Type == domain.LineAyah {
				shown += line.Words.Len()
			}
		}
	}
	if total := int(words.Total()); shown != total {
		logger.Warn("layout shows %s of %s words", logger.Count(shown), logger.Count(total))
	}
}

// joinRecords attaches translations to verses. Annotations for unknown
// verses are dropped with a warning.
func joinRecords(p *parsed) (map[domain.VerseKey]*domain.VerseRecord, []domain.VerseKey) {
	records := make(map[domain.VerseKey]*domain.VerseRecord, len(p.verses))
	for key, text := range p.verses {
		records[key] = &domain.VerseRecord{
			Key:       key,
			Text:      text,
			WordCount: len(domain.Tokenize(text)),
		}
	}
	attach := func(name string, m map[domain.VerseKey]string, set func(*domain.VerseRecord, string)) {
		skipped := 0
		for key, text := range m {
			if r, ok := records[key]; ok {
				set(r, text)
			} else {
				skipped++
			}
		}
		if skipped > 0 {
			logger.Warn("%s: skipped %s entries for unknown verses", name, logger.Count(skipped))
		}
	}
	attach("translations", p.translations, func(r *domain.VerseRecord, s string) { r.Translation = s })
	attach("transliterations", p.transliterations, func(r *domain.VerseRecord, s string) { r.Transliteration = s })

	return records, sortedKeys(records)
}
