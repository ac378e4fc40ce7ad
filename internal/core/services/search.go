package services

import (
	"sync"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/index"
	"github.com/custodia-labs/mushaf/internal/logger"
)

// fieldText selects the searchable text of a record.
var fieldText = map[domain.SearchField]func(*domain.VerseRecord) string{
	domain.FieldText:            func(r *domain.VerseRecord) string { return r.Text },
	domain.FieldTranslation:     func(r *domain.VerseRecord) string { return r.Translation },
	domain.FieldTransliteration: func(r *domain.VerseRecord) string { return r.Transliteration },
}

// buildTextIndexes indexes every searchable field, one goroutine per field.
// Document i of each index is order[i].
func buildTextIndexes(records map[domain.VerseKey]*domain.VerseRecord, order []domain.VerseKey) map[domain.SearchField]*index.TextIndex {
	defer logger.Timed("text indexes")()

	out := make(map[domain.SearchField]*index.TextIndex, len(fieldText))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for field, get := range fieldText {
		wg.Add(1)
		go func() {
			defer wg.Done()
			texts := make([]string, len(order))
			for i, key := range order {
				texts[i] = get(records[key])
			}
			idx := index.NewTextIndex(texts)
			logger.Debug("%s index: %s words", field, logger.Count(idx.Vocabulary()))

			mu.Lock()
			out[field] = idx
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

// SearchVerses returns the verses whose field matches q. Substring hits
// score 1 and keep canonical order; fuzzy hits come best first.
func (s *Snapshot) SearchVerses(q domain.SearchQuery) ([]domain.SearchHit, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	field, _ := domain.ParseSearchField(string(q.Field))
	idx, ok := s.text[field]
	if !ok || q.Limit == 0 {
		return []domain.SearchHit{}, nil
	}

	var scored []index.Scored
	if q.Fuzzy {
		scored = idx.Fuzzy(q.Text)
	} else {
		docs := idx.Contains(q.Text)
		scored = make([]index.Scored, len(docs))
		for i, d := range docs {
			scored[i] = index.Scored{Doc: d, Score: 1}
		}
	}

	capacity := len(scored)
	if q.Limit != domain.NoLimit {
		capacity = min(capacity, q.Limit)
	}
	hits := make([]domain.SearchHit, 0, capacity)
	for _, sc := range scored {
		key := s.order[sc.Doc]
		if q.Surah != 0 && key.Surah != q.Surah {
			continue
		}
		hits = append(hits, domain.SearchHit{Verse: *s.records[key], Score: sc.Score})
		if q.Limit != domain.NoLimit && len(hits) == q.Limit {
			break
		}
	}
	logger.Debug("search %s %q: %d hits", field, q.Text, len(hits))
	return hits, nil
}
