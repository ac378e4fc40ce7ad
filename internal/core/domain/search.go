package domain

import (
	"fmt"
	"strings"
)

// SearchField selects the verse text a search matches against.
type SearchField string

const (
	// FieldText matches the verse text itself.
	FieldText SearchField = "text"

	// FieldTranslation matches the loaded translation.
	FieldTranslation SearchField = "translation"

	// FieldTransliteration matches the loaded transliteration.
	FieldTransliteration SearchField = "transliteration"
)

// SearchFields lists every searchable field.
var SearchFields = []SearchField{FieldText, FieldTranslation, FieldTransliteration}

// ParseSearchField accepts a field name. The empty string selects FieldText.
func ParseSearchField(s string) (SearchField, error) {
	switch f := SearchField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FieldText, nil
	case FieldText, FieldTranslation, FieldTransliteration:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown search field %q", ErrInvalidInput, s)
	}
}

// SearchQuery describes a verse search.
type SearchQuery struct {
	// Text is matched after normalisation: diacritics are removed, alef
	// variants folded and case ignored.
	Text string

	// Field selects the text searched. Empty means FieldText.
	Field SearchField

	// Surah restricts results to one surah. 0 searches all of them.
	Surah int

	// Fuzzy matches words within a small edit distance instead of
	// requiring the normalised query as a substring.
	Fuzzy bool

	// Limit truncates the result; NoLimit returns every hit.
	Limit int
}

// Validate checks the query shape. It does not look at the corpus.
func (q SearchQuery) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}
	if _, err := ParseSearchField(string(q.Field)); err != nil {
		return err
	}
	if q.Surah < 0 || q.Surah > MaxSurah {
		return fmt.Errorf("%w: surah %d out of range", ErrInvalidInput, q.Surah)
	}
	if q.Limit < NoLimit {
		return fmt.Errorf("%w: limit %d", ErrInvalidInput, q.Limit)
	}
	return nil
}

// SearchHit is one verse matching a search.
type SearchHit struct {
	Verse VerseRecord `json:"verse"`

	// Score is 1 for substring matches. Fuzzy matches score the mean
	// similarity of the query words that matched.
	Score float64 `json:"score"`
}
