package services

import (
	"github.com/custodia-labs/mushaf/internal/core/domain"
)

var pageColumns = []string{
	"page_number", "line_number", "line_type", "is_centered",
	"first_word_id", "last_word_id", "surah_number",
}

// sampleTables is a two page corpus. Page 1 holds three ayah lines with
// words 1-3, 4-6 and 7-9, one verse each. Page 2 opens surah 2.
func sampleTables() domain.Tables {
	return domain.Tables{
		Lines: domain.Table{
			Name:    "pages",
			Columns: pageColumns,
			Rows: [][]any{
				{float64(1), float64(1), "ayah", float64(0), float64(1), float64(3), nil},
				{float64(1), float64(2), "ayah", float64(0), float64(4), float64(6), nil},
				{float64(1), float64(3), "ayah", float64(0), float64(7), float64(9), nil},
				{float64(2), float64(1), "surah_name", float64(1), nil, nil, float64(2)},
				{float64(2), float64(2), "basmallah", float64(1), nil, nil, nil},
				{float64(2), float64(3), "ayah", float64(1), float64(10), float64(11), nil},
			},
		},
		Verses: domain.TextTable{
			"1:1": "w1 w2 w3",
			"1:2": "w4 w5 w6",
			"1:3": "w7 w8 w9",
			"2:1": "w10 w11",
		},
		Translations: domain.TextTable{
			"1:1": "first",
			"9:9": "orphan",
		},
		Transliterations: domain.TextTable{
			"1:2": "second",
		},
		Matches: domain.MatchTable{
			"1:1": {
				{MatchedKey: "27:30", Score: 0.9, MatchedWords: 3, Coverage: 0.6},
				{MatchedKey: "1:3", Score: 0.4, MatchedWords: 1, Coverage: 0.3},
			},
			"1:3": {{MatchedKey: "1:1", Score: 0.7, MatchedWords: 2, Coverage: 0.5}},
			"2:1": {{MatchedKey: "1:1", Score: 0.4, MatchedWords: 1, Coverage: 0.1}},
		},
		Surahs: []domain.SurahInfo{
			{Number: 1, NameSimple: "Al-Fatihah", NameArabic: "الفاتحة", VersesCount: 7},
		},
		Fingerprint: "fixture",
	}
}

// withPages returns sampleTables with the layout replaced by one ayah
// line per listed page.
func withPages(pages ...int) domain.Tables {
	t := sampleTables()
	rows := make([][]any, 0, len(pages))
	for i, p := range pages {
		w := float64(i + 1)
		rows = append(rows, []any{float64(p), float64(1), "ayah", false, w, w, nil})
	}
	t.Lines = domain.Table{Name: "pages", Columns: pageColumns, Rows: rows}
	return t
}
