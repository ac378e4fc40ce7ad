package index

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

type sourceRow struct {
	domain.AyahLineRow
	src int
}

// BuildPages groups layout rows into contiguous pages and validates every
// ayah line against words. Ayah ranges must strictly advance across the
// whole corpus in page, then line order.
func BuildPages(table string, rows []domain.AyahLineRow, words *WordIndex) ([]domain.Page, error) {
	byPage := make(map[int][]sourceRow)
	maxPage := 0
	for i, r := range rows {
		byPage[r.Page] = append(byPage[r.Page], sourceRow{AyahLineRow: r, src: i})
		maxPage = max(maxPage, r.Page)
	}
	for n := 1; n <= maxPage; n++ {
		if _, ok := byPage[n]; !ok {
			err := domain.NewBuildError(domain.ErrMissingPage, table, "page %d absent, pages run to %d", n, maxPage)
			err.Page = n
			return nil, err
		}
	}

	pages := make([]domain.Page, 0, maxPage)
	var prev *sourceRow
	for n := 1; n <= maxPage; n++ {
		lines := byPage[n]
		slices.SortStableFunc(lines, func(a, b sourceRow) int { return a.Line - b.Line })

		page := domain.Page{Number: n, Lines: make([]domain.PageLine, 0, len(lines))}
		for i := range lines {
			r := &lines[i]
			if r.Line != i+1 {
				return nil, lineError(table, r, i+1)
			}
			line := domain.PageLine{Number: r.Line, Type: r.Type, Centered: r.Centered, Surah: r.Surah}
			switch r.Type {
			case domain.LineAyah:
				verses, err := resolveLine(table, r, prev, words)
				if err != nil {
					return nil, err
				}
				line.Words = r.Words
				line.Verses = verses
				prev = r
			case domain.LineSurahName:
				page.SurahHeaders = append(page.SurahHeaders, domain.SurahHeader{Surah: r.Surah, Line: r.Line})
			}
			page.Lines = append(page.Lines, line)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func lineError(table string, r *sourceRow, want int) error {
	detail := fmt.Sprintf("line %d found where line %d was expected", r.Line, want)
	if r.Line < want {
		detail = fmt.Sprintf("line %d appears twice", r.Line)
	}
	return &domain.BuildError{Kind: domain.ErrMalformedRow, Table: table, Row: r.src, Page: r.Page, Detail: detail}
}

// resolveLine checks r against the previous ayah line and the word space
// and returns the verses the line spans.
func resolveLine(table string, r, prev *sourceRow, words *WordIndex) ([]domain.VerseKey, error) {
	fail := func(format string, args ...any) error {
		return &domain.BuildError{
			Kind: domain.ErrInconsistentWordRange, Table: table, Row: r.src, Page: r.Page,
			Detail: fmt.Sprintf(format, args...),
		}
	}
	if r.Words.First > r.Words.Last {
		return nil, fail("line %d has reversed word range %d-%d", r.Line, r.Words.First, r.Words.Last)
	}
	if prev != nil && r.Words.First <= prev.Words.Last {
		return nil, fail("line %d words %d-%d overlap page %d line %d words %d-%d",
			r.Line, r.Words.First, r.Words.Last, prev.Page, prev.Line, prev.Words.First, prev.Words.Last)
	}
	first, last, err := words.Span(r.Words)
	if err != nil {
		return nil, fail("line %d words %d-%d outside word space 1-%d", r.Line, r.Words.First, r.Words.Last, words.Total())
	}
	verses := make([]domain.VerseKey, 0, last-first+1)
	for i := first; i <= last; i++ {
		verses = append(verses, words.VerseAt(i))
	}
	return verses, nil
}
