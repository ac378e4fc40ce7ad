package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/index"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
	"github.com/custodia-labs/mushaf/internal/logger"
)

// ExportLayout copies the layout tables into dst. The tables pass the same
// checks a build applies (row shape, word ranges, page and line
// contiguity) before anything is written, so a failed export leaves dst
// untouched. Without a word table the word ranges are checked against
// verse token counts from the text source. Rows are written in source
// order.
func (s *CorpusService) ExportLayout(ctx context.Context, dst driven.LayoutSink) (domain.ExportResult, error) {
	if s.layout == nil {
		return domain.ExportResult{}, fmt.Errorf("export layout: %w: layout source not configured", domain.ErrNotImplemented)
	}
	if dst == nil {
		return domain.ExportResult{}, fmt.Errorf("export layout: %w: no destination", domain.ErrInvalidInput)
	}
	defer logger.Timed("export layout")()

	lineTable, wordTable, err := s.layout.LoadLayout(ctx)
	if err != nil {
		return domain.ExportResult{}, fmt.Errorf("load layout: %w", err)
	}
	lines, err := domain.ParseLineRows(withName(lineTable, "pages"))
	if err != nil {
		return domain.ExportResult{}, err
	}
	words, err := domain.ParseWordRows(withName(wordTable, "words"))
	if err != nil {
		return domain.ExportResult{}, err
	}

	if err := s.validateLayout(ctx, tableName(lineTable, "pages"), lines, words); err != nil {
		return domain.ExportResult{}, err
	}

	if err := dst.WriteLines(ctx, lines); err != nil {
		return domain.ExportResult{}, fmt.Errorf("write lines: %w", err)
	}
	if err := dst.WriteWords(ctx, words); err != nil {
		return domain.ExportResult{}, fmt.Errorf("write words: %w", err)
	}
	logger.Info("exported %s layout rows and %s word rows", logger.Count(len(lines)), logger.Count(len(words)))
	return domain.ExportResult{Lines: len(lines), Words: len(words)}, nil
}

// validateLayout builds the word index and pages exactly as Build does and
// discards them.
func (s *CorpusService) validateLayout(ctx context.Context, table string, lines []domain.AyahLineRow, words []domain.WordRow) error {
	p := &parsed{lines: lines, words: words}
	if len(words) == 0 {
		if s.text == nil {
			return fmt.Errorf("validate layout: %w: no word table and no verse text", domain.ErrNotImplemented)
		}
		verseTable, err := s.text.LoadVerses(ctx)
		if err != nil {
			return fmt.Errorf("load verses: %w", err)
		}
		if p.verses, err = domain.ParseTextTable("verses", verseTable); err != nil {
			return err
		}
	}

	wordIndex, err := buildWordIndex(p)
	if err != nil {
		return err
	}
	_, err = index.BuildPages(table, lines, wordIndex)
	return err
}
