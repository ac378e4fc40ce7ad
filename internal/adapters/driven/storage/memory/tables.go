package memory

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
)

// Ensure TableSource implements the source interfaces.
var (
	_ driven.LayoutSource  = (*TableSource)(nil)
	_ driven.TextSource    = (*TableSource)(nil)
	_ driven.MatchSource   = (*TableSource)(nil)
	_ driven.Fingerprinter = (*TableSource)(nil)
)

// TableSource serves corpus tables held in memory. Every Set bumps the
// fingerprint, so reloads after a Set always rebuild.
type TableSource struct {
	mu      sync.RWMutex
	tables  domain.Tables
	version int
	err     error
}

// NewTableSource creates a source serving tables.
func NewTableSource(tables domain.Tables) *TableSource {
	return &TableSource{tables: tables, version: 1}
}

// Set replaces the served tables.
func (s *TableSource) Set(tables domain.Tables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = tables
	s.version++
}

// FailWith makes every load return err until called with nil.
func (s *TableSource) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.version++
}

func (s *TableSource) snapshot(ctx context.Context) (domain.Tables, error) {
	if err := ctx.Err(); err != nil {
		return domain.Tables{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return domain.Tables{}, s.err
	}
	return s.tables, nil
}

// LoadLayout returns copies of the layout and word tables.
func (s *TableSource) LoadLayout(ctx context.Context) (lines, words domain.Table, err error) {
	t, err := s.snapshot(ctx)
	if err != nil {
		return domain.Table{}, domain.Table{}, err
	}
	return copyTable(t.Lines), copyTable(t.Words), nil
}

// LoadVerses returns a copy of the verse text table.
func (s *TableSource) LoadVerses(ctx context.Context) (domain.TextTable, error) {
	t, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return maps.Clone(t.Verses), nil
}

// LoadTranslations returns a copy of the translation table.
func (s *TableSource) LoadTranslations(ctx context.Context) (domain.TextTable, error) {
	t, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return maps.Clone(t.Translations), nil
}

// LoadTransliterations returns a copy of the transliteration table.
func (s *TableSource) LoadTransliterations(ctx context.Context) (domain.TextTable, error) {
	t, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return maps.Clone(t.Transliterations), nil
}

// LoadSurahs returns a copy of the surah list.
func (s *TableSource) LoadSurahs(ctx context.Context) ([]domain.SurahInfo, error) {
	t, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.Surahs), nil
}

// LoadMatches returns a copy of the match table.
func (s *TableSource) LoadMatches(ctx context.Context) (domain.MatchTable, error) {
	t, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make(domain.MatchTable, len(t.Matches))
	for k, v := range t.Matches {
		out[k] = slices.Clone(v)
	}
	return out, nil
}

// Fingerprint identifies the current table version.
func (s *TableSource) Fingerprint(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return "memory-" + strconv.Itoa(s.version), nil
}

func copyTable(t domain.Table) domain.Table {
	rows := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = slices.Clone(r)
	}
	return domain.Table{Name: t.Name, Columns: slices.Clone(t.Columns), Rows: rows}
}
