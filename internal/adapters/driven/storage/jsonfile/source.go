package jsonfile

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/custodia-labs/mushaf/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
)

// Ensure Source implements the source interfaces.
var (
	_ driven.LayoutSource  = (*Source)(nil)
	_ driven.TextSource    = (*Source)(nil)
	_ driven.MatchSource   = (*Source)(nil)
	_ driven.Fingerprinter = (*Source)(nil)
)

// ErrNotConfigured is returned when a required corpus file has no path.
var ErrNotConfigured = errors.New("corpus file not configured")

// Source loads corpus tables from the files named by CorpusSettings.
// Every load reads its file afresh.
type Source struct {
	settings domain.CorpusSettings
}

// New creates a source over the configured corpus files.
func New(settings domain.CorpusSettings) *Source {
	return &Source{settings: settings}
}

// Settings returns the corpus settings the source reads from.
func (s *Source) Settings() domain.CorpusSettings {
	return s.settings
}

// isDatabase reports whether the layout is a SQLite database rather than
// a JSON export of one.
func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

// withDatabase opens the layout database read-only for fn. A compressed
// database is first expanded into a temporary file.
func withDatabase(path string, fn func(*sqlite.Store) error) error {
	dbPath := path
	if baseName(path) != path {
		tmp, err := expand(path)
		if err != nil {
			return fmt.Errorf("reading layout: %w", err)
		}
		defer os.Remove(tmp)
		dbPath = tmp
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func expand(path string) (string, error) {
	rc, err := open(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	f, err := os.CreateTemp("", "mushaf-layout-*.db")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// LoadLayout reads the pages table and the word table with one pass over
// the layout: a JSON export is decoded once and a compressed database is
// expanded once. A configured words file takes precedence over a words
// table inside the layout.
func (s *Source) LoadLayout(ctx context.Context) (lines, words domain.Table, err error) {
	path := s.settings.Path(s.settings.Layout)
	if path == "" {
		return domain.Table{}, domain.Table{}, fmt.Errorf("layout: %w", ErrNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return domain.Table{}, domain.Table{}, err
	}
	wordsPath := s.settings.Path(s.settings.Words)

	if isDatabase(baseName(path)) {
		err = withDatabase(path, func(store *sqlite.Store) error {
			var err error
			if lines, err = store.LoadLines(ctx); err != nil {
				return err
			}
			if wordsPath == "" {
				words, err = store.LoadWords(ctx)
			}
			return err
		})
	} else {
		lines, words, err = loadLayoutDump(path, wordsPath == "")
	}
	if err != nil {
		return domain.Table{}, domain.Table{}, err
	}

	if wordsPath != "" {
		if words, err = s.loadWordsFile(wordsPath); err != nil {
			return domain.Table{}, domain.Table{}, err
		}
	}
	if words.Name == "" {
		words.Name = "words"
	}
	return lines, words, nil
}

// loadLayoutDump decodes a JSON export of the layout database.
func loadLayoutDump(path string, withWords bool) (lines, words domain.Table, err error) {
	var d dump
	if err := decodeFile(path, &d); err != nil {
		return domain.Table{}, domain.Table{}, fmt.Errorf("reading layout: %w", err)
	}
	lines, ok, err := d.table("pages")
	if err != nil {
		return domain.Table{}, domain.Table{}, fmt.Errorf("reading layout: %w", err)
	}
	if !ok {
		return domain.Table{}, domain.Table{}, domain.NewBuildError(domain.ErrMalformedRow, "pages",
			"%s has no pages table", filepath.Base(path))
	}
	if !withWords {
		return lines, domain.Table{}, nil
	}
	words, _, err = d.table("words")
	if err != nil {
		return domain.Table{}, domain.Table{}, fmt.Errorf("reading layout: %w", err)
	}
	return lines, words, nil
}

// loadWordsFile accepts a dump with a words table or a list of word objects.
func (s *Source) loadWordsFile(path string) (domain.Table, error) {
	var doc any
	if err := decodeFile(path, &doc); err != nil {
		return domain.Table{}, fmt.Errorf("reading words: %w", err)
	}
	if obj, ok := doc.(map[string]any); ok {
		if _, isDump := obj["objects"]; isDump {
			raw, err := json.Marshal(obj)
			if err != nil {
				return domain.Table{}, err
			}
			var d dump
			if err := json.Unmarshal(raw, &d); err != nil {
				return domain.Table{}, fmt.Errorf("reading words: %w", err)
			}
			t, found, err := d.table("words")
			if err != nil || !found {
				return domain.Table{Name: "words"}, err
			}
			return t, nil
		}
	}
	list, err := objectList(doc, "words")
	if err != nil {
		return domain.Table{}, domain.NewBuildError(domain.ErrMalformedRow, "words", "%v", err)
	}
	return objectsTable("words", list), nil
}

// LoadVerses reads verse text from the verse metadata file.
func (s *Source) LoadVerses(ctx context.Context) (domain.TextTable, error) {
	path := s.settings.Path(s.settings.Verses)
	if path == "" {
		return nil, fmt.Errorf("verses: %w", ErrNotConfigured)
	}
	return loadText(ctx, "verses", path)
}

// LoadTranslations reads the configured translation, nil when none is set.
func (s *Source) LoadTranslations(ctx context.Context) (domain.TextTable, error) {
	return loadText(ctx, "translations", s.settings.Path(s.settings.Translation))
}

// LoadTransliterations reads the configured transliteration, nil when none
// is set.
func (s *Source) LoadTransliterations(ctx context.Context) (domain.TextTable, error) {
	return loadText(ctx, "transliterations", s.settings.Path(s.settings.Transliteration))
}

func loadText(ctx context.Context, name, path string) (domain.TextTable, error) {
	if path == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc any
	if err := decodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	t, err := textTable(doc)
	if err != nil {
		return nil, domain.NewBuildError(domain.ErrMalformedRow, name, "%v", err)
	}
	return t, nil
}

// LoadSurahs reads surah metadata, nil when no surah file is set.
func (s *Source) LoadSurahs(ctx context.Context) ([]domain.SurahInfo, error) {
	path := s.settings.Path(s.settings.Surahs)
	if path == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc any
	if err := decodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("reading surahs: %w", err)
	}
	surahs, err := surahList(doc)
	if err != nil {
		return nil, domain.NewBuildError(domain.ErrMalformedRow, "surahs", "%v", err)
	}
	return surahs, nil
}

// LoadMatches reads the forward-only match table, nil when no match file
// is set.
func (s *Source) LoadMatches(ctx context.Context) (domain.MatchTable, error) {
	path := s.settings.Path(s.settings.Matches)
	if path == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("reading matches: %w", err)
	}
	defer rc.Close()

	var matches domain.MatchTable
	if err := json.NewDecoder(rc).Decode(&matches); err != nil {
		return nil, domain.NewBuildError(domain.ErrMalformedRow, "matches", "decoding %s: %v",
			filepath.Base(path), err)
	}
	return matches, nil
}

// Fingerprint hashes the name and content of every configured file with
// BLAKE3. Any byte change to any input changes the fingerprint.
func (s *Source) Fingerprint(ctx context.Context) (string, error) {
	h := blake3.New()
	for _, path := range s.settings.Files() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := hashFile(h, path); err != nil {
			return "", fmt.Errorf("fingerprinting %s: %w", filepath.Base(path), err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashFile(h *blake3.Hasher, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(h, "%s\x00", filepath.Base(path))
	_, err = io.Copy(h, f)
	return err
}
