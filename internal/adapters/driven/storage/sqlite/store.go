package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/mushaf/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.LayoutSource = (*Store)(nil)
	_ driven.LayoutSink   = (*Store)(nil)
)

// ErrReadOnly is returned by writes on a store opened with Open.
var ErrReadOnly = errors.New("layout database is read-only")

// Store reads and writes a page layout database.
type Store struct {
	db       *sql.DB
	path     string
	readOnly bool
}

// Open opens an existing layout database read-only.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open layout database: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err == nil {
		err = db.Ping()
		if err != nil {
			db.Close()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open layout database %s: %w", filepath.Base(path), err)
	}

	return &Store{db: db, path: path, readOnly: true}, nil
}

// Create opens or creates a writable layout database at path and applies
// the schema migrations.
func Create(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create layout directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("create layout database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

type migration struct {
	version int
	name    string
}

// pending lists the "NNN_name.up.sql" files above version, oldest first.
func pending(fsys fs.FS, version int) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}
	var out []migration
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var v int
		if _, err := fmt.Sscanf(name, "%d_", &v); err != nil || v <= version {
			continue
		}
		out = append(out, migration{version: v, name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// migrate applies pending migrations, each in its own transaction. Every
// migration records its own version in schema_migrations.
func (s *Store) migrate(fsys embed.FS) error {
	const ledger = `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.db.Exec(ledger); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	var version int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	todo, err := pending(fsys, version)
	if err != nil {
		return err
	}
	for _, m := range todo {
		script, err := fs.ReadFile(fsys, m.name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", m.name, err)
		}
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(script)); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("applying %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing %s: %w", m.name, err)
		}
	}
	return nil
}

// LoadLayout reads the pages table and the words table, which is empty
// when the database has none.
func (s *Store) LoadLayout(ctx context.Context) (lines, words domain.Table, err error) {
	if lines, err = s.LoadLines(ctx); err != nil {
		return domain.Table{}, domain.Table{}, err
	}
	if words, err = s.LoadWords(ctx); err != nil {
		return domain.Table{}, domain.Table{}, err
	}
	return lines, words, nil
}

// LoadLines reads the pages table with its own column names.
func (s *Store) LoadLines(ctx context.Context) (domain.Table, error) {
	t, err := s.loadTable(ctx, "pages")
	if err != nil {
		return domain.Table{}, fmt.Errorf("loading pages: %w", err)
	}
	return t, nil
}

// LoadWords reads the words table, or returns an empty table when the
// database has none.
func (s *Store) LoadWords(ctx context.Context) (domain.Table, error) {
	ok, err := s.hasTable(ctx, "words")
	if err != nil {
		return domain.Table{}, fmt.Errorf("loading words: %w", err)
	}
	if !ok {
		return domain.Table{Name: "words"}, nil
	}
	t, err := s.loadTable(ctx, "words")
	if err != nil {
		return domain.Table{}, fmt.Errorf("loading words: %w", err)
	}
	return t, nil
}

func (s *Store) hasTable(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// loadTable scans every row of name into loosely typed cells. The table
// name is one of the fixed names above, never user input.
func (s *Store) loadTable(ctx context.Context, name string) (domain.Table, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+name+" ORDER BY rowid")
	if err != nil {
		return domain.Table{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return domain.Table{}, err
	}
	t := domain.Table{Name: name, Columns: cols}
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return domain.Table{}, err
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, rows.Err()
}

// WriteLines replaces the pages table with rows.
func (s *Store) WriteLines(ctx context.Context, rows []domain.AyahLineRow) error {
	return s.replace(ctx, "pages", `
		INSERT INTO pages (page_number, line_number, line_type, is_centered,
			first_word_id, last_word_id, surah_number)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, len(rows), func(i int) []any {
		r := rows[i]
		var first, last, surah any
		if r.Type == domain.LineAyah {
			first, last = int64(r.Words.First), int64(r.Words.Last)
		}
		if r.Surah > 0 {
			surah = r.Surah
		}
		return []any{r.Page, r.Line, string(r.Type), boolToInt(r.Centered), first, last, surah}
	})
}

// WriteWords replaces the words table with rows.
func (s *Store) WriteWords(ctx context.Context, rows []domain.WordRow) error {
	return s.replace(ctx, "words", "INSERT INTO words (word_id, verse_key) VALUES (?, ?)",
		len(rows), func(i int) []any {
			return []any{int64(rows[i].ID), rows[i].Verse.String()}
		})
}

func (s *Store) replace(ctx context.Context, table, insert string, n int, args func(int) []any) error {
	if s.readOnly {
		return ErrReadOnly
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("saving %s row %d: %w", table, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
