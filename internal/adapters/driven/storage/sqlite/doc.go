// Package sqlite reads and writes page layout databases.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements driven.LayoutSource over
// the layout database the upstream corpus ships:
//
//   - pages: one row per physical line (page_number, line_number, line_type,
//     is_centered, first_word_id, last_word_id, surah_number)
//   - words: optional word_id to verse_key mapping
//
// Columns are read by name, so databases with extra columns load unchanged.
//
// # Schema
//
// Databases created with Create get their schema from the numbered
// NNN_name.up.sql scripts in migrations/, applied in order, each in one
// transaction that also records its version in schema_migrations.
//
// # Thread Safety
//
// All operations are thread-safe. Databases opened with Open are read-only.
package sqlite
