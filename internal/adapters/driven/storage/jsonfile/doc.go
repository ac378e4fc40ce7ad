// Package jsonfile loads the corpus from the JSON files it is published as.
//
// Source implements the layout, text and match sources plus a content
// fingerprint over the files named by domain.CorpusSettings:
//
//   - layout: a SQLite database (.db, .sqlite) or its JSON export with an
//     "objects" array holding a "pages" table and optionally a "words" table
//   - verses, translations, transliterations: verse-keyed text, either
//     plain strings or objects with a "text" field
//   - surahs: surah metadata as an array, keyed object or "chapters" wrapper
//   - matches: the forward-only matching-ayah table
//
// Any file may be compressed with zstd (.zst), gzip (.gz), xz (.xz) or
// lz4 frames (.lz4).
package jsonfile
