package domain

import (
	"path/filepath"
	"time"
)

// CorpusSettings names the input tables inside the data directory.
type CorpusSettings struct {
	// DataDir is the directory holding all table files.
	DataDir string

	// Layout is the page layout table (JSON dump, or a .db/.sqlite file).
	Layout string

	// Words is the optional word-to-verse table. Empty disables it.
	Words string

	// Verses is the verse text table.
	Verses string

	// Translation is the optional translation table.
	Translation string

	// Transliteration is the optional transliteration table.
	Transliteration string

	// Matches is the similarity match table.
	Matches string

	// Surahs is the surah metadata table.
	Surahs string
}

// Path resolves a table file name against DataDir. Empty names stay empty.
func (c CorpusSettings) Path(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Files returns the resolved paths of every configured table.
func (c CorpusSettings) Files() []string {
	names := []string{c.Layout, c.Words, c.Verses, c.Translation, c.Transliteration, c.Matches, c.Surahs}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if p := c.Path(n); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ReloadSettings controls snapshot reloading on data changes.
type ReloadSettings struct {
	// Watch enables reloading when input files change.
	Watch bool

	// MinInterval is the minimum time between two rebuilds.
	MinInterval time.Duration
}

// QuerySettings holds query defaults for driving adapters.
type QuerySettings struct {
	// SimilarLimit is the default result count for similarity queries.
	SimilarLimit int
}

// Settings holds all application settings.
type Settings struct {
	Corpus CorpusSettings
	Reload ReloadSettings
	Query  QuerySettings
}

// DefaultSettings returns settings matching the upstream file names.
func DefaultSettings() Settings {
	return Settings{
		Corpus: CorpusSettings{
			DataDir: "data",
			Layout:  "qpc-v2-15-lines.db.json",
			Verses:  "quran-metadata-ayah.json",
			Matches: "matching-ayah.json",
			Surahs:  "quran-metadata-surah-name.json",
		},
		Reload: ReloadSettings{
			Watch:       false,
			MinInterval: 2 * time.Second,
		},
		Query: QuerySettings{
			SimilarLimit: 10,
		},
	}
}
