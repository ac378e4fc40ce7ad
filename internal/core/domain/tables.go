package domain

// Table is a loosely typed relational table handed over by a loader.
// Cell values are whatever the decoder produced (float64, int64, string,
// bool, json.Number or nil); ParseLineRows and ParseWordRows validate them.
type Table struct {
	// Name is the source table name, used in error messages.
	Name string

	// Columns names the cells of every row. Empty means positional.
	Columns []string

	// Rows are the table rows in source order.
	Rows [][]any
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// TextTable maps a verse key string to a text payload.
type TextTable map[string]string

// Tables is the full set of inputs for one snapshot build.
type Tables struct {
	// Lines is the page layout table. Required.
	Lines Table

	// Words optionally maps word ids to verses.
	Words Table

	// Verses maps verse keys to raw text.
	Verses TextTable

	// Translations maps verse keys to translated text.
	Translations TextTable

	// Transliterations maps verse keys to transliterated text.
	Transliterations TextTable

	// Matches is the forward-only similarity table.
	Matches MatchTable

	// Surahs provides display names for surah headers.
	Surahs []SurahInfo

	// Fingerprint identifies the input content, empty when unknown.
	Fingerprint string
}
