package domain

// LineType classifies a physical line of a page.
type LineType string

// Line types used by the page layout table.
const (
	LineAyah      LineType = "ayah"
	LineSurahName LineType = "surah_name"
	LineBasmallah LineType = "basmallah"
)

// Valid reports whether t is a known line type.
func (t LineType) Valid() bool {
	switch t {
	case LineAyah, LineSurahName, LineBasmallah:
		return true
	default:
		return false
	}
}

// AyahLineRow is one validated row of the page layout table.
type AyahLineRow struct {
	// Page is the 1-based page number.
	Page int

	// Line is the 1-based line number within the page.
	Line int

	// Type classifies the line.
	Type LineType

	// Centered is true when the line is rendered centred.
	Centered bool

	// Words is the inclusive word range. Only meaningful for ayah lines.
	Words WordRange

	// Surah is the surah number, 0 when the source column was null.
	Surah int
}

// PageLine is a built line of a page. It holds no verse text.
type PageLine struct {
	// Number is the 1-based line number.
	Number int

	// Type classifies the line.
	Type LineType

	// Centered is true when the line is rendered centred.
	Centered bool

	// Words is the validated word range of an ayah line.
	Words WordRange

	// Verses are the verses the word range spans, in canonical order.
	Verses []VerseKey

	// Surah is the surah number of a header line.
	Surah int
}

// SurahHeader marks a surah title line on a page.
type SurahHeader struct {
	// Surah is the surah number.
	Surah int

	// Line is the line number the header occupies.
	Line int
}

// Page is an immutable, built layout page.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Lines are ordered by line number.
	Lines []PageLine

	// SurahHeaders lists the surah_name lines on the page.
	SurahHeaders []SurahHeader
}

// AyahLineCount returns the number of ayah lines on the page.
func (p *Page) AyahLineCount() int {
	n := 0
	for i := range p.Lines {
		if p.Lines[i].Type == LineAyah {
			n++
		}
	}
	return n
}

// RenderedLine is a page line with its text joined from verse records.
type RenderedLine struct {
	Number   int        `json:"line_number"`
	Type     LineType   `json:"line_type"`
	Centered bool       `json:"is_centered"`
	Text     string     `json:"text"`
	Words    *WordRange `json:"words,omitempty"`
	Verses   []VerseKey `json:"verse_keys,omitempty"`
	Surah    int        `json:"surah_number,omitempty"`
}

// RenderedSurahHeader is a surah header with display names attached.
type RenderedSurahHeader struct {
	Surah      int    `json:"surah_number"`
	Line       int    `json:"line_number"`
	NameSimple string `json:"name_simple"`
	NameArabic string `json:"name_arabic,omitempty"`
}

// RenderedPage is the read-time view of a page returned to callers.
type RenderedPage struct {
	Number       int                   `json:"page_number"`
	Lines        []RenderedLine        `json:"lines"`
	SurahHeaders []RenderedSurahHeader `json:"surah_headers"`
}

// Basmallah is the text of a basmallah line.
const Basmallah = "بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ"
