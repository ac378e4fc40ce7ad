package domain

// VerseRecord is a verse joined with its optional translation data.
type VerseRecord struct {
	// Key identifies the verse.
	Key VerseKey `json:"verse_key"`

	// Text is the raw verse text.
	Text string `json:"text"`

	// Translation is empty when no translation table covers the verse.
	Translation string `json:"translation,omitempty"`

	// Transliteration is empty when no transliteration table covers the verse.
	Transliteration string `json:"transliteration,omitempty"`

	// WordCount is the token count of Text.
	WordCount int `json:"word_count"`
}

// SurahInfo describes a surah for header display.
type SurahInfo struct {
	Number          int    `json:"id"`
	NameSimple      string `json:"name_simple"`
	NameArabic      string `json:"name_arabic"`
	NameEnglish     string `json:"name_english,omitempty"`
	RevelationPlace string `json:"revelation_place,omitempty"`
	RevelationOrder int    `json:"revelation_order,omitempty"`
	VersesCount     int    `json:"verses_count,omitempty"`
	BismillahPre    bool   `json:"bismillah_pre"`
}
