package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxSurah is the number of surahs in the corpus.
const MaxSurah = 114

// VerseKey identifies a verse by surah and ayah number.
// The zero value is not a valid key.
type VerseKey struct {
	// Surah is the chapter number (1..114).
	Surah int

	// Ayah is the verse number within the surah (>= 1).
	Ayah int
}

// NewVerseKey builds a key and validates its ranges.
func NewVerseKey(surah, ayah int) (VerseKey, error) {
	k := VerseKey{Surah: surah, Ayah: ayah}
	if !k.Valid() {
		return VerseKey{}, fmt.Errorf("%w: verse key %d:%d", ErrInvalidInput, surah, ayah)
	}
	return k, nil
}

// ParseVerseKey parses the canonical "surah:ayah" form.
func ParseVerseKey(s string) (VerseKey, error) {
	s = strings.TrimSpace(s)
	surahPart, ayahPart, ok := strings.Cut(s, ":")
	if !ok {
		return VerseKey{}, fmt.Errorf("%w: verse key %q", ErrInvalidInput, s)
	}
	surah, err := strconv.Atoi(surahPart)
	if err != nil {
		return VerseKey{}, fmt.Errorf("%w: verse key %q", ErrInvalidInput, s)
	}
	ayah, err := strconv.Atoi(ayahPart)
	if err != nil {
		return VerseKey{}, fmt.Errorf("%w: verse key %q", ErrInvalidInput, s)
	}
	return NewVerseKey(surah, ayah)
}

// MustParseVerseKey is ParseVerseKey for literals known to be valid.
func MustParseVerseKey(s string) VerseKey {
	k, err := ParseVerseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Valid reports whether the key is inside the corpus key space.
func (k VerseKey) Valid() bool {
	return k.Surah >= 1 && k.Surah <= MaxSurah && k.Ayah >= 1
}

// String returns the canonical "surah:ayah" form.
func (k VerseKey) String() string {
	return strconv.Itoa(k.Surah) + ":" + strconv.Itoa(k.Ayah)
}

// Compare orders keys by surah, then ayah.
func (k VerseKey) Compare(other VerseKey) int {
	switch {
	case k.Surah < other.Surah:
		return -1
	case k.Surah > other.Surah:
		return 1
	case k.Ayah < other.Ayah:
		return -1
	case k.Ayah > other.Ayah:
		return 1
	default:
		return 0
	}
}

// Less reports whether k sorts before other.
func (k VerseKey) Less(other VerseKey) bool {
	return k.Compare(other) < 0
}

// MarshalText implements encoding.TextMarshaler.
func (k VerseKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *VerseKey) UnmarshalText(b []byte) error {
	parsed, err := ParseVerseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
