package index

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	alef      = '\u0627'
	alefWasla = '\u0671'
	tatweel   = '\u0640'
	smallWaw  = '\u06E5'
	smallYeh  = '\u06E6'
)

// isMark reports runes that searches ignore: combining marks (harakat,
// shadda, superscript alef, Latin accents after decomposition), tatweel
// and the small letters of Uthmani script.
func isMark(r rune) bool {
	switch r {
	case tatweel, smallWaw, smallYeh:
		return true
	}
	return unicode.Is(unicode.Mn, r)
}

// foldLetter maps alef wasla to a plain alef. The hamza and madda alef
// forms decompose to alef plus a mark and need no mapping.
func foldLetter(r rune) rune {
	if r == alefWasla {
		return alef
	}
	return r
}

func newFolder() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.Predicate(isMark)),
		runes.Map(foldLetter),
		norm.NFC,
		cases.Fold(),
	)
}

// Normalize folds s for matching: diacritics are removed, alef variants
// become a plain alef, case is folded and runs of whitespace collapse to
// one space. The result is safe to compare with strings.Contains.
func Normalize(s string) string {
	folded, _, err := transform.String(newFolder(), s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(folded), " ")
}
