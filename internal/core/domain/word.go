package domain

import "strings"

// WordID is the global, recitation-ordered identifier of a word token.
// The first word of 1:1 is 1.
type WordID uint32

// WordRange is an inclusive range of word ids.
type WordRange struct {
	First WordID `json:"first"`
	Last  WordID `json:"last"`
}

// Len returns the number of ids in the range.
func (r WordRange) Len() int {
	if r.Last < r.First {
		return 0
	}
	return int(r.Last-r.First) + 1
}

// Contains reports whether id falls inside the range.
func (r WordRange) Contains(id WordID) bool {
	return id >= r.First && id <= r.Last
}

// Tokenize splits raw verse text into the word tokens that word ids count.
func Tokenize(text string) []string {
	return strings.Fields(text)
}
