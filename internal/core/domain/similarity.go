package domain

// NoLimit disables truncation of similarity results.
const NoLimit = -1

// Direction records which match records produced a similarity edge.
type Direction string

const (
	// DirectionDirect means the queried verse is the recorded source.
	DirectionDirect Direction = "direct"

	// DirectionReverse means the queried verse is only a recorded target.
	DirectionReverse Direction = "reverse"

	// DirectionBidirectional means both directions were recorded.
	DirectionBidirectional Direction = "bidirectional"
)

// MatchEntry is one forward record of the raw match table.
type MatchEntry struct {
	MatchedKey   string  `json:"matched_ayah_key"`
	Score        float64 `json:"score"`
	MatchedWords int     `json:"matched_words_count"`
	Coverage     float64 `json:"coverage"`
}

// MatchTable maps a source verse key string to its forward matches.
type MatchTable map[string][]MatchEntry

// SimilarityEdge is a merged view of the relation between two verses,
// oriented from the queried verse (Source) to the matched verse (Target).
type SimilarityEdge struct {
	Source       VerseKey  `json:"source"`
	Target       VerseKey  `json:"target"`
	Score        float64   `json:"score"`
	MatchedWords int       `json:"matched_words_count"`
	Coverage     float64   `json:"coverage"`
	Direction    Direction `json:"direction"`
}
