package domain

import "time"

// SnapshotInfo describes a published snapshot.
type SnapshotInfo struct {
	// ID is unique per build, even for identical inputs.
	ID string `json:"id"`

	// Fingerprint identifies the input content. Empty when the source
	// cannot fingerprint its tables.
	Fingerprint string `json:"fingerprint,omitempty"`

	// BuiltAt is when the build finished.
	BuiltAt time.Time `json:"built_at"`

	// BuildDuration is how long the build took.
	BuildDuration time.Duration `json:"build_duration"`
}

// CorpusStats summarises a snapshot.
type CorpusStats struct {
	Surahs             int `json:"surahs"`
	Verses             int `json:"verses"`
	Words              int `json:"words"`
	Pages              int `json:"pages"`
	Lines              int `json:"lines"`
	MatchRecords       int `json:"match_records"`
	SimilarPairs       int `json:"similar_pairs"`
	BidirectionalPairs int `json:"bidirectional_pairs"`
}

// ReloadResult reports the outcome of a reload attempt.
type ReloadResult struct {
	// Reloaded is false when the inputs were unchanged.
	Reloaded bool

	// Snapshot describes the snapshot serving after the attempt.
	Snapshot *SnapshotInfo
}

// ChangeEvent reports a change to an input file.
type ChangeEvent struct {
	Path string
	Op   string
}

// ExportResult counts the rows written by a layout export.
type ExportResult struct {
	Lines int `json:"lines"`
	Words int `json:"words"`
}
