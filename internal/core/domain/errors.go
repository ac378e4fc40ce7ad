package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady indicates no snapshot has been published yet.
	ErrNotReady = errors.New("corpus not loaded")

	// ErrNotImplemented indicates a port is not wired.
	ErrNotImplemented = errors.New("not implemented")

	// Build Errors. A build error blocks publishing a snapshot.

	// ErrBuild is the family sentinel for every BuildError.
	ErrBuild = errors.New("build failed")

	// ErrInconsistentWordRange indicates overlapping, reversed or unknown word ids.
	ErrInconsistentWordRange = errors.New("inconsistent word range")

	// ErrMissingPage indicates a gap in page numbering.
	ErrMissingPage = errors.New("missing page")

	// ErrMalformedRow indicates a row with the wrong shape or cell types.
	ErrMalformedRow = errors.New("malformed row")

	// Query Errors. Returned per call, never fatal.

	// ErrQuery is the family sentinel for every QueryError.
	ErrQuery = errors.New("query failed")

	// ErrPageNotFound indicates a page number outside the corpus.
	ErrPageNotFound = errors.New("page not found")

	// ErrVerseNotFound indicates an unknown verse key.
	ErrVerseNotFound = errors.New("verse not found")

	// ErrOutOfRange indicates a word id outside the known word space.
	ErrOutOfRange = errors.New("word id out of range")

	// ErrSurahNotFound indicates an unknown surah number.
	ErrSurahNotFound = errors.New("surah not found")
)

// BuildError describes why a snapshot build was rejected.
// It matches both ErrBuild and its Kind with errors.Is.
type BuildError struct {
	// Kind is one of ErrInconsistentWordRange, ErrMissingPage, ErrMalformedRow.
	Kind error

	// Table names the input table, if known.
	Table string

	// Row is the 0-based row index, -1 when not row specific.
	Row int

	// Page is the page number involved, 0 when not page specific.
	Page int

	// Detail is a human readable explanation.
	Detail string
}

// NewBuildError creates a BuildError that is not tied to a row.
func NewBuildError(kind error, table, format string, args ...any) *BuildError {
	return &BuildError{Kind: kind, Table: table, Row: -1, Detail: fmt.Sprintf(format, args...)}
}

func (e *BuildError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Table != "" {
		b.WriteString(" in ")
		b.WriteString(e.Table)
	}
	if e.Row >= 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Page > 0 {
		fmt.Fprintf(&b, " page %d", e.Page)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap exposes the family and kind sentinels.
func (e *BuildError) Unwrap() []error {
	return []error{ErrBuild, e.Kind}
}

// QueryError describes a failed point query.
// It matches both ErrQuery and its Kind with errors.Is.
type QueryError struct {
	// Kind is one of ErrPageNotFound, ErrVerseNotFound, ErrOutOfRange, ErrSurahNotFound.
	Kind error

	// Subject is the queried value as text (page number, verse key, word id).
	Subject string
}

func (e *QueryError) Error() string {
	return e.Kind.Error() + ": " + e.Subject
}

// Unwrap exposes the family and kind sentinels.
func (e *QueryError) Unwrap() []error {
	return []error{ErrQuery, e.Kind}
}

// PageNotFound builds the query error for page n.
func PageNotFound(n int) error {
	return &QueryError{Kind: ErrPageNotFound, Subject: fmt.Sprintf("%d", n)}
}

// VerseNotFound builds the query error for key.
func VerseNotFound(key VerseKey) error {
	return &QueryError{Kind: ErrVerseNotFound, Subject: key.String()}
}

// OutOfRange builds the query error for word id.
func OutOfRange(id WordID) error {
	return &QueryError{Kind: ErrOutOfRange, Subject: fmt.Sprintf("%d", id)}
}
