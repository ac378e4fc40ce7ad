// Package domain defines the core entities of the corpus query engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - VerseKey and WordID: verse and word identity
//   - Table: a loosely typed input table, parsed once by ParseLineRows
//     and ParseWordRows
//   - Page, PageLine, RenderedPage: the built and the read-time page views
//   - VerseRecord: a verse joined with translation data
//   - SimilarityEdge: a merged relation between two verses
//   - BuildError and QueryError: the error taxonomy
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
