// Package index builds the read-only indices a corpus snapshot is made of.
//
//   - WordIndex: global word id to owning verse, by binary search over
//     sorted range breakpoints
//   - BuildPages: contiguous pages of typed lines, validated against the
//     word index
//   - SimilarityIndex: forward and reverse match records merged into one
//     score-ordered list per verse
//   - PageMap: page to verse membership as roaring bitmaps
//
// Everything here is built once and never mutated afterwards, so the
// values are safe for concurrent readers.
//
// # Import Rules
//
//   - Can Import: domain, standard library, bitmap library
//   - Cannot Import: ports, services, adapters
package index
