// Package messages defines Bubbletea message types for the page reader.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// PageRequested asks the app to load a page.
type PageRequested struct {
	Page int

	// Verse, when set, is selected once the page is shown.
	Verse domain.VerseKey
}

// PageLoaded carries a rendered page back to the model.
type PageLoaded struct {
	Page  *domain.RenderedPage
	Total int
	Verse domain.VerseKey
	Err   error
}

// SimilarRequested asks the app to list verses similar to Verse.
type SimilarRequested struct {
	Verse domain.VerseKey
}

// SimilarLoaded carries similarity results back to the model.
type SimilarLoaded struct {
	Verse domain.VerseKey
	Edges []domain.SimilarityEdge

	// Texts maps target verse keys to their text for previews.
	Texts map[domain.VerseKey]string
	Err   error
}

// SearchRequested asks the app to open the search view.
type SearchRequested struct{}

// SearchLoaded carries search hits back to the model.
type SearchLoaded struct {
	Query domain.SearchQuery
	Hits  []domain.SearchHit
	Err   error
}

// GoToSubmitted is sent when the go-to prompt is confirmed.
type GoToSubmitted struct {
	Input string
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewReader shows one page.
	ViewReader ViewType = iota
	// ViewSimilar lists similar verses.
	ViewSimilar
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSearch searches verse text.
	ViewSearch
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewReader:
		return "reader"
	case ViewSimilar:
		return "similar"
	case ViewHelp:
		return "help"
	case ViewSearch:
		return "search"
	default:
		return "unknown"
	}
}

// ErrorOccurred is sent when an error occurs.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
