// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// SimilarList displays similarity edges in a navigable list.
type SimilarList struct {
	source   domain.VerseKey
	edges    []domain.SimilarityEdge
	texts    map[domain.VerseKey]string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewSimilarList creates a new similar verses list.
func NewSimilarList(s *styles.Styles) *SimilarList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SimilarList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *SimilarList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *SimilarList) Update(msg tea.Msg) (*SimilarList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *SimilarList) View() string {
	if len(l.edges) == 0 {
		return l.styles.Muted.Render(fmt.Sprintf("No similar verses for %s", l.source))
	}

	lines := make([]string, 0, len(l.edges)+2)
	header := l.styles.Subtitle.Render(fmt.Sprintf("Similar to %s (%d)", l.source, len(l.edges)))
	lines = append(lines, header, "")

	// Each entry takes two lines.
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.edges) {
		end = len(l.edges)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderEdge(i, &l.edges[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *SimilarList) renderEdge(index int, e *domain.SimilarityEdge) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	row := fmt.Sprintf("%s%-8s %.2f  %2d words  %3.0f%%  %s",
		indicator, e.Target, e.Score, e.MatchedWords, e.Coverage*100, e.Direction)

	var title string
	if index == l.selected {
		title = l.styles.Selected.Render(row)
	} else {
		title = l.styles.Normal.Render(row)
	}

	preview := truncate(l.texts[e.Target], l.width-6)
	return title + "\n" + l.styles.Muted.Render("    "+preview)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if n < 20 {
		n = 20
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetEdges replaces the listed edges and resets the selection.
func (l *SimilarList) SetEdges(source domain.VerseKey, edges []domain.SimilarityEdge, texts map[domain.VerseKey]string) {
	l.source = source
	l.edges = edges
	l.texts = texts
	l.selected = 0
}

// Source returns the verse the list was built for.
func (l *SimilarList) Source() domain.VerseKey {
	return l.source
}

// Edges returns the listed edges.
func (l *SimilarList) Edges() []domain.SimilarityEdge {
	return l.edges
}

// Selected returns the index of the selected edge.
func (l *SimilarList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *SimilarList) SetSelected(index int) {
	if index >= 0 && index < len(l.edges) {
		l.selected = index
	}
}

// SelectedEdge returns the currently selected edge, or nil if none.
func (l *SimilarList) SelectedEdge() *domain.SimilarityEdge {
	if len(l.edges) == 0 || l.selected < 0 || l.selected >= len(l.edges) {
		return nil
	}
	return &l.edges[l.selected]
}

// MoveUp moves selection up.
func (l *SimilarList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *SimilarList) MoveDown() {
	if l.selected < len(l.edges)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *SimilarList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of edges.
func (l *SimilarList) Count() int {
	return len(l.edges)
}

// IsEmpty returns whether the list is empty.
func (l *SimilarList) IsEmpty() bool {
	return len(l.edges) == 0
}
