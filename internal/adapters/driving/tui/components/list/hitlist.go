package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// HitList displays search hits in a navigable list.
type HitList struct {
	query    string
	hits     []domain.SearchHit
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHitList creates a new search hit list.
func NewHitList(s *styles.Styles) *HitList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HitList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation messages.
func (l *HitList) Update(msg tea.Msg) (*HitList, tea.Cmd) {
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
func (l *HitList) View() string {
	if l.query == "" {
		return ""
	}
	if len(l.hits) == 0 {
		return l.styles.Muted.Render(fmt.Sprintf("No verses match %q", l.query))
	}

	lines := make([]string, 0, len(l.hits)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("%d verses", len(l.hits))), "")

	visibleCount := max((l.height-4)/2, 1)
	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(l.hits))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderHit(i, &l.hits[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *HitList) renderHit(index int, h *domain.SearchHit) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	row := fmt.Sprintf("%s%-8s %.2f", indicator, h.Verse.Key, h.Score)
	var title string
	if index == l.selected {
		title = l.styles.Selected.Render(row)
	} else {
		title = l.styles.Normal.Render(row)
	}

	preview := h.Verse.Text
	if h.Verse.Translation != "" {
		preview += "  " + h.Verse.Translation
	}
	return title + "\n" + l.styles.Muted.Render("    "+truncate(preview, l.width-6))
}

// SetHits replaces the listed hits and resets the selection.
func (l *HitList) SetHits(query string, hits []domain.SearchHit) {
	l.query = query
	l.hits = hits
	l.selected = 0
}

// Hits returns the listed hits.
func (l *HitList) Hits() []domain.SearchHit {
	return l.hits
}

// Selected returns the index of the selected hit.
func (l *HitList) Selected() int {
	return l.selected
}

// SelectedHit returns the currently selected hit, or nil if none.
func (l *HitList) SelectedHit() *domain.SearchHit {
	if l.selected < 0 || l.selected >= len(l.hits) {
		return nil
	}
	return &l.hits[l.selected]
}

// MoveUp moves selection up.
func (l *HitList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *HitList) MoveDown() {
	if l.selected < len(l.hits)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *HitList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}
