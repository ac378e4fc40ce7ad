package index

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// PageMap relates pages and the verses laid out on them. Verses are
// stored as WordIndex ordinals, so bitmap order is canonical verse order.
type PageMap struct {
	words   *WordIndex
	byPage  []*roaring.Bitmap
	byVerse map[uint32]*roaring.Bitmap
	placed  *roaring.Bitmap
}

// NewPageMap indexes the verses referenced by the ayah lines of pages.
func NewPageMap(pages []domain.Page, words *WordIndex) *PageMap {
	pm := &PageMap{
		words:   words,
		byPage:  make([]*roaring.Bitmap, len(pages)),
		byVerse: make(map[uint32]*roaring.Bitmap),
	}
	for i := range pages {
		bm := roaring.New()
		for _, line := range pages[i].Lines {
			for _, key := range line.Verses {
				ord, ok := words.Ordinal(key)
				if !ok {
					continue
				}
				bm.Add(uint32(ord))
				vp, ok := pm.byVerse[uint32(ord)]
				if !ok {
					vp = roaring.New()
					pm.byVerse[uint32(ord)] = vp
				}
				vp.Add(uint32(pages[i].Number))
			}
		}
		bm.RunOptimize()
		pm.byPage[i] = bm
	}
	pm.placed = roaring.FastOr(pm.byPage...)
	return pm
}

// FirstPage returns the first page showing key.
func (pm *PageMap) FirstPage(key domain.VerseKey) (int, bool) {
	ord, ok := pm.words.Ordinal(key)
	if !ok {
		return 0, false
	}
	bm, ok := pm.byVerse[uint32(ord)]
	if !ok || bm.IsEmpty() {
		return 0, false
	}
	return int(bm.Minimum()), true
}

// Pages returns every page showing key, ascending.
func (pm *PageMap) Pages(key domain.VerseKey) []int {
	ord, ok := pm.words.Ordinal(key)
	if !ok {
		return nil
	}
	bm, ok := pm.byVerse[uint32(ord)]
	if !ok {
		return nil
	}
	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// VersesOn returns the verses on page n in canonical order.
func (pm *PageMap) VersesOn(n int) ([]domain.VerseKey, bool) {
	if n < 1 || n > len(pm.byPage) {
		return nil, false
	}
	bm := pm.byPage[n-1]
	out := make([]domain.VerseKey, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, pm.words.VerseAt(int(it.Next())))
	}
	return out, true
}

// Placed returns how many distinct verses appear on some page.
func (pm *PageMap) Placed() int {
	return int(pm.placed.GetCardinality())
}
