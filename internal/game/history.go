package game

import (
	"slices"

	"github.com/rewired-gh/dugout/internal/models"
)

// emptyAtBat is returned whenever a lookup has nothing better to offer.
var emptyAtBat = models.AtBat{}

// History is an insertion-ordered mapping from at-bat index to at-bat entry.
// An entry keeps the position it was first seen at, however often it is
// overwritten afterwards.
type History struct {
	entries  []models.AtBat
	position map[int]int // at-bat index -> offset into entries
}

// NewHistory creates an empty History
func NewHistory() *History {
	return &History{position: make(map[int]int)}
}

// Upsert inserts the entry, or overwrites the entry with the same index in place.
func (h *History) Upsert(ab models.AtBat) {
	if pos, ok := h.position[ab.Index]; ok {
		h.entries[pos] = ab
		return
	}
	h.position[ab.Index] = len(h.entries)
	h.entries = append(h.entries, ab)
}

// Get returns the entry for index, if one has been seen.
func (h *History) Get(index int) (models.AtBat, bool) {
	pos, ok := h.position[index]
	if !ok {
		return models.AtBat{}, false
	}
	return h.entries[pos], true
}

// LatestOrDefault returns the entry at current, or an empty entry when the feed
// pointed at an index that has not been populated yet.
func (h *History) LatestOrDefault(current int) models.AtBat {
	if ab, ok := h.Get(current); ok {
		return ab
	}
	return emptyAtBat
}

// GetOrFallback resolves an optional selected index. A nil selection means
// current. When the resolved index is unknown the result falls back to
// LatestOrDefault(current). The boolean reports whether the at-bat returned is
// the live one.
func (h *History) GetOrFallback(selected *int, current int) (models.AtBat, bool) {
	index := current
	if selected != nil {
		index = *selected
	}
	if ab, ok := h.Get(index); ok {
		return ab, index == current
	}
	return h.LatestOrDefault(current), true
}

// CountEvents returns the number of events across all at-bats plus one per at-bat.
func (h *History) CountEvents() int {
	n := 0
	for _, ab := range h.entries {
		n += len(ab.Events) + 1
	}
	return n
}

// Len returns the number of at-bats seen.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns the at-bats in first-seen order. The slice must not be modified.
func (h *History) Entries() []models.AtBat {
	return h.entries
}

// MostRecentFirst returns the at-bats in reverse first-seen order.
func (h *History) MostRecentFirst() []models.AtBat {
	out := slices.Clone(h.entries)
	slices.Reverse(out)
	return out
}

// SortedIndices returns every known at-bat index in ascending order.
func (h *History) SortedIndices() []int {
	idx := make([]int, 0, len(h.entries))
	for _, ab := range h.entries {
		idx = append(idx, ab.Index)
	}
	slices.Sort(idx)
	return idx
}

// Clear drops every entry.
func (h *History) Clear() {
	h.entries = nil
	h.position = make(map[int]int)
}
