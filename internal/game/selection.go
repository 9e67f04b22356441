package game

import (
	"slices"
)

// Selection records which at-bat the user is looking at. The zero value follows
// the live at-bat.
type Selection struct {
	selected *int
}

// Select pins the view to the given at-bat index.
func (s *Selection) Select(index int) {
	s.selected = &index
}

// GoLive clears the pinned at-bat.
func (s *Selection) GoLive() {
	s.selected = nil
}

// IsFollowingLive reports whether no at-bat is pinned.
func (s *Selection) IsFollowingLive() bool {
	return s.selected == nil
}

// Selected returns a copy of the pinned index, or nil when following live.
func (s *Selection) Selected() *int {
	if s.selected == nil {
		return nil
	}
	i := *s.selected
	return &i
}

// MovePrevious pins the at-bat before the one in view. From live the step
// starts at the current at-bat. At the first known at-bat it stays put.
func (s *Selection) MovePrevious(h *History, current int) {
	idx := h.SortedIndices()
	if len(idx) == 0 {
		return
	}
	from := s.anchor(idx, current)
	pos, _ := slices.BinarySearch(idx, from)
	if pos > 0 {
		pos--
	}
	s.Select(idx[pos])
}

// MoveNext pins the at-bat after the one in view. Following live it does
// nothing. At the last known at-bat it stays put.
func (s *Selection) MoveNext(h *History, current int) {
	if s.selected == nil {
		return
	}
	idx := h.SortedIndices()
	if len(idx) == 0 {
		s.selected = nil
		return
	}
	pos, found := slices.BinarySearch(idx, *s.selected)
	if found {
		pos++
	}
	if pos >= len(idx) {
		pos = len(idx) - 1
	}
	s.Select(idx[pos])
}

// anchor returns the index navigation starts from: the pinned at-bat, else the
// live one if it is known, else one past the newest known at-bat.
func (s *Selection) anchor(sorted []int, current int) int {
	if s.selected != nil {
		return *s.selected
	}
	if _, found := slices.BinarySearch(sorted, current); found {
		return current
	}
	return sorted[len(sorted)-1] + 1
}
