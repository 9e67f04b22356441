package game

import (
	"github.com/rewired-gh/dugout/internal/models"
)

// WinProbability is the ordered series of win probability samples keyed by
// at-bat index. It is never empty: with no data it holds a single neutral sample.
type WinProbability struct {
	samples  []models.WinProbabilitySample
	position map[int]int
}

// NewWinProbability creates a series holding only the neutral sample
func NewWinProbability() *WinProbability {
	w := &WinProbability{}
	w.Replace(nil)
	return w
}

// Replace swaps the whole series for the given document, keeping its order.
// A later element with a repeated at-bat index overwrites the earlier one.
func (w *WinProbability) Replace(doc []models.WinProbabilityAtBat) {
	w.samples = make([]models.WinProbabilitySample, 0, max(len(doc), 1))
	w.position = make(map[int]int, len(doc))
	for _, wp := range doc {
		s := models.SampleFrom(wp)
		if pos, ok := w.position[s.AtBatIndex]; ok {
			w.samples[pos] = s
			continue
		}
		w.position[s.AtBatIndex] = len(w.samples)
		w.samples = append(w.samples, s)
	}
	if len(w.samples) == 0 {
		w.samples = append(w.samples, models.NeutralSample)
		w.position[models.NeutralSample.AtBatIndex] = 0
	}
}

// Samples returns the series in order. The slice must not be modified.
func (w *WinProbability) Samples() []models.WinProbabilitySample {
	return w.samples
}

// Len returns the number of samples, always at least one.
func (w *WinProbability) Len() int {
	return len(w.samples)
}

// Get returns the sample recorded after the given at-bat.
func (w *WinProbability) Get(index int) (models.WinProbabilitySample, bool) {
	pos, ok := w.position[index]
	if !ok {
		return models.WinProbabilitySample{}, false
	}
	return w.samples[pos], true
}

// Position returns the offset of an at-bat index within Samples, or -1.
func (w *WinProbability) Position(index int) int {
	if pos, ok := w.position[index]; ok {
		return pos
	}
	return -1
}

// Latest returns the last sample of the series.
func (w *WinProbability) Latest() models.WinProbabilitySample {
	return w.samples[len(w.samples)-1]
}
