package projection

import (
	"fmt"
	"strconv"

	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/models"
)

var winProbabilityHeader = []string{"Inn", "AB", "Home", "Away", "+/-", "LI"}

// WinProbabilityWindow is the part of the win probability series that fits the
// panel. Rows are most recent first.
type WinProbabilityWindow struct {
	Header  []string
	Rows    [][]string
	Samples []models.WinProbabilitySample // parallel to Rows

	// Highlight is the row of the at-bat in view, or -1 when it is outside
	// the window or has no sample.
	Highlight int
}

// WinProbability selects up to height samples. Following live it shows the
// most recent samples. With a pinned at-bat the window is centered on it,
// except that pinning the most recent at-bat anchors the window at it.
func WinProbability(s *game.Session, sel *game.Selection, height int) WinProbabilityWindow {
	series := s.WinProbability().Samples()
	n := len(series)
	height = max(height, 1)

	focus := s.CurrentIndex()
	if p := sel.Selected(); p != nil {
		focus = *p
	}
	pos := s.WinProbability().Position(focus)

	var start int
	switch {
	case height >= n:
		start = 0
	case sel.IsFollowingLive() || pos < 0:
		start = n - height
	case pos == n-1:
		start = pos - height + 1
	default:
		start = pos - height/2
	}
	start = min(max(start, 0), max(n-height, 0))
	end := min(start+height, n)

	w := WinProbabilityWindow{Header: winProbabilityHeader, Highlight: -1}
	for i := end - 1; i >= start; i-- {
		if i == pos {
			w.Highlight = len(w.Rows)
		}
		w.Rows = append(w.Rows, winProbabilityRow(series[i]))
		w.Samples = append(w.Samples, series[i])
	}
	return w
}

func winProbabilityRow(smp models.WinProbabilitySample) []string {
	half := "B"
	if smp.IsTopInning {
		half = "T"
	}
	return []string{
		half + strconv.Itoa(smp.Inning),
		strconv.Itoa(smp.AtBatIndex),
		fmt.Sprintf("%.1f%%", smp.HomeWinPct),
		fmt.Sprintf("%.1f%%", smp.AwayWinPct),
		fmt.Sprintf("%+.1f", smp.HomeAddedPct),
		fmt.Sprintf("%.2f", smp.LeverageIndex),
	}
}
