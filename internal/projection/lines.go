package projection

import (
	"fmt"
	"iter"
	"strings"

	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/models"
)

// ScoringMarker prefixes play-by-play lines of scoring plays.
const ScoringMarker = "* "

// AtBatLines yields the display lines of the at-bat in view: the result first
// once there is one, then its events most recent first.
//
// The sequence reads a copy of the at-bat taken when AtBatLines is called, so
// it stays valid after the tracker lock is released.
func AtBatLines(s *game.Session, sel *game.Selection) iter.Seq[string] {
	ab, _ := s.Resolve(sel)
	return func(yield func(string) bool) {
		if ab.Result.Description != "" {
			if !yield(ab.Result.Description) {
				return
			}
		}
		for i := len(ab.Events) - 1; i >= 0; i-- {
			if !yield(eventLine(ab.Events[i])) {
				return
			}
		}
	}
}

func eventLine(e models.PlayEvent) string {
	desc := e.Description
	if desc == "" {
		desc = e.Kind.String()
	}
	if e.Kind != models.EventPitch {
		return desc
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%2d  %s", e.PitchNumber, desc)
	if e.PitchType != "" {
		b.WriteString("  " + e.PitchType)
	}
	if e.Speed > 0 {
		fmt.Fprintf(&b, "  %.1f mph", e.Speed)
	}
	fmt.Fprintf(&b, "  (%d-%d)", e.Count.Balls, e.Count.Strikes)
	return b.String()
}

// PlayByPlay yields one line per completed at-bat, most recent first. Lines of
// scoring plays start with ScoringMarker and carry the score after the play.
func PlayByPlay(s *game.Session) iter.Seq[string] {
	plays := s.History().MostRecentFirst()
	return func(yield func(string) bool) {
		for _, ab := range plays {
			if !ab.Result.IsComplete {
				continue
			}
			if !yield(playLine(ab)) {
				return
			}
		}
	}
}

func playLine(ab models.AtBat) string {
	desc := ab.Result.Description
	if desc == "" {
		desc = ab.Result.Event
	}
	line := fmt.Sprintf("%s %d  %s", ab.HalfLabel(), ab.Inning, desc)
	if ab.Result.IsScoring {
		line = ScoringMarker + line + fmt.Sprintf(" (%d-%d)", ab.Result.AwayScore, ab.Result.HomeScore)
	}
	return line
}
