// Package game aggregates the live game feed into an indexed at-bat history.
//
// A Session owns one game's state: its at-bat history, line score, box score
// and win probability series. Every poll's feed is folded into the session with
// Update, which resets the whole session when the feed belongs to a different
// game. A Selection tracks whether the user follows the live at-bat or has
// scrolled back to an earlier one. Tracker guards both behind a single mutex
// shared by the poller and the UI loop.
//
// Nothing in this package returns an error. Missing feed data is replaced by
// zero values, empty strings and empty collections.
package game

import (
	"github.com/rewired-gh/dugout/internal/models"
)

// Reconstruct converts one play of the feed into a normalized at-bat entry.
func Reconstruct(p models.Play) models.AtBat {
	m := p.Matchup
	ab := models.AtBat{
		Index:       p.About.AtBatIndex,
		Inning:      p.About.Inning,
		IsTopInning: p.About.IsTopInning,
		Matchup: models.Matchup{
			BatterID:  m.Batter.ID,
			Batter:    m.Batter.FullName,
			BatSide:   m.BatSide.Code,
			PitcherID: m.Pitcher.ID,
			Pitcher:   m.Pitcher.FullName,
			PitchHand: m.PitchHand.Code,
			OnFirst:   m.PostOnFirst != nil,
			OnSecond:  m.PostOnSecond != nil,
			OnThird:   m.PostOnThird != nil,
		},
		Result: models.PlayResult{
			Event:       valueOr(p.Result.Event, ""),
			Description: valueOr(p.Result.Description, ""),
			RBI:         valueOr(p.Result.RBI, 0),
			AwayScore:   valueOr(p.Result.AwayScore, 0),
			HomeScore:   valueOr(p.Result.HomeScore, 0),
			Count:       p.Count,
			IsOut:       valueOr(p.Result.IsOut, false),
			IsScoring:   valueOr(p.About.IsScoringPlay, false),
			IsComplete:  p.About.IsComplete,
		},
	}

	if len(p.PlayEvents) > 0 {
		ab.Events = make([]models.PlayEvent, 0, len(p.PlayEvents))
		for _, e := range p.PlayEvents {
			ab.Events = append(ab.Events, convertEvent(e))
		}
	}
	return ab
}

// Classify decides whether an event is a pitch, a baserunning play or neither.
// The pitch flag wins when both are set.
func Classify(e models.Event) models.EventKind {
	switch {
	case e.IsPitch:
		return models.EventPitch
	case valueOr(e.IsBaserunningPlay, false):
		return models.EventRunning
	default:
		return models.EventOther
	}
}

func convertEvent(e models.Event) models.PlayEvent {
	pe := models.PlayEvent{
		Kind:        Classify(e),
		Description: valueOr(e.Details.Description, ""),
		PitchNumber: valueOr(e.PitchNumber, 0),
		IsInPlay:    valueOr(e.Details.IsInPlay, false),
	}
	if e.Details.Call != nil {
		pe.CallCode = e.Details.Call.Code
	}
	if e.Details.Type != nil {
		pe.PitchType = e.Details.Type.Description
	}
	if e.Count != nil {
		pe.Count = *e.Count
	}
	if e.PitchData != nil {
		pe.Speed = valueOr(e.PitchData.StartSpeed, 0)
	}
	return pe
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
