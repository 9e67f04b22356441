package projection

import (
	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/models"
)

// MatchupView is the batter/pitcher box of the gameday panel.
type MatchupView struct {
	Batter    string
	BatSide   string
	Pitcher   string
	PitchHand string
	Count     models.Count
	Bases     [3]bool // first, second, third

	// OnDeck and InHole are empty unless the view is on the live at-bat.
	OnDeck string
	InHole string
	Live   bool
}

// Matchup describes the at-bat in view.
func Matchup(s *game.Session, sel *game.Selection) MatchupView {
	ab, live := s.Resolve(sel)
	m := ab.Matchup

	v := MatchupView{
		Batter:    nameOr(m.Batter),
		BatSide:   m.BatSide,
		Pitcher:   nameOr(m.Pitcher),
		PitchHand: m.PitchHand,
		Count:     ab.Result.Count,
		Bases:     [3]bool{m.OnFirst, m.OnSecond, m.OnThird},
		Live:      live,
	}

	if v.Live {
		if off := s.LineScore().Offense; off != nil {
			v.OnDeck = personName(off.OnDeck)
			v.InHole = personName(off.InHole)
		}
	}
	return v
}

func nameOr(name string) string {
	if name == "" {
		return Unknown
	}
	return name
}

func personName(p *models.Person) string {
	if p == nil {
		return ""
	}
	return nameOr(p.FullName)
}
