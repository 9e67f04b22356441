package game

import (
	"github.com/rewired-gh/dugout/internal/models"
)

func ptr[T any](v T) *T { return &v }

func play(index, inning int, top bool) models.Play {
	return models.Play{
		About: models.About{AtBatIndex: index, Inning: inning, IsTopInning: top},
		Matchup: models.PlayMatchup{
			Batter:    models.Person{ID: 100 + index, FullName: "Batter"},
			BatSide:   models.Side{Code: "R"},
			Pitcher:   models.Person{ID: 900, FullName: "Pitcher"},
			PitchHand: models.Side{Code: "L"},
		},
	}
}

func feedWith(gamePk int, current *int, plays ...models.Play) *models.GameFeed {
	f := &models.GameFeed{GamePk: gamePk}
	f.LiveData.Plays = &models.Plays{AllPlays: plays}
	if current != nil {
		cp := models.Play{About: models.About{AtBatIndex: *current}}
		f.LiveData.Plays.CurrentPlay = &cp
	}
	return f
}
