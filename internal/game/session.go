package game

import (
	"fmt"
	"time"

	"github.com/rewired-gh/dugout/internal/models"
)

// Session holds the aggregated state of the one game being tracked.
type Session struct {
	gameID       int
	currentIndex int
	history      *History
	linescore    models.Linescore
	boxscore     models.Boxscore
	winProb      *WinProbability
	teams        models.GameTeams
	status       models.GameStatus
	updatedAt    time.Time

	// scoring plays already handed out by TakeScoringPlays
	alerted map[int]bool
	primed  bool
}

// NewSession creates an empty session that is not bound to any game yet
func NewSession() *Session {
	s := &Session{
		history: NewHistory(),
		winProb: NewWinProbability(),
	}
	s.Reset()
	return s
}

// Update folds one poll's feed into the session. A feed for a different game
// resets the session first; the return value reports whether that happened.
// A nil feed, or one without a game pk once a game is bound, is ignored.
func (s *Session) Update(feed *models.GameFeed) bool {
	if feed == nil || (feed.GamePk == 0 && s.gameID != 0) {
		return false
	}

	reset := false
	if feed.GamePk != s.gameID {
		s.Reset()
		reset = true
	}

	s.gameID = feed.GamePk
	s.currentIndex = feed.CurrentAtBatIndex()
	s.teams = feed.GameData.Teams
	s.status = feed.GameData.Status

	// Line score and box score are replaced wholesale on every poll
	s.linescore = models.Linescore{}
	if feed.LiveData.Linescore != nil {
		s.linescore = *feed.LiveData.Linescore
	}
	s.boxscore = models.Boxscore{}
	if feed.LiveData.Boxscore != nil {
		s.boxscore = *feed.LiveData.Boxscore
	}

	for _, p := range feed.AllPlays() {
		s.history.Upsert(Reconstruct(p))
	}
	s.updatedAt = time.Now()
	return reset
}

// Reset discards everything known about the current game.
func (s *Session) Reset() {
	s.gameID = 0
	s.currentIndex = 0
	s.history.Clear()
	s.linescore = models.Linescore{}
	s.boxscore = models.Boxscore{}
	s.winProb.Replace(nil)
	s.teams = models.GameTeams{}
	s.status = models.GameStatus{}
	s.updatedAt = time.Time{}
	s.alerted = make(map[int]bool)
	s.primed = false
}

// SetWinProbability replaces the win probability series with the given document.
func (s *Session) SetWinProbability(doc []models.WinProbabilityAtBat) {
	s.winProb.Replace(doc)
}

// GameID returns the id of the game the session holds, 0 when empty.
func (s *Session) GameID() int { return s.gameID }

// CurrentIndex returns the at-bat index of the live at-bat.
func (s *Session) CurrentIndex() int { return s.currentIndex }

// History returns the at-bat history.
func (s *Session) History() *History { return s.history }

// LineScore returns the latest line score.
func (s *Session) LineScore() models.Linescore { return s.linescore }

// BoxScore returns the latest box score.
func (s *Session) BoxScore() models.Boxscore { return s.boxscore }

// WinProbability returns the win probability series.
func (s *Session) WinProbability() *WinProbability { return s.winProb }

// Teams returns the away and home team references.
func (s *Session) Teams() models.GameTeams { return s.teams }

// Status returns the upstream game status.
func (s *Session) Status() models.GameStatus { return s.status }

// UpdatedAt returns the time of the last applied feed, zero when none.
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// IsLive reports whether the game is in progress.
func (s *Session) IsLive() bool {
	return s.status.AbstractGameState == models.StateLive
}

// Resolve returns the at-bat the selection points at, falling back to the live
// one, and whether the result is the live at-bat.
func (s *Session) Resolve(sel *Selection) (models.AtBat, bool) {
	return s.history.GetOrFallback(sel.Selected(), s.currentIndex)
}

// Summary describes the resolved at-bat in one line.
func (s *Session) Summary(sel *Selection) string {
	ab, live := s.Resolve(sel)
	if ab.Matchup.Batter == "" && ab.Matchup.Pitcher == "" {
		return "No at-bat yet"
	}

	mode := "live"
	if !live {
		mode = "history"
	}
	c := ab.Result.Count
	line := fmt.Sprintf("[%s] %s %d: %s vs %s, %d-%d, %d out",
		mode, ab.HalfLabel(), ab.Inning, ab.Matchup.Batter, ab.Matchup.Pitcher, c.Balls, c.Strikes, c.Outs)
	if ab.Result.Event != "" {
		line += " - " + ab.Result.Event
	}
	return line
}

// TakeScoringPlays returns completed scoring at-bats not returned before. The
// first call after a feed has been applied only records what is already in the
// history, so joining a game in progress does not replay its earlier runs.
func (s *Session) TakeScoringPlays() []models.AtBat {
	var fresh []models.AtBat
	for _, ab := range s.history.Entries() {
		if !ab.Result.IsScoring || !ab.Result.IsComplete || s.alerted[ab.Index] {
			continue
		}
		s.alerted[ab.Index] = true
		if s.primed {
			fresh = append(fresh, ab)
		}
	}
	if s.gameID != 0 {
		s.primed = true
	}
	return fresh
}
