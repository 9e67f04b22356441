package game

import (
	"sync"

	"github.com/rewired-gh/dugout/internal/logger"
	"github.com/rewired-gh/dugout/internal/models"
)

// Ticket tags a fetch with the tracker state it was issued under. Results
// carrying an outdated ticket are dropped before they touch the session.
type Ticket struct {
	Epoch  uint64
	GamePk int
}

// Tracker guards the session and the selection with one mutex shared by the
// poller and the UI loop.
type Tracker struct {
	mu        sync.Mutex
	session   *Session
	selection Selection
	epoch     uint64
	gamePk    int // game requested by the user, 0 for none
}

// NewTracker creates a Tracker with an empty session
func NewTracker() *Tracker {
	return &Tracker{session: NewSession()}
}

// SwitchGame starts tracking another game. Outstanding tickets are invalidated
// and the session is emptied right away so no frame shows the old game.
func (t *Tracker) SwitchGame(gamePk int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gamePk == t.gamePk {
		return
	}
	t.epoch++
	t.gamePk = gamePk
	t.session.Reset()
	t.selection.GoLive()
	logger.Debug("Switched to game %d (epoch %d)", gamePk, t.epoch)
}

// Begin returns the ticket for a fetch about to be issued.
func (t *Tracker) Begin() Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Ticket{Epoch: t.epoch, GamePk: t.gamePk}
}

func (t *Tracker) stale(tk Ticket) bool {
	return tk.Epoch != t.epoch || tk.GamePk != t.gamePk
}

// ApplyFeed folds a fetched feed into the session. It returns false when the
// ticket is stale or the feed is not for the ticket's game (including an empty
// body without a game pk), and the feed was discarded.
func (t *Tracker) ApplyFeed(tk Ticket, feed *models.GameFeed) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stale(tk) {
		logger.Debug("Discarding feed for game %d from epoch %d (current game %d, epoch %d)",
			tk.GamePk, tk.Epoch, t.gamePk, t.epoch)
		return false
	}
	if feed == nil || feed.GamePk != tk.GamePk {
		logger.Debug("Discarding feed without data for game %d", tk.GamePk)
		return false
	}
	if t.session.Update(feed) {
		t.selection.GoLive()
	}
	return true
}

// ApplyWinProbability replaces the win probability series. It returns false
// when the ticket is stale and the document was discarded.
func (t *Tracker) ApplyWinProbability(tk Ticket, doc []models.WinProbabilityAtBat) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stale(tk) {
		logger.Debug("Discarding win probability for game %d from epoch %d", tk.GamePk, tk.Epoch)
		return false
	}
	t.session.SetWinProbability(doc)
	return true
}

// TakeScoringPlays returns scoring plays completed since the previous call.
// A stale ticket yields nothing.
func (t *Tracker) TakeScoringPlays(tk Ticket) (models.GameTeams, []models.AtBat) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stale(tk) {
		return models.GameTeams{}, nil
	}
	return t.session.Teams(), t.session.TakeScoringPlays()
}

// View runs fn with the session and selection locked. fn must not retain
// either past its return.
func (t *Tracker) View(fn func(s *Session, sel *Selection)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.session, &t.selection)
}

// Select pins the given at-bat.
func (t *Tracker) Select(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Select(index)
}

// GoLive returns to following the live at-bat.
func (t *Tracker) GoLive() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.GoLive()
}

// MovePrevious steps the pinned at-bat back by one.
func (t *Tracker) MovePrevious() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.MovePrevious(t.session.History(), t.session.CurrentIndex())
}

// MoveNext steps the pinned at-bat forward by one.
func (t *Tracker) MoveNext() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.MoveNext(t.session.History(), t.session.CurrentIndex())
}

// CurrentGameID returns the game being tracked, 0 for none.
func (t *Tracker) CurrentGameID() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gamePk
}

// IsFollowingLive reports whether the view follows the live at-bat.
func (t *Tracker) IsFollowingLive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selection.IsFollowingLive()
}

// SelectedAtBatSummary describes the at-bat in view.
func (t *Tracker) SelectedAtBatSummary() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.Summary(&t.selection)
}

// IsLive reports whether the tracked game is in progress.
func (t *Tracker) IsLive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.IsLive()
}
