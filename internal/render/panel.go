package render

import "github.com/rewired-gh/dugout/internal/projection"

// Kind identifies a dashboard panel.
type Kind int

const (
	KindGameday Kind = iota
	KindBoxScore
	KindWinProbability
	KindSchedule
)

// String returns the panel title.
func (k Kind) String() string {
	switch k {
	case KindGameday:
		return "Gameday"
	case KindBoxScore:
		return "Box Score"
	case KindWinProbability:
		return "Win Probability"
	case KindSchedule:
		return "Schedule"
	default:
		return "Unknown"
	}
}

// Panel is one tab of the dashboard. Exactly the state field matching Kind is
// set; the others are nil.
type Panel struct {
	Kind     Kind
	Gameday  *GamedayState
	BoxScore *BoxScoreState
	WinProb  *WinProbState
	Schedule *ScheduleState
}

// GamedayState configures the gameday panel.
type GamedayState struct {
	ShowPlayByPlay bool
}

// BoxScoreState remembers which team's box score is shown.
type BoxScoreState struct {
	Side projection.Side
}

// Toggle switches to the other team.
func (s *BoxScoreState) Toggle() {
	s.Side = s.Side.Other()
}

// WinProbState configures the win probability panel.
type WinProbState struct {
	ShowLeverage bool
}

// ScheduleState is the cursor of the schedule list.
type ScheduleState struct {
	Cursor int
}

// Move steps the cursor by delta over n entries, wrapping at both ends.
func (s *ScheduleState) Move(delta, n int) {
	if n <= 0 {
		s.Cursor = 0
		return
	}
	s.Cursor = ((s.Cursor+delta)%n + n) % n
}

// Clamp keeps the cursor inside a list of n entries after the list changed.
func (s *ScheduleState) Clamp(n int) {
	if s.Cursor >= n {
		s.Cursor = max(n-1, 0)
	}
}

// DefaultPanels returns the dashboard tabs in display order.
func DefaultPanels() []Panel {
	return []Panel{
		{Kind: KindGameday, Gameday: &GamedayState{ShowPlayByPlay: true}},
		{Kind: KindBoxScore, BoxScore: &BoxScoreState{Side: projection.Away}},
		{Kind: KindWinProbability, WinProb: &WinProbState{ShowLeverage: true}},
		{Kind: KindSchedule, Schedule: &ScheduleState{}},
	}
}
