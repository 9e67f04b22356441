package models

import (
	"errors"
	"time"
)

// EventKind classifies an entry of an at-bat's event list.
type EventKind int

const (
	// EventOther covers pickoff attempts, mound visits, substitutions and the like.
	EventOther EventKind = iota
	// EventPitch is a pitch thrown to the batter.
	EventPitch
	// EventRunning is a baserunning play such as a stolen base or wild pitch advance.
	EventRunning
)

// String returns a short name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventPitch:
		return "pitch"
	case EventRunning:
		return "running"
	default:
		return "other"
	}
}

// PlayEvent is a normalized event within an at-bat.
type PlayEvent struct {
	Kind        EventKind `json:"kind"`
	Description string    `json:"description"`
	CallCode    string    `json:"call_code,omitempty"` // "B", "S", "X", ...
	PitchType   string    `json:"pitch_type,omitempty"`
	PitchNumber int       `json:"pitch_number,omitempty"`
	Speed       float64   `json:"speed,omitempty"`
	Count       Count     `json:"count"`
	IsInPlay    bool      `json:"is_in_play,omitempty"`
}

// Matchup is the batter/pitcher snapshot of an at-bat.
type Matchup struct {
	BatterID  int    `json:"batter_id"`
	Batter    string `json:"batter"`
	BatSide   string `json:"bat_side"`
	PitcherID int    `json:"pitcher_id"`
	Pitcher   string `json:"pitcher"`
	PitchHand string `json:"pitch_hand"`
	OnFirst   bool   `json:"on_first"`
	OnSecond  bool   `json:"on_second"`
	OnThird   bool   `json:"on_third"`
}

// PlayResult is the normalized outcome of an at-bat.
type PlayResult struct {
	Event       string `json:"event,omitempty"`
	Description string `json:"description"`
	RBI         int    `json:"rbi"`
	AwayScore   int    `json:"away_score"`
	HomeScore   int    `json:"home_score"`
	Count       Count  `json:"count"`
	IsOut       bool   `json:"is_out"`
	IsScoring   bool   `json:"is_scoring"`
	IsComplete  bool   `json:"is_complete"`
}

// AtBat is one plate appearance, keyed by the upstream at-bat index.
type AtBat struct {
	Index       int         `json:"index"`
	Inning      int         `json:"inning"`
	IsTopInning bool        `json:"is_top_inning"`
	Events      []PlayEvent `json:"events"`
	Matchup     Matchup     `json:"matchup"`
	Result      PlayResult  `json:"result"`
}

// Pitches counts the pitch events of the at-bat.
func (a *AtBat) Pitches() int {
	n := 0
	for _, e := range a.Events {
		if e.Kind == EventPitch {
			n++
		}
	}
	return n
}

// HalfLabel returns "Top" or "Bot" for the at-bat's half inning.
func (a *AtBat) HalfLabel() string {
	if a.IsTopInning {
		return "Top"
	}
	return "Bot"
}

// ScoringAlert is a scoring play queued for notification.
type ScoringAlert struct {
	ID         string    `json:"id"`
	GamePk     int       `json:"game_pk"`
	AtBatIndex int       `json:"at_bat_index"`
	Inning     int       `json:"inning"`
	IsTop      bool      `json:"is_top"`
	AwayTeam   string    `json:"away_team"`
	HomeTeam   string    `json:"home_team"`
	AwayScore  int       `json:"away_score"`
	HomeScore  int       `json:"home_score"`
	RBI        int       `json:"rbi"`
	Event      string    `json:"event"`
	Summary    string    `json:"summary"`
	DetectedAt time.Time `json:"detected_at"`
}

// Validate checks that all alert fields are valid
func (a *ScoringAlert) Validate() error {
	if a.ID == "" {
		return errors.New("alert ID must not be empty")
	}
	if a.GamePk <= 0 {
		return errors.New("game pk must be positive")
	}
	if a.AtBatIndex < 0 {
		return errors.New("at-bat index must not be negative")
	}
	if a.AwayScore < 0 || a.HomeScore < 0 {
		return errors.New("scores must not be negative")
	}
	if a.Summary == "" {
		return errors.New("summary must not be empty")
	}
	if a.DetectedAt.After(time.Now()) {
		return errors.New("detected at must not be in the future")
	}
	return nil
}
