package models

import (
	"errors"
	"time"
)

// Abstract game states reported in gameData.status and in the schedule.
const (
	StatePreview = "Preview"
	StateLive    = "Live"
	StateFinal   = "Final"
)

// Schedule is the response of the schedule endpoint.
type Schedule struct {
	TotalGames int            `json:"totalGames"`
	Dates      []ScheduleDate `json:"dates,omitempty"`
}

// ScheduleDate groups the games played on one day.
type ScheduleDate struct {
	Date  string          `json:"date"`
	Games []ScheduledGame `json:"games,omitempty"`
}

// ScheduledGame is one game listed in the schedule.
type ScheduledGame struct {
	GamePk   int            `json:"gamePk"`
	GameDate time.Time      `json:"gameDate"`
	Status   GameStatus     `json:"status"`
	Teams    ScheduledTeams `json:"teams"`
	Venue    *Venue         `json:"venue,omitempty"`
}

// ScheduledTeams pairs both sides of a scheduled game.
type ScheduledTeams struct {
	Away ScheduledTeam `json:"away"`
	Home ScheduledTeam `json:"home"`
}

// ScheduledTeam is one side of a scheduled game. Score is absent before the game starts.
type ScheduledTeam struct {
	Team            Team    `json:"team"`
	Score           *int    `json:"score,omitempty"`
	LeagueRecord    *Record `json:"leagueRecord,omitempty"`
	ProbablePitcher *Person `json:"probablePitcher,omitempty"`
}

// Record is a win/loss record.
type Record struct {
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Pct    string `json:"pct,omitempty"`
}

// Games flattens every date of the schedule into a single list.
func (s *Schedule) Games() []ScheduledGame {
	if s == nil {
		return nil
	}
	var games []ScheduledGame
	for _, d := range s.Dates {
		games = append(games, d.Games...)
	}
	return games
}

// Validate checks that a scheduled game can be tracked.
func (g *ScheduledGame) Validate() error {
	if g.GamePk <= 0 {
		return errors.New("game pk must be positive")
	}
	if g.Teams.Away.Team.ID == 0 || g.Teams.Home.Team.ID == 0 {
		return errors.New("both teams must be set")
	}
	if g.GameDate.IsZero() {
		return errors.New("game date must be set")
	}
	return nil
}

// IsLive reports whether the game is in progress.
func (g *ScheduledGame) IsLive() bool {
	return g.Status.AbstractGameState == StateLive
}
