// Package monitor turns freshly completed scoring plays into notification
// alerts and keeps the ones that could not be delivered yet.
//
// Each (game, at-bat) pair is alerted at most once for the life of the
// process. Undelivered alerts stay pending and are retried on the next poll;
// when more than maxPending pile up the oldest are dropped.
package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/dugout/internal/models"
)

// DefaultMaxPending bounds the undelivered alert queue.
const DefaultMaxPending = 20

// notifiedRecord tracks a previously sent alert for deduplication.
type notifiedRecord struct {
	AlertID string
	SentAt  time.Time
}

// Monitor handles scoring play detection and delivery bookkeeping
type Monitor struct {
	pending    []models.ScoringAlert
	queued     map[string]bool
	notified   map[string]notifiedRecord // delivered or dropped, key = alertKey(game, at-bat)
	maxPending int
}

// New creates a new Monitor instance
func New(maxPending int) *Monitor {
	if maxPending <= 0 {
		maxPending = DefaultMaxPending
	}
	return &Monitor{
		queued:     make(map[string]bool),
		notified:   make(map[string]notifiedRecord),
		maxPending: maxPending,
	}
}

// DetectionError represents a per-play error during alert detection
type DetectionError struct {
	AtBatIndex int
	Err        error
}

func (e DetectionError) Error() string {
	return fmt.Sprintf("detection error for at-bat %d: %v", e.AtBatIndex, e.Err)
}

func alertKey(gamePk, atBatIndex int) string {
	return fmt.Sprintf("%d:%d", gamePk, atBatIndex)
}

// DetectScoringPlays converts scoring plays into alerts and queues them. Plays
// already queued or notified are skipped. Returns the new alerts and per-play
// errors for plays that did not produce a valid alert.
func (m *Monitor) DetectScoringPlays(gamePk int, teams models.GameTeams, plays []models.AtBat, now time.Time) ([]models.ScoringAlert, []DetectionError) {
	var alerts []models.ScoringAlert
	var detectionErrors []DetectionError

	for _, ab := range plays {
		if !ab.Result.IsScoring {
			continue
		}
		key := alertKey(gamePk, ab.Index)
		if _, sent := m.notified[key]; sent || m.queued[key] {
			continue
		}

		alert := models.ScoringAlert{
			ID:         uuid.New().String(),
			GamePk:     gamePk,
			AtBatIndex: ab.Index,
			Inning:     ab.Inning,
			IsTop:      ab.IsTopInning,
			AwayTeam:   teamName(teams.Away),
			HomeTeam:   teamName(teams.Home),
			AwayScore:  ab.Result.AwayScore,
			HomeScore:  ab.Result.HomeScore,
			RBI:        ab.Result.RBI,
			Event:      ab.Result.Event,
			Summary:    strings.TrimSpace(ab.Result.Description),
			DetectedAt: now,
		}
		if alert.Summary == "" {
			alert.Summary = alert.Event
		}
		if err := alert.Validate(); err != nil {
			detectionErrors = append(detectionErrors, DetectionError{AtBatIndex: ab.Index, Err: err})
			continue
		}

		alerts = append(alerts, alert)
		m.queued[key] = true
		m.pending = append(m.pending, alert)
	}

	// Drop the oldest alerts beyond the cap
	if over := len(m.pending) - m.maxPending; over > 0 {
		for _, a := range m.pending[:over] {
			delete(m.queued, alertKey(a.GamePk, a.AtBatIndex))
			m.notified[alertKey(a.GamePk, a.AtBatIndex)] = notifiedRecord{AlertID: a.ID}
		}
		m.pending = append([]models.ScoringAlert(nil), m.pending[over:]...)
	}

	return alerts, detectionErrors
}

// Pending returns the alerts waiting for delivery, oldest first.
func (m *Monitor) Pending() []models.ScoringAlert {
	return append([]models.ScoringAlert(nil), m.pending...)
}

// RecordNotified marks the given alerts as delivered and removes them from the
// pending queue. Call this after a successful send.
func (m *Monitor) RecordNotified(alerts []models.ScoringAlert) {
	now := time.Now()
	sent := make(map[string]bool, len(alerts))
	for _, a := range alerts {
		key := alertKey(a.GamePk, a.AtBatIndex)
		m.notified[key] = notifiedRecord{AlertID: a.ID, SentAt: now}
		delete(m.queued, key)
		sent[a.ID] = true
	}

	kept := m.pending[:0]
	for _, a := range m.pending {
		if !sent[a.ID] {
			kept = append(kept, a)
		}
	}
	m.pending = kept
}

func teamName(t models.Team) string {
	switch {
	case t.Abbreviation != "":
		return t.Abbreviation
	case t.Name != "":
		return t.Name
	default:
		return "TBD"
	}
}
