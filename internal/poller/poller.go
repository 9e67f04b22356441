// Package poller drives the fetch loop: it polls the tracked game's feed and
// win probability, refreshes the day's schedule and hands scoring plays to the
// notifier.
//
// Fetches run outside the tracker lock. Every result is applied with the
// ticket taken before the fetch, so a result for a game the user has already
// switched away from is dropped.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/logger"
	"github.com/rewired-gh/dugout/internal/models"
	"github.com/rewired-gh/dugout/internal/monitor"
	"github.com/rewired-gh/dugout/internal/statsapi"
)

// Fetcher is the Stats API surface the poller needs.
type Fetcher interface {
	FetchGameFeed(ctx context.Context, gamePk int) (*models.GameFeed, error)
	FetchWinProbability(ctx context.Context, gamePk int) ([]models.WinProbabilityAtBat, error)
	FetchSchedule(ctx context.Context, date time.Time) (*models.Schedule, error)
}

// Notifier delivers scoring alerts.
type Notifier interface {
	Send(alerts []models.ScoringAlert) error
}

// Config holds polling cadence settings
type Config struct {
	LiveInterval time.Duration
	IdleInterval time.Duration
	Date         time.Time // schedule day
}

// Poller periodically refreshes the tracker from the Stats API
type Poller struct {
	fetcher  Fetcher
	tracker  *game.Tracker
	monitor  *monitor.Monitor
	notifier Notifier // nil disables alerts
	cfg      Config
	wake     chan struct{}

	mu                  sync.Mutex
	schedule            []models.ScheduledGame
	scheduleAt          time.Time
	lastErr             error
	consecutiveFailures int
}

// New creates a Poller. notifier may be nil.
func New(f Fetcher, tr *game.Tracker, notifier Notifier, cfg Config) *Poller {
	if cfg.LiveInterval <= 0 {
		cfg.LiveInterval = 10 * time.Second
	}
	if cfg.IdleInterval < cfg.LiveInterval {
		cfg.IdleInterval = cfg.LiveInterval
	}
	if cfg.Date.IsZero() {
		cfg.Date = time.Now()
	}
	return &Poller{
		fetcher:  f,
		tracker:  tr,
		monitor:  monitor.New(monitor.DefaultMaxPending),
		notifier: notifier,
		cfg:      cfg,
		wake:     make(chan struct{}, 1),
	}
}

// Run polls until ctx is canceled. The first cycle runs immediately.
func (p *Poller) Run(ctx context.Context) error {
	logger.Info("Starting poller (live interval: %v, idle interval: %v, date: %s)",
		p.cfg.LiveInterval, p.cfg.IdleInterval, p.cfg.Date.Format("2006-01-02"))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Poller stopped")
			return ctx.Err()
		case <-p.wake:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-timer.C:
		}

		p.handleCycleResult(p.Cycle(ctx))
		timer.Reset(p.Interval())
	}
}

// Poke requests a cycle right away, e.g. after the user switched games.
func (p *Poller) Poke() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Interval returns the wait before the next cycle: the live interval while
// the tracked game is in progress, the idle interval otherwise.
func (p *Poller) Interval() time.Duration {
	if p.tracker.IsLive() {
		return p.cfg.LiveInterval
	}
	return p.cfg.IdleInterval
}

// Cycle refreshes the schedule when it is due and polls the tracked game.
func (p *Poller) Cycle(ctx context.Context) error {
	var errs []error

	p.mu.Lock()
	due := p.scheduleAt.IsZero() || time.Since(p.scheduleAt) >= p.cfg.IdleInterval
	p.mu.Unlock()
	if due {
		if err := p.RefreshSchedule(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if err := p.PollGame(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RefreshSchedule fetches the configured day's schedule.
func (p *Poller) RefreshSchedule(ctx context.Context) error {
	sched, err := p.fetcher.FetchSchedule(ctx, p.cfg.Date)
	if err != nil {
		return fmt.Errorf("failed to refresh schedule: %w", err)
	}

	var games []models.ScheduledGame
	for _, g := range sched.Games() {
		if err := g.Validate(); err != nil {
			logger.Warn("Skipping scheduled game %d: %v", g.GamePk, err)
			continue
		}
		games = append(games, g)
	}

	p.mu.Lock()
	p.schedule = games
	p.scheduleAt = time.Now()
	p.mu.Unlock()

	logger.Debug("Fetched %d scheduled games for %s", len(games), p.cfg.Date.Format("2006-01-02"))
	return nil
}

// Schedule returns the last fetched schedule.
func (p *Poller) Schedule() []models.ScheduledGame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.ScheduledGame(nil), p.schedule...)
}

// PollGame fetches the tracked game and applies the results. It does nothing
// when no game is tracked.
func (p *Poller) PollGame(ctx context.Context) error {
	tk := p.tracker.Begin()
	if tk.GamePk == 0 {
		return nil
	}

	log := logger.WithField("request_id", uuid.New().String()).WithField("game_pk", tk.GamePk)
	start := time.Now()

	feed, err := p.fetcher.FetchGameFeed(ctx, tk.GamePk)
	if err != nil {
		return fmt.Errorf("failed to poll game %d: %w", tk.GamePk, err)
	}
	if !p.tracker.ApplyFeed(tk, feed) {
		log.Debug("Feed discarded (superseded by game switch or empty)")
		return nil
	}

	doc, err := p.fetcher.FetchWinProbability(ctx, tk.GamePk)
	switch {
	case errors.Is(err, statsapi.ErrNotFound):
		// no win probability before first pitch
		doc = nil
	case err != nil:
		log.WithError(err).Warn("Failed to fetch win probability, keeping previous series")
	}
	if err == nil || errors.Is(err, statsapi.ErrNotFound) {
		p.tracker.ApplyWinProbability(tk, doc)
	}

	p.notify(tk)

	log.WithField("plays", len(feed.AllPlays())).WithField("elapsed", time.Since(start).String()).Debug("Polled game")
	return nil
}

// notify queues fresh scoring plays and tries to deliver everything pending.
func (p *Poller) notify(tk game.Ticket) {
	teams, plays := p.tracker.TakeScoringPlays(tk)
	if p.notifier == nil {
		return
	}

	_, detectionErrors := p.monitor.DetectScoringPlays(tk.GamePk, teams, plays, time.Now())
	for _, detErr := range detectionErrors {
		logger.Warn("Failed to build alert: %v", detErr)
	}

	pending := p.monitor.Pending()
	if len(pending) == 0 {
		return
	}
	if err := p.notifier.Send(pending); err != nil {
		logger.Error("Failed to send %d scoring alerts: %v", len(pending), err)
		return
	}
	p.monitor.RecordNotified(pending)
	logger.Info("Sent %d scoring alerts", len(pending))
}

func (p *Poller) handleCycleResult(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.consecutiveFailures++
		p.lastErr = err
		if p.consecutiveFailures == 1 {
			logger.Error("Poll cycle failed: %v", err)
		} else {
			logger.Warn("Poll cycle failed (%d in a row): %v", p.consecutiveFailures, err)
		}
		return
	}
	if p.consecutiveFailures > 0 {
		logger.Info("Polling recovered after %d failed cycles", p.consecutiveFailures)
	}
	p.consecutiveFailures = 0
	p.lastErr = nil
}

// Health returns the number of failed cycles in a row and the last error.
func (p *Poller) Health() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consecutiveFailures, p.lastErr
}
