package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/models"
	"github.com/rewired-gh/dugout/internal/statsapi"
)

type fakeFetcher struct {
	mu         sync.Mutex
	feeds      map[int]*models.GameFeed
	winProb    []models.WinProbabilityAtBat
	winProbErr error
	feedErr    error
	schedule   *models.Schedule
	onFeed     func() // runs inside FetchGameFeed, before returning
	feedCalls  int
	schedCalls int
	polled     chan int
}

func (f *fakeFetcher) FetchGameFeed(_ context.Context, gamePk int) (*models.GameFeed, error) {
	f.mu.Lock()
	f.feedCalls++
	feed, err, hook := f.feeds[gamePk], f.feedErr, f.onFeed
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if f.polled != nil {
		select {
		case f.polled <- gamePk:
		default:
		}
	}
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, statsapi.ErrNotFound
	}
	return feed, nil
}

func (f *fakeFetcher) FetchWinProbability(context.Context, int) ([]models.WinProbabilityAtBat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.winProb, f.winProbErr
}

func (f *fakeFetcher) FetchSchedule(context.Context, time.Time) (*models.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schedCalls++
	if f.schedule == nil {
		return &models.Schedule{}, nil
	}
	return f.schedule, nil
}

type fakeNotifier struct {
	fail bool
	sent [][]models.ScoringAlert
}

func (n *fakeNotifier) Send(alerts []models.ScoringAlert) error {
	if n.fail {
		return errors.New("notifier down")
	}
	n.sent = append(n.sent, alerts)
	return nil
}

func ptr[T any](v T) *T { return &v }

func liveFeed(gamePk int, plays ...models.Play) *models.GameFeed {
	f := &models.GameFeed{GamePk: gamePk}
	f.GameData.Status = models.GameStatus{AbstractGameState: models.StateLive}
	f.GameData.Teams = models.GameTeams{
		Away: models.Team{ID: 136, Abbreviation: "SEA"},
		Home: models.Team{ID: 117, Abbreviation: "HOU"},
	}
	f.LiveData.Plays = &models.Plays{AllPlays: plays}
	return f
}

func completed(index int, scoring bool) models.Play {
	return models.Play{
		About: models.About{AtBatIndex: index, Inning: 1, IsTopInning: true, IsComplete: true, IsScoringPlay: ptr(scoring)},
		Result: models.Result{
			Event:       ptr("Single"),
			Description: ptr(fmt.Sprintf("Play %d.", index)),
			AwayScore:   ptr(index),
		},
	}
}

func testConfig() Config {
	return Config{LiveInterval: 10 * time.Second, IdleInterval: time.Minute, Date: time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)}
}

func TestPollGame_NoGame(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{}
	p := New(f, game.NewTracker(), nil, testConfig())

	require.NoError(t, p.PollGame(context.Background()))
	assert.Zero(t, f.feedCalls)
}

func TestPollGame_AppliesFeedAndWinProbability(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{
		feeds:   map[int]*models.GameFeed{1: liveFeed(1, completed(0, false), completed(1, false))},
		winProb: []models.WinProbabilityAtBat{{AtBatIndex: 0, HomeTeamWinProbability: 40, AwayTeamWinProbability: 60}},
	}
	tr := game.NewTracker()
	tr.SwitchGame(1)
	p := New(f, tr, nil, testConfig())

	require.NoError(t, p.PollGame(context.Background()))
	tr.View(func(s *game.Session, _ *game.Selection) {
		assert.Equal(t, 1, s.GameID())
		assert.Equal(t, 2, s.History().Len())
		assert.InDelta(t, 40, s.WinProbability().Latest().HomeWinPct, 0.001)
	})
	assert.Equal(t, 10*time.Second, p.Interval())
}

func TestPollGame_WinProbabilityNotFound(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{
		feeds:      map[int]*models.GameFeed{1: liveFeed(1)},
		winProbErr: fmt.Errorf("wrapped: %w", statsapi.ErrNotFound),
	}
	tr := game.NewTracker()
	tr.SwitchGame(1)
	p := New(f, tr, nil, testConfig())

	require.NoError(t, p.PollGame(context.Background()))
	tr.View(func(s *game.Session, _ *game.Selection) {
		assert.Equal(t, models.NeutralSample, s.WinProbability().Latest())
	})
}

func TestPollGame_WinProbabilityErrorKeepsSeries(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{
		feeds:   map[int]*models.GameFeed{1: liveFeed(1)},
		winProb: []models.WinProbabilityAtBat{{AtBatIndex: 3, HomeTeamWinProbability: 70, AwayTeamWinProbability: 30}},
	}
	tr := game.NewTracker()
	tr.SwitchGame(1)
	p := New(f, tr, nil, testConfig())
	require.NoError(t, p.PollGame(context.Background()))

	f.mu.Lock()
	f.winProbErr = errors.New("timeout")
	f.mu.Unlock()

	require.NoError(t, p.PollGame(context.Background()))
	tr.View(func(s *game.Session, _ *game.Selection) {
		assert.Equal(t, 3, s.WinProbability().Latest().AtBatIndex)
	})
}

func TestPollGame_FeedError(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{feedErr: errors.New("connection refused")}
	tr := game.NewTracker()
	tr.SwitchGame(1)
	p := New(f, tr, nil, testConfig())

	err := p.PollGame(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game 1")
}

// TestPollGame_DropsResultAfterSwitch verifies a feed that arrives after the
// user switched games never reaches the session.
func TestPollGame_DropsResultAfterSwitch(t *testing.T) {
	t.Parallel()

	tr := game.NewTracker()
	tr.SwitchGame(1)
	f := &fakeFetcher{
		feeds:  map[int]*models.GameFeed{1: liveFeed(1, completed(0, false))},
		onFeed: func() { tr.SwitchGame(2) },
	}
	p := New(f, tr, nil, testConfig())

	require.NoError(t, p.PollGame(context.Background()))
	assert.Equal(t, 2, tr.CurrentGameID())
	tr.View(func(s *game.Session, _ *game.Selection) {
		assert.Zero(t, s.GameID())
		assert.Zero(t, s.History().Len())
	})
}

func TestPollGame_ScoringAlerts(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{feeds: map[int]*models.GameFeed{1: liveFeed(1, completed(0, true))}}
	tr := game.NewTracker()
	tr.SwitchGame(1)
	n := &fakeNotifier{}
	p := New(f, tr, n, testConfig())

	// runs scored before joining are not alerted
	require.NoError(t, p.PollGame(context.Background()))
	assert.Empty(t, n.sent)

	f.mu.Lock()
	f.feeds[1] = liveFeed(1, completed(0, true), completed(1, false), completed(2, true))
	f.mu.Unlock()

	n.fail = true
	require.NoError(t, p.PollGame(context.Background()))
	assert.Empty(t, n.sent)

	// the undelivered alert is retried on the next poll
	n.fail = false
	require.NoError(t, p.PollGame(context.Background()))
	require.Len(t, n.sent, 1)
	require.Len(t, n.sent[0], 1)
	assert.Equal(t, 2, n.sent[0][0].AtBatIndex)
	assert.Equal(t, "SEA", n.sent[0][0].AwayTeam)

	require.NoError(t, p.PollGame(context.Background()))
	assert.Len(t, n.sent, 1)
}

func TestRefreshSchedule(t *testing.T) {
	t.Parallel()

	gameDate := time.Date(2026, 7, 4, 23, 10, 0, 0, time.UTC)
	f := &fakeFetcher{schedule: &models.Schedule{Dates: []models.ScheduleDate{{
		Date: "2026-07-04",
		Games: []models.ScheduledGame{
			{GamePk: 1, GameDate: gameDate, Teams: models.ScheduledTeams{
				Away: models.ScheduledTeam{Team: models.Team{ID: 136}},
				Home: models.ScheduledTeam{Team: models.Team{ID: 117}},
			}},
			{GamePk: 0, GameDate: gameDate},
		},
	}}}}
	p := New(f, game.NewTracker(), nil, testConfig())

	require.NoError(t, p.RefreshSchedule(context.Background()))
	games := p.Schedule()
	require.Len(t, games, 1)
	assert.Equal(t, 1, games[0].GamePk)
}

func TestCycle_RefreshesScheduleWhenDue(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{}
	p := New(f, game.NewTracker(), nil, testConfig())

	require.NoError(t, p.Cycle(context.Background()))
	require.NoError(t, p.Cycle(context.Background()))
	assert.Equal(t, 1, f.schedCalls)
}

func TestInterval_IdleWithoutLiveGame(t *testing.T) {
	t.Parallel()

	p := New(&fakeFetcher{}, game.NewTracker(), nil, testConfig())
	assert.Equal(t, time.Minute, p.Interval())
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	p := New(&fakeFetcher{}, game.NewTracker(), nil, Config{IdleInterval: time.Second})
	assert.Equal(t, 10*time.Second, p.cfg.LiveInterval)
	assert.Equal(t, 10*time.Second, p.cfg.IdleInterval)
	assert.False(t, p.cfg.Date.IsZero())
}

func TestHandleCycleResult(t *testing.T) {
	t.Parallel()

	p := New(&fakeFetcher{}, game.NewTracker(), nil, testConfig())

	p.handleCycleResult(errors.New("first"))
	p.handleCycleResult(errors.New("second"))
	failures, err := p.Health()
	assert.Equal(t, 2, failures)
	assert.EqualError(t, err, "second")

	p.handleCycleResult(nil)
	failures, err = p.Health()
	assert.Zero(t, failures)
	assert.NoError(t, err)
}

func TestRun_PollsAndStops(t *testing.T) {
	t.Parallel()

	tr := game.NewTracker()
	tr.SwitchGame(1)
	f := &fakeFetcher{
		feeds:  map[int]*models.GameFeed{1: liveFeed(1), 2: liveFeed(2)},
		polled: make(chan int, 1),
	}
	p := New(f, tr, nil, Config{LiveInterval: time.Hour, IdleInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	select {
	case pk := <-f.polled:
		assert.Equal(t, 1, pk)
	case <-time.After(2 * time.Second):
		t.Fatal("first cycle did not run")
	}

	tr.SwitchGame(2)
	p.Poke()
	select {
	case pk := <-f.polled:
		assert.Equal(t, 2, pk)
	case <-time.After(2 * time.Second):
		t.Fatal("poke did not trigger a cycle")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}
