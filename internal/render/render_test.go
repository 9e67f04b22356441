package render

import (
	"bytes"
	"errors"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/models"
	"github.com/rewired-gh/dugout/internal/projection"
	"github.com/rewired-gh/dugout/internal/teams"
)

func TestMain(m *testing.M) {
	color.NoColor = true //nolint:reassign // plain text frames in tests
	os.Exit(m.Run())
}

type fakeSource struct {
	games    []models.ScheduledGame
	failures int
	err      error
}

func (f *fakeSource) Schedule() []models.ScheduledGame { return f.games }
func (f *fakeSource) Health() (int, error)             { return f.failures, f.err }

func ptr[T any](v T) *T { return &v }

func scheduled(pk, away, home int, state string, start time.Time) models.ScheduledGame {
	return models.ScheduledGame{
		GamePk:   pk,
		GameDate: start,
		Status:   models.GameStatus{AbstractGameState: state, DetailedState: state},
		Teams: models.ScheduledTeams{
			Away: models.ScheduledTeam{Team: models.Team{ID: away}},
			Home: models.ScheduledTeam{Team: models.Team{ID: home}},
		},
	}
}

func trackedGame(t *testing.T) *game.Tracker {
	t.Helper()

	f := &models.GameFeed{GamePk: 1}
	f.GameData.Status = models.GameStatus{AbstractGameState: models.StateLive, DetailedState: "In Progress"}
	f.GameData.Teams = models.GameTeams{
		Away: models.Team{ID: 136, Abbreviation: "SEA"},
		Home: models.Team{ID: 117, Abbreviation: "HOU"},
	}
	f.LiveData.Plays = &models.Plays{
		AllPlays: []models.Play{
			{
				About:  models.About{AtBatIndex: 0, Inning: 1, IsTopInning: true, IsComplete: true, IsScoringPlay: ptr(true)},
				Result: models.Result{Event: ptr("Home Run"), Description: ptr("Cal Raleigh homers."), AwayScore: ptr(1)},
				Matchup: models.PlayMatchup{
					Batter:  models.Person{FullName: "Cal Raleigh"},
					Pitcher: models.Person{FullName: "Framber Valdez"},
				},
			},
			{
				About: models.About{AtBatIndex: 1, Inning: 1, IsTopInning: true},
				Count: models.Count{Balls: 2, Strikes: 1},
				Matchup: models.PlayMatchup{
					Batter:  models.Person{FullName: "Julio Rodriguez"},
					BatSide: models.Side{Code: "R"},
					Pitcher: models.Person{FullName: "Framber Valdez"},
				},
				PlayEvents: []models.Event{{IsPitch: true, PitchNumber: ptr(1), Details: models.EventDetails{Description: ptr("Ball")}}},
			},
		},
		CurrentPlay: &models.Play{About: models.About{AtBatIndex: 1}},
	}
	f.LiveData.Linescore = &models.Linescore{
		CurrentInning:        1,
		CurrentInningOrdinal: "1st",
		InningState:          "Top",
		Innings:              []models.Inning{{Num: 1, Away: models.InningLine{Runs: ptr(1)}}},
		Teams:                models.LinescoreTeams{Away: models.TeamLine{Runs: 1, Hits: 1}},
	}

	tr := game.NewTracker()
	tr.SwitchGame(1)
	require.True(t, tr.ApplyFeed(tr.Begin(), f))
	return tr
}

func newDashboard(tr *game.Tracker, src *fakeSource) *Dashboard {
	return New(tr, teams.Default(), src, Options{Location: time.UTC, Width: 120, Height: 40})
}

func TestScheduleState_MoveWraps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		start  int
		delta  int
		n      int
		expect int
	}{
		{"forward", 0, 1, 3, 1},
		{"wrap forward", 2, 1, 3, 0},
		{"wrap backward", 0, -1, 3, 2},
		{"large step", 1, 7, 3, 2},
		{"empty list", 2, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := &ScheduleState{Cursor: tt.start}
			st.Move(tt.delta, tt.n)
			assert.Equal(t, tt.expect, st.Cursor)
		})
	}
}

func TestScheduleState_Clamp(t *testing.T) {
	t.Parallel()

	st := &ScheduleState{Cursor: 5}
	st.Clamp(3)
	assert.Equal(t, 2, st.Cursor)
	st.Clamp(0)
	assert.Equal(t, 0, st.Cursor)
}

func TestDashboard_PanelNavigation(t *testing.T) {
	t.Parallel()

	d := newDashboard(game.NewTracker(), &fakeSource{})
	assert.Equal(t, KindGameday, d.Active().Kind)

	d.PrevPanel()
	assert.Equal(t, KindSchedule, d.Active().Kind)
	d.NextPanel()
	d.NextPanel()
	assert.Equal(t, KindBoxScore, d.Active().Kind)

	d.Toggle()
	assert.Equal(t, projection.Home, d.Active().BoxScore.Side)

	d.ShowPanel(KindWinProbability)
	assert.Equal(t, KindWinProbability, d.Active().Kind)
	d.Toggle()
	assert.False(t, d.Active().WinProb.ShowLeverage)
}

func TestDefaultPanels_TaggedState(t *testing.T) {
	t.Parallel()

	for _, p := range DefaultPanels() {
		set := 0
		for _, ok := range []bool{p.Gameday != nil, p.BoxScore != nil, p.WinProb != nil, p.Schedule != nil} {
			if ok {
				set++
			}
		}
		assert.Equal(t, 1, set, "panel %s", p.Kind)
	}
}

func TestFrame_NoGame(t *testing.T) {
	t.Parallel()

	frame := newDashboard(game.NewTracker(), &fakeSource{}).Frame()
	assert.Contains(t, frame, "no game selected")
	assert.Contains(t, frame, "No at-bat yet")
	assert.Contains(t, frame, "waiting for data")
}

func TestFrame_Gameday(t *testing.T) {
	t.Parallel()

	d := newDashboard(trackedGame(t), &fakeSource{})
	frame := d.Frame()

	assert.Contains(t, frame, "SEA 1 @ HOU 0")
	assert.Contains(t, frame, "Top 1st")
	assert.Contains(t, frame, "[live] Top 1: Julio Rodriguez vs Framber Valdez, 2-1, 0 out")
	assert.Contains(t, frame, "B 2")
	assert.Contains(t, frame, "Ball")
	assert.Contains(t, frame, projection.ScoringMarker+"Top 1  Cal Raleigh homers. (1-0)")
	assert.Contains(t, frame, "game 1 | live")

	d.Toggle()
	assert.NotContains(t, d.Frame(), "Play-by-play")
}

func TestFrame_History(t *testing.T) {
	t.Parallel()

	tr := trackedGame(t)
	tr.MovePrevious()
	frame := newDashboard(tr, &fakeSource{}).Frame()

	assert.Contains(t, frame, "[history] Top 1: Cal Raleigh vs Framber Valdez")
	assert.Contains(t, frame, "game 1 | history")
}

func TestFrame_BoxScoreAndWinProbability(t *testing.T) {
	t.Parallel()

	d := newDashboard(trackedGame(t), &fakeSource{})

	d.ShowPanel(KindBoxScore)
	frame := d.Frame()
	assert.Contains(t, frame, projection.TotalsLabel)
	assert.Contains(t, frame, "SEA (away)")

	d.ShowPanel(KindWinProbability)
	assert.Contains(t, d.Frame(), "50.0%")
}

func TestFrame_Schedule(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 7, 4, 23, 10, 0, 0, time.UTC)
	final := scheduled(7, 121, 143, models.StateFinal, start)
	final.Teams.Away.Score, final.Teams.Home.Score = ptr(3), ptr(5)
	preview := scheduled(8, 147, 111, models.StatePreview, start)
	preview.Teams.Home.ProbablePitcher = &models.Person{FullName: "Garrett Crochet"}

	src := &fakeSource{games: []models.ScheduledGame{scheduled(1, 136, 117, models.StateLive, start), final, preview}}
	d := newDashboard(trackedGame(t), src)
	d.ShowPanel(KindSchedule)

	frame := d.Frame()
	assert.Contains(t, frame, "NYM")
	assert.Contains(t, frame, "PHI")
	assert.Contains(t, frame, "Final")
	assert.Contains(t, frame, "11:10 PM  TBD vs Garrett Crochet")

	d.MoveCursor(-1)
	g, ok := d.SelectedGame()
	require.True(t, ok)
	assert.Equal(t, 8, g.GamePk)

	d.MoveCursor(1)
	g, _ = d.SelectedGame()
	assert.Equal(t, 1, g.GamePk)

	d.FocusGame(7)
	g, _ = d.SelectedGame()
	assert.Equal(t, 7, g.GamePk)
}

func TestFrame_EmptySchedule(t *testing.T) {
	t.Parallel()

	d := newDashboard(game.NewTracker(), &fakeSource{})
	d.ShowPanel(KindSchedule)
	assert.Contains(t, d.Frame(), "No games scheduled")

	_, ok := d.SelectedGame()
	assert.False(t, ok)
}

func TestFrame_PollFailures(t *testing.T) {
	t.Parallel()

	d := newDashboard(game.NewTracker(), &fakeSource{failures: 3, err: errors.New("connection refused")})
	assert.Contains(t, d.Frame(), "3 failed polls: connection refused")
}

func TestDraw_ClearsScreen(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newDashboard(game.NewTracker(), &fakeSource{}).Draw(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), clearScreen))
}

func TestUpdatedLabel(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 7, 4, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "waiting for data", updatedLabel(time.Time{}, now))
	assert.Equal(t, "updated 5 seconds ago", updatedLabel(now.Add(-5*time.Second), now))
}

func TestTake(t *testing.T) {
	t.Parallel()

	seq := slices.Values([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b"}, slices.Collect(take(seq, 2)))
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(take(seq, 5)))
	assert.Empty(t, slices.Collect(take(seq, 0)))
}

func TestResize_Defaults(t *testing.T) {
	t.Parallel()

	d := newDashboard(game.NewTracker(), &fakeSource{})
	d.Resize(0, -1)
	assert.Equal(t, 80, d.width)
	assert.Equal(t, 24, d.height)
}

func TestScheduleTable(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 7, 4, 17, 5, 0, 0, time.UTC)
	out := ScheduleTable([]models.ScheduledGame{scheduled(9, 119, 137, models.StatePreview, start)}, teams.Default(), time.UTC, 100)

	assert.Contains(t, out, "LAD")
	assert.Contains(t, out, "SF")
	assert.Contains(t, out, "5:05 PM")
	assert.NotContains(t, out, ">")
}
