// Package render draws the dashboard as plain text frames: a line score
// header, one active panel and a status bar. Frames are rebuilt from the
// tracker on every tick; nothing here keeps game state of its own.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/models"
	"github.com/rewired-gh/dugout/internal/projection"
	"github.com/rewired-gh/dugout/internal/teams"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// chromeLines is the height taken by the header, tabs and status bar.
const chromeLines = 11

// Source provides data the poller collects outside the tracker.
type Source interface {
	Schedule() []models.ScheduledGame
	Health() (int, error)
}

// Options configures a Dashboard
type Options struct {
	Location *time.Location
	Width    int
	Height   int
}

// Dashboard renders the tracker state and owns the panel tabs
type Dashboard struct {
	tracker *game.Tracker
	teams   *teams.Directory
	source  Source
	loc     *time.Location
	panels  []Panel
	active  int
	width   int
	height  int
	now     func() time.Time
}

// New creates a Dashboard showing the gameday panel
func New(tr *game.Tracker, dir *teams.Directory, src Source, opts Options) *Dashboard {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	d := &Dashboard{
		tracker: tr,
		teams:   dir,
		source:  src,
		loc:     loc,
		panels:  DefaultPanels(),
		now:     time.Now,
	}
	d.Resize(opts.Width, opts.Height)
	return d
}

// Resize records the terminal size. Non-positive values fall back to 80x24.
func (d *Dashboard) Resize(width, height int) {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	d.width, d.height = width, height
}

// Active returns the panel on screen.
func (d *Dashboard) Active() *Panel {
	return &d.panels[d.active]
}

// NextPanel cycles forward through the tabs.
func (d *Dashboard) NextPanel() {
	d.active = (d.active + 1) % len(d.panels)
}

// PrevPanel cycles backward through the tabs.
func (d *Dashboard) PrevPanel() {
	d.active = (d.active - 1 + len(d.panels)) % len(d.panels)
}

// ShowPanel switches to the tab of the given kind.
func (d *Dashboard) ShowPanel(k Kind) {
	for i, p := range d.panels {
		if p.Kind == k {
			d.active = i
			return
		}
	}
}

// Toggle flips the option of the active panel: the box score team, the
// play-by-play log or the leverage column.
func (d *Dashboard) Toggle() {
	p := d.Active()
	switch p.Kind {
	case KindGameday:
		p.Gameday.ShowPlayByPlay = !p.Gameday.ShowPlayByPlay
	case KindBoxScore:
		p.BoxScore.Toggle()
	case KindWinProbability:
		p.WinProb.ShowLeverage = !p.WinProb.ShowLeverage
	}
}

func (d *Dashboard) schedulePanel() *ScheduleState {
	for i := range d.panels {
		if d.panels[i].Kind == KindSchedule {
			return d.panels[i].Schedule
		}
	}
	return &ScheduleState{}
}

// MoveCursor steps the schedule cursor, wrapping around the list.
func (d *Dashboard) MoveCursor(delta int) {
	d.schedulePanel().Move(delta, len(d.source.Schedule()))
}

// SelectedGame returns the game under the schedule cursor.
func (d *Dashboard) SelectedGame() (models.ScheduledGame, bool) {
	games := d.source.Schedule()
	st := d.schedulePanel()
	st.Clamp(len(games))
	if len(games) == 0 {
		return models.ScheduledGame{}, false
	}
	return games[st.Cursor], true
}

// FocusGame puts the schedule cursor on the given game if it is listed.
func (d *Dashboard) FocusGame(gamePk int) {
	for i, g := range d.source.Schedule() {
		if g.GamePk == gamePk {
			d.schedulePanel().Cursor = i
			return
		}
	}
}

// Draw writes one full frame to w.
func (d *Dashboard) Draw(w io.Writer) error {
	_, err := io.WriteString(w, clearScreen+d.Frame())
	return err
}

// Frame builds the text of one frame.
func (d *Dashboard) Frame() string {
	games := d.source.Schedule()
	failures, lastErr := d.source.Health()
	body := max(d.height-chromeLines, 3)

	var b strings.Builder
	d.tracker.View(func(s *game.Session, sel *game.Selection) {
		d.drawHeader(&b, s)
		d.drawTabs(&b)

		p := d.Active()
		switch p.Kind {
		case KindGameday:
			d.drawGameday(&b, s, sel, p.Gameday, body)
		case KindBoxScore:
			d.drawBoxScore(&b, s, p.BoxScore)
		case KindWinProbability:
			d.drawWinProbability(&b, s, sel, p.WinProb, body)
		case KindSchedule:
			d.drawSchedule(&b, games, s.GameID(), p.Schedule, body)
		}

		d.drawStatus(&b, s, sel, failures, lastErr)
	})
	return b.String()
}

func (d *Dashboard) drawHeader(b *strings.Builder, s *game.Session) {
	if s.GameID() == 0 {
		b.WriteString(color.New(color.Bold).Sprint("dugout") + "  no game selected, pick one from the schedule\n\n")
		return
	}

	ls := s.LineScore()
	t := s.Teams()
	title := fmt.Sprintf("%s %d @ %s %d",
		projection.TeamLabel(t.Away), ls.Teams.Away.Runs,
		projection.TeamLabel(t.Home), ls.Teams.Home.Runs)

	state := s.Status().DetailedState
	if s.IsLive() && ls.CurrentInningOrdinal != "" {
		state = strings.TrimSpace(ls.InningState + " " + ls.CurrentInningOrdinal)
	}
	fmt.Fprintf(b, "%s  %s\n", color.New(color.Bold).Sprint(title), state)
	b.WriteString(renderMatrix(projection.LineScore(s), d.width, nil))
	b.WriteString("\n\n")
}

func (d *Dashboard) drawTabs(b *strings.Builder) {
	tabs := make([]string, 0, len(d.panels))
	for i, p := range d.panels {
		label := fmt.Sprintf(" %s ", p.Kind)
		if i == d.active {
			label = color.New(color.ReverseVideo).Sprint(label)
		}
		tabs = append(tabs, label)
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")
}

func (d *Dashboard) drawStatus(b *strings.Builder, s *game.Session, sel *game.Selection, failures int, lastErr error) {
	b.WriteString("\n")

	var parts []string
	if s.GameID() != 0 {
		mode := "live"
		if !sel.IsFollowingLive() {
			mode = "history"
		}
		parts = append(parts, fmt.Sprintf("game %d", s.GameID()), mode)
	}
	parts = append(parts, updatedLabel(s.UpdatedAt(), d.now()))
	if failures > 0 && lastErr != nil {
		parts = append(parts, color.New(color.FgRed).Sprintf("%d failed polls: %v", failures, lastErr))
	}
	parts = append(parts, "tab panel  h/l at-bat  g live  t toggle  q quit")
	b.WriteString(strings.Join(parts, " | "))
	b.WriteString("\n")
}
