package render

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/models"
	"github.com/rewired-gh/dugout/internal/projection"
	"github.com/rewired-gh/dugout/internal/teams"
)

var (
	ballColor    = color.New(color.FgGreen)
	strikeColor  = color.New(color.FgRed)
	scoringColor = color.New(color.FgYellow)
	totalsColor  = color.New(color.Bold)
	dimColor     = color.New(color.Faint)
)

func (d *Dashboard) drawGameday(b *strings.Builder, s *game.Session, sel *game.Selection, st *GamedayState, height int) {
	m := projection.Matchup(s, sel)

	summary := s.Summary(sel)
	if m.Live {
		summary = color.New(color.FgGreen).Sprint(summary)
	}
	b.WriteString(summary + "\n")
	fmt.Fprintf(b, "AB %s (%s)  vs  P %s (%s)\n", m.Batter, orDash(m.BatSide), m.Pitcher, orDash(m.PitchHand))
	fmt.Fprintf(b, "%s  %s  Outs %d   Bases %s\n",
		ballColor.Sprintf("B %d", m.Count.Balls),
		strikeColor.Sprintf("S %d", m.Count.Strikes),
		m.Count.Outs, bases(m.Bases))
	used := 3
	if m.Live && (m.OnDeck != "" || m.InHole != "") {
		fmt.Fprintf(b, "On deck %s   In the hole %s\n", orDash(m.OnDeck), orDash(m.InHole))
		used++
	}
	b.WriteString("\n")
	used++

	remaining := height - used
	pitchLines := remaining
	if st.ShowPlayByPlay {
		pitchLines = remaining / 2
	}
	for line := range take(projection.AtBatLines(s, sel), pitchLines) {
		b.WriteString("  " + line + "\n")
	}

	if !st.ShowPlayByPlay {
		return
	}
	b.WriteString(dimColor.Sprint("Play-by-play") + "\n")
	for line := range take(projection.PlayByPlay(s), remaining-pitchLines-1) {
		if strings.HasPrefix(line, projection.ScoringMarker) {
			line = scoringColor.Sprint(line)
		}
		b.WriteString("  " + line + "\n")
	}
}

func (d *Dashboard) drawBoxScore(b *strings.Builder, s *game.Session, st *BoxScoreState) {
	view := projection.BoxScore(s, st.Side)
	fmt.Fprintf(b, "%s (%s)\n", color.New(color.Bold).Sprint(view.Team), st.Side)

	bold := func(_ int, row []string) []string {
		if row[0] != projection.TotalsLabel {
			return row
		}
		out := make([]string, len(row))
		for i, c := range row {
			out[i] = totalsColor.Sprint(c)
		}
		return out
	}
	b.WriteString(renderMatrix(view.Batting, d.width, bold))
	b.WriteString("\n\n")
	b.WriteString(renderMatrix(view.Pitching, d.width, bold))
	b.WriteString("\n")
}

func (d *Dashboard) drawWinProbability(b *strings.Builder, s *game.Session, sel *game.Selection, st *WinProbState, height int) {
	// header and separator take two lines
	w := projection.WinProbability(s, sel, height-2)

	rows := make([][]string, 0, len(w.Rows)+1)
	rows = append(rows, w.Header)
	rows = append(rows, w.Rows...)
	if !st.ShowLeverage {
		for i := range rows {
			rows[i] = rows[i][:len(rows[i])-1]
		}
	}

	highlight := func(i int, row []string) []string {
		if i != w.Highlight {
			return row
		}
		out := make([]string, len(row))
		for j, c := range row {
			out[j] = color.New(color.ReverseVideo).Sprint(c)
		}
		return out
	}
	b.WriteString(renderMatrix(rows, d.width, highlight))
	b.WriteString("\n")
}

func (d *Dashboard) drawSchedule(b *strings.Builder, games []models.ScheduledGame, tracked int, st *ScheduleState, height int) {
	if len(games) == 0 {
		b.WriteString("No games scheduled\n")
		return
	}
	st.Clamp(len(games))

	// scroll so the cursor stays visible
	rows := max(height-2, 1)
	start := min(max(st.Cursor-rows+1, 0), max(len(games)-rows, 0))
	end := min(start+rows, len(games))

	b.WriteString(d.scheduleTable(games[start:end], tracked, st.Cursor-start).Render())
	b.WriteString("\n")
}

// ScheduleTable renders a plain listing of games, as printed by the schedule
// command.
func ScheduleTable(games []models.ScheduledGame, dir *teams.Directory, loc *time.Location, width int) string {
	if loc == nil {
		loc = time.Local
	}
	d := &Dashboard{teams: dir, loc: loc, width: width}
	return d.scheduleTable(games, 0, -1).Render()
}

func (d *Dashboard) scheduleTable(games []models.ScheduledGame, tracked, cursor int) table.Writer {
	tbl := newTable(d.width)
	tbl.AppendHeader(table.Row{"", "Away", "", "Home", "", "Status"})

	for i, g := range games {
		marker := " "
		if tracked != 0 && g.GamePk == tracked {
			marker = "*"
		}
		if i == cursor {
			marker = ">"
		}
		row := table.Row{
			marker,
			d.teams.Abbreviation(g.Teams.Away.Team.ID, g.Teams.Away.Team.Name),
			score(g.Teams.Away.Score),
			d.teams.Abbreviation(g.Teams.Home.Team.ID, g.Teams.Home.Team.Name),
			score(g.Teams.Home.Score),
			d.gameStatus(g),
		}
		if i == cursor {
			for j := range row {
				row[j] = color.New(color.ReverseVideo).Sprint(row[j])
			}
		}
		tbl.AppendRow(row)
	}
	return tbl
}

func (d *Dashboard) gameStatus(g models.ScheduledGame) string {
	switch g.Status.AbstractGameState {
	case models.StateLive, models.StateFinal:
		if g.Status.DetailedState != "" {
			return g.Status.DetailedState
		}
		return g.Status.AbstractGameState
	}

	start := g.GameDate.In(d.loc).Format("3:04 PM")
	away, home := g.Teams.Away.ProbablePitcher, g.Teams.Home.ProbablePitcher
	if away == nil && home == nil {
		return start
	}
	return fmt.Sprintf("%s  %s vs %s", start, pitcherName(away), pitcherName(home))
}

func updatedLabel(at, now time.Time) string {
	if at.IsZero() {
		return "waiting for data"
	}
	return "updated " + humanize.RelTime(at, now, "ago", "from now")
}

func take(seq iter.Seq[string], n int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for line := range seq {
			if !yield(line) {
				return
			}
			i++
			if i == n {
				return
			}
		}
	}
}

func bases(on [3]bool) string {
	marks := make([]string, 3)
	for i, b := range on {
		marks[i] = "○"
		if b {
			marks[i] = scoringColor.Sprint("●")
		}
	}
	return fmt.Sprintf("1B %s 2B %s 3B %s", marks[0], marks[1], marks[2])
}

func score(s *int) string {
	if s == nil {
		return ""
	}
	return fmt.Sprint(*s)
}

func pitcherName(p *models.Person) string {
	if p == nil || p.FullName == "" {
		return projection.Unknown
	}
	return p.FullName
}

func orDash(s string) string {
	if s == "" {
		return projection.Placeholder
	}
	return s
}
