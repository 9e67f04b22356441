package projection

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/models"
)

// Side picks one team of the box score.
type Side int

const (
	Away Side = iota
	Home
)

// String returns "away" or "home".
func (s Side) String() string {
	if s == Home {
		return "home"
	}
	return "away"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Home {
		return Away
	}
	return Home
}

// TotalsLabel heads the synthesized team row of both box score tables.
const TotalsLabel = "Totals"

var (
	battingHeader  = []string{"Batter", "AB", "R", "H", "RBI", "BB", "K", "LOB", "AVG", "OPS"}
	pitchingHeader = []string{"Pitcher", "IP", "H", "R", "ER", "BB", "K", "HR", "ERA"}
)

// BoxScoreView is one team's batting and pitching tables, each with a header
// row first and a Totals row last.
type BoxScoreView struct {
	Team     string
	Batting  [][]string
	Pitching [][]string
}

// BoxScore builds the box score of one side. Player rows come from the
// player stat blocks; the Totals rows are read from the team aggregate.
func BoxScore(s *game.Session, side Side) BoxScoreView {
	bs := s.BoxScore()
	team, ref := bs.Teams.Away, s.Teams().Away
	if side == Home {
		team, ref = bs.Teams.Home, s.Teams().Home
	}
	if ref.ID == 0 {
		ref = team.Team
	}

	return BoxScoreView{
		Team:     TeamLabel(ref),
		Batting:  battingRows(team),
		Pitching: pitchingRows(team),
	}
}

func battingRows(team models.BoxscoreTeam) [][]string {
	rows := [][]string{battingHeader}

	type entry struct {
		order  int
		player models.BoxscorePlayer
	}
	var lineup []entry
	for _, id := range team.Batters {
		p, ok := team.Players[models.PlayerKey(id)]
		if !ok || p.BattingOrder == "" {
			continue
		}
		order, err := strconv.Atoi(p.BattingOrder)
		if err != nil {
			continue
		}
		lineup = append(lineup, entry{order, p})
	}
	slices.SortStableFunc(lineup, func(a, b entry) int { return cmp.Compare(a.order, b.order) })

	for _, e := range lineup {
		b := e.player.Stats.Batting
		if b == nil {
			b = &models.BattingStats{}
		}
		avg, ops := Placeholder, Placeholder
		if e.player.SeasonStats != nil && e.player.SeasonStats.Batting != nil {
			avg = orPlaceholder(e.player.SeasonStats.Batting.Avg)
			ops = orPlaceholder(e.player.SeasonStats.Batting.OPS)
		}
		name := playerName(e.player)
		if pos := e.player.Position; pos != nil && pos.Abbreviation != "" {
			name += " " + pos.Abbreviation
		}
		// substitutes hit in the slot of the starter they replaced
		if e.order%100 != 0 {
			name = "  " + name
		}
		rows = append(rows, battingLine(name, b, avg, ops))
	}

	total := team.TeamStats.Batting
	if total == nil {
		total = &models.BattingStats{}
	}
	rows = append(rows, battingLine(TotalsLabel, total, total.Avg, total.OPS))
	return rows
}

func battingLine(name string, b *models.BattingStats, avg, ops string) []string {
	return []string{
		name,
		strconv.Itoa(b.AtBats),
		strconv.Itoa(b.Runs),
		strconv.Itoa(b.Hits),
		strconv.Itoa(b.RBI),
		strconv.Itoa(b.BaseOnBalls),
		strconv.Itoa(b.StrikeOuts),
		strconv.Itoa(b.LeftOnBase),
		avg,
		ops,
	}
}

func pitchingRows(team models.BoxscoreTeam) [][]string {
	rows := [][]string{pitchingHeader}

	for _, id := range team.Pitchers {
		p, ok := team.Players[models.PlayerKey(id)]
		if !ok {
			continue
		}
		st := p.Stats.Pitching
		if st == nil {
			st = &models.PitchingStats{}
		}
		era := Placeholder
		if p.SeasonStats != nil && p.SeasonStats.Pitching != nil {
			era = orPlaceholder(p.SeasonStats.Pitching.ERA)
		}
		rows = append(rows, pitchingLine(playerName(p), st, era))
	}

	total := team.TeamStats.Pitching
	if total == nil {
		total = &models.PitchingStats{}
	}
	rows = append(rows, pitchingLine(TotalsLabel, total, ""))
	return rows
}

func pitchingLine(name string, p *models.PitchingStats, era string) []string {
	ip := p.InningsPitched
	if ip == "" {
		ip = "0.0"
	}
	return []string{
		name,
		ip,
		strconv.Itoa(p.Hits),
		strconv.Itoa(p.Runs),
		strconv.Itoa(p.EarnedRuns),
		strconv.Itoa(p.BaseOnBalls),
		strconv.Itoa(p.StrikeOuts),
		strconv.Itoa(p.HomeRuns),
		era,
	}
}

func playerName(p models.BoxscorePlayer) string {
	if n := strings.TrimSpace(p.Person.BoxscoreName); n != "" {
		return n
	}
	if n := strings.TrimSpace(p.Person.FullName); n != "" {
		return n
	}
	return Unknown
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
