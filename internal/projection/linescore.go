// Package projection turns a game session and a selection into row-oriented
// display data. Every function here is pure: it reads the session and returns
// freshly built rows, so callers hold the tracker lock only while projecting.
//
// Absent data never fails a projection. Unplayed innings print as Placeholder,
// unknown players and teams as Unknown.
package projection

import (
	"strconv"

	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/models"
)

const (
	// Placeholder fills cells that have no value yet.
	Placeholder = "-"
	// Unknown names a team or player the feed has not described yet.
	Unknown = "TBD"
)

// regulationInnings is the minimum number of inning columns in a line score.
const regulationInnings = 9

// LineScore returns the line score as a header row followed by the away and
// home rows. The header is "", 1..N, R, H, E where N is at least nine.
func LineScore(s *game.Session) [][]string {
	ls := s.LineScore()
	teams := s.Teams()
	n := max(regulationInnings, len(ls.Innings))

	header := make([]string, 0, n+4)
	header = append(header, "")
	for i := 1; i <= n; i++ {
		header = append(header, strconv.Itoa(i))
	}
	header = append(header, "R", "H", "E")

	away := make([]string, 0, n+4)
	home := make([]string, 0, n+4)
	away = append(away, TeamLabel(teams.Away))
	home = append(home, TeamLabel(teams.Home))
	for i := range n {
		var inn models.Inning
		if i < len(ls.Innings) {
			inn = ls.Innings[i]
		}
		away = append(away, runs(inn.Away))
		home = append(home, runs(inn.Home))
	}
	away = append(away, teamTotals(ls.Teams.Away)...)
	home = append(home, teamTotals(ls.Teams.Home)...)

	return [][]string{header, away, home}
}

// TeamLabel returns the short label of a team reference.
func TeamLabel(t models.Team) string {
	switch {
	case t.Abbreviation != "":
		return t.Abbreviation
	case t.TeamName != "":
		return t.TeamName
	case t.Name != "":
		return t.Name
	default:
		return Unknown
	}
}

func runs(l models.InningLine) string {
	if l.Runs == nil {
		return Placeholder
	}
	return strconv.Itoa(*l.Runs)
}

func teamTotals(t models.TeamLine) []string {
	return []string{strconv.Itoa(t.Runs), strconv.Itoa(t.Hits), strconv.Itoa(t.Errors)}
}
