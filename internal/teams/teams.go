// Package teams holds the read-only table of MLB clubs used to shorten names
// and group schedule entries by division.
package teams

import (
	"slices"
	"strings"
)

// Team is one MLB club.
type Team struct {
	ID           int
	Abbreviation string
	Name         string
	League       string
	Division     string
}

// Directory is an immutable lookup table of teams. Build it once with
// NewDirectory or Default and share the pointer.
type Directory struct {
	byID     map[int]Team
	byAbbrev map[string]Team
	order    []Team
}

// NewDirectory indexes the given teams. Later entries win on duplicate ids.
func NewDirectory(list []Team) *Directory {
	d := &Directory{
		byID:     make(map[int]Team, len(list)),
		byAbbrev: make(map[string]Team, len(list)),
	}
	pos := make(map[int]int, len(list))
	for _, t := range list {
		if i, dup := pos[t.ID]; dup {
			delete(d.byAbbrev, strings.ToUpper(d.order[i].Abbreviation))
			d.order[i] = t
		} else {
			pos[t.ID] = len(d.order)
			d.order = append(d.order, t)
		}
		d.byID[t.ID] = t
		d.byAbbrev[strings.ToUpper(t.Abbreviation)] = t
	}
	return d
}

// Default builds the directory of the thirty current clubs. Call it once and
// share the result.
func Default() *Directory {
	return NewDirectory([]Team{
		{110, "BAL", "Baltimore Orioles", "AL", "AL East"},
		{111, "BOS", "Boston Red Sox", "AL", "AL East"},
		{147, "NYY", "New York Yankees", "AL", "AL East"},
		{139, "TB", "Tampa Bay Rays", "AL", "AL East"},
		{141, "TOR", "Toronto Blue Jays", "AL", "AL East"},

		{145, "CWS", "Chicago White Sox", "AL", "AL Central"},
		{114, "CLE", "Cleveland Guardians", "AL", "AL Central"},
		{116, "DET", "Detroit Tigers", "AL", "AL Central"},
		{118, "KC", "Kansas City Royals", "AL", "AL Central"},
		{142, "MIN", "Minnesota Twins", "AL", "AL Central"},

		{117, "HOU", "Houston Astros", "AL", "AL West"},
		{108, "LAA", "Los Angeles Angels", "AL", "AL West"},
		{133, "ATH", "Athletics", "AL", "AL West"},
		{136, "SEA", "Seattle Mariners", "AL", "AL West"},
		{140, "TEX", "Texas Rangers", "AL", "AL West"},

		{144, "ATL", "Atlanta Braves", "NL", "NL East"},
		{146, "MIA", "Miami Marlins", "NL", "NL East"},
		{121, "NYM", "New York Mets", "NL", "NL East"},
		{143, "PHI", "Philadelphia Phillies", "NL", "NL East"},
		{120, "WSH", "Washington Nationals", "NL", "NL East"},

		{112, "CHC", "Chicago Cubs", "NL", "NL Central"},
		{113, "CIN", "Cincinnati Reds", "NL", "NL Central"},
		{158, "MIL", "Milwaukee Brewers", "NL", "NL Central"},
		{134, "PIT", "Pittsburgh Pirates", "NL", "NL Central"},
		{138, "STL", "St. Louis Cardinals", "NL", "NL Central"},

		{109, "AZ", "Arizona Diamondbacks", "NL", "NL West"},
		{115, "COL", "Colorado Rockies", "NL", "NL West"},
		{119, "LAD", "Los Angeles Dodgers", "NL", "NL West"},
		{135, "SD", "San Diego Padres", "NL", "NL West"},
		{137, "SF", "San Francisco Giants", "NL", "NL West"},
	})
}

// Lookup returns the team with the given id.
func (d *Directory) Lookup(id int) (Team, bool) {
	t, ok := d.byID[id]
	return t, ok
}

// ByAbbreviation finds a team by abbreviation, case-insensitively.
func (d *Directory) ByAbbreviation(abbr string) (Team, bool) {
	t, ok := d.byAbbrev[strings.ToUpper(strings.TrimSpace(abbr))]
	return t, ok
}

// Abbreviation returns the short name of a team. Unknown ids fall back to the
// first three letters of name, or "TBD" when name is empty.
func (d *Directory) Abbreviation(id int, name string) string {
	if t, ok := d.byID[id]; ok {
		return t.Abbreviation
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "TBD"
	}
	r := []rune(strings.ToUpper(name))
	return string(r[:min(3, len(r))])
}

// Division lists the teams of one division, e.g. "AL West".
func (d *Directory) Division(name string) []Team {
	var out []Team
	for _, t := range d.order {
		if t.Division == name {
			out = append(out, t)
		}
	}
	return out
}

// Divisions returns the division names in table order.
func (d *Directory) Divisions() []string {
	var out []string
	for _, t := range d.order {
		if !slices.Contains(out, t.Division) {
			out = append(out, t.Division)
		}
	}
	return out
}

// Len returns the number of teams.
func (d *Directory) Len() int { return len(d.order) }
