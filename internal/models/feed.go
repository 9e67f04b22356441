// Package models defines the data shapes exchanged with the MLB Stats API and the
// normalized at-bat entities built from them.
//
// Feed types mirror the upstream JSON. Anything the API may omit (before first
// pitch, on in-progress plays, on non-scoring plays) is a pointer or a nil-able
// collection, and every accessor on those types returns a default instead of
// failing. Callers never need to nil-check a substructure they only read.
package models

import "strconv"

// GameFeed is one poll's response from the live game feed endpoint.
type GameFeed struct {
	GamePk   int      `json:"gamePk"`
	GameData GameData `json:"gameData"`
	LiveData LiveData `json:"liveData"`
}

// GameData holds the reference data for a game: teams, players and status.
type GameData struct {
	Teams   GameTeams         `json:"teams"`
	Players map[string]Person `json:"players,omitempty"`
	Status  GameStatus        `json:"status"`
	Venue   *Venue            `json:"venue,omitempty"`
}

// GameTeams pairs the away and home team references.
type GameTeams struct {
	Away Team `json:"away"`
	Home Team `json:"home"`
}

// Team is a team reference as it appears in gameData and schedule responses.
type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TeamName     string `json:"teamName,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// GameStatus is the upstream game state block.
type GameStatus struct {
	AbstractGameState string `json:"abstractGameState"` // "Preview", "Live" or "Final"
	DetailedState     string `json:"detailedState"`
}

// Venue is the ballpark a game is played in.
type Venue struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Person is a player reference.
type Person struct {
	ID           int    `json:"id"`
	FullName     string `json:"fullName"`
	BoxscoreName string `json:"boxscoreName,omitempty"`
}

// LiveData holds the part of the feed that changes while a game is played.
type LiveData struct {
	Plays     *Plays     `json:"plays,omitempty"`
	Linescore *Linescore `json:"linescore,omitempty"`
	Boxscore  *Boxscore  `json:"boxscore,omitempty"`
}

// Plays is every play of the game so far plus a pointer to the one in progress.
type Plays struct {
	AllPlays    []Play `json:"allPlays,omitempty"`
	CurrentPlay *Play  `json:"currentPlay,omitempty"`
}

// AllPlays returns the feed's play list, or nil when the feed has none yet.
func (f *GameFeed) AllPlays() []Play {
	if f == nil || f.LiveData.Plays == nil {
		return nil
	}
	return f.LiveData.Plays.AllPlays
}

// CurrentAtBatIndex returns the at-bat index of the current play, or 0 when
// the feed has no current play.
func (f *GameFeed) CurrentAtBatIndex() int {
	if f == nil || f.LiveData.Plays == nil || f.LiveData.Plays.CurrentPlay == nil {
		return 0
	}
	return f.LiveData.Plays.CurrentPlay.About.AtBatIndex
}

// Play is a single plate appearance as reported by the feed.
type Play struct {
	Result     Result      `json:"result"`
	About      About       `json:"about"`
	Count      Count       `json:"count"`
	Matchup    PlayMatchup `json:"matchup"`
	PlayEvents []Event     `json:"playEvents,omitempty"`
}

// About locates a play within the game.
type About struct {
	AtBatIndex    int    `json:"atBatIndex"`
	HalfInning    string `json:"halfInning"`
	IsTopInning   bool   `json:"isTopInning"`
	Inning        int    `json:"inning"`
	IsComplete    bool   `json:"isComplete"`
	IsScoringPlay *bool  `json:"isScoringPlay,omitempty"`
}

// Count is the ball/strike/out state.
type Count struct {
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
	Outs    int `json:"outs"`
}

// Result is the outcome of a play. Every field is absent until the play has one.
type Result struct {
	Type        *string `json:"type,omitempty"`
	Event       *string `json:"event,omitempty"`
	Description *string `json:"description,omitempty"`
	RBI         *int    `json:"rbi,omitempty"`
	AwayScore   *int    `json:"awayScore,omitempty"`
	HomeScore   *int    `json:"homeScore,omitempty"`
	IsOut       *bool   `json:"isOut,omitempty"`
}

// PlayMatchup is the batter/pitcher pairing and the runners on base after the play.
type PlayMatchup struct {
	Batter       Person  `json:"batter"`
	BatSide      Side    `json:"batSide"`
	Pitcher      Person  `json:"pitcher"`
	PitchHand    Side    `json:"pitchHand"`
	PostOnFirst  *Person `json:"postOnFirst,omitempty"`
	PostOnSecond *Person `json:"postOnSecond,omitempty"`
	PostOnThird  *Person `json:"postOnThird,omitempty"`
}

// Side is a handedness code such as "L", "R" or "S".
type Side struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Event is one entry of a play's event list: a pitch, a stolen base attempt,
// a mound visit and so on.
type Event struct {
	Index             int          `json:"index"`
	PlayID            string       `json:"playId,omitempty"`
	PitchNumber       *int         `json:"pitchNumber,omitempty"`
	IsPitch           bool         `json:"isPitch"`
	IsBaserunningPlay *bool        `json:"isBaserunningPlay,omitempty"`
	Type              string       `json:"type,omitempty"`
	Details           EventDetails `json:"details"`
	Count             *Count       `json:"count,omitempty"`
	PitchData         *PitchData   `json:"pitchData,omitempty"`
	HitData           *HitData     `json:"hitData,omitempty"`
}

// EventDetails describes what happened in an event.
type EventDetails struct {
	Description *string    `json:"description,omitempty"`
	Event       *string    `json:"event,omitempty"`
	Call        *CodeValue `json:"call,omitempty"`
	Type        *CodeValue `json:"type,omitempty"`
	IsInPlay    *bool      `json:"isInPlay,omitempty"`
	IsStrike    *bool      `json:"isStrike,omitempty"`
	IsBall      *bool      `json:"isBall,omitempty"`
}

// CodeValue is the API's common {code, description} pair.
type CodeValue struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// PitchData carries tracking data for a pitch.
type PitchData struct {
	StartSpeed       *float64          `json:"startSpeed,omitempty"`
	StrikeZoneTop    *float64          `json:"strikeZoneTop,omitempty"`
	StrikeZoneBottom *float64          `json:"strikeZoneBottom,omitempty"`
	Coordinates      *PitchCoordinates `json:"coordinates,omitempty"`
}

// PitchCoordinates is the pitch location as it crossed the plate, in feet.
type PitchCoordinates struct {
	PX *float64 `json:"pX,omitempty"`
	PZ *float64 `json:"pZ,omitempty"`
}

// HitData carries batted-ball data.
type HitData struct {
	LaunchSpeed *float64 `json:"launchSpeed,omitempty"`
	LaunchAngle *float64 `json:"launchAngle,omitempty"`
	TotalDist   *float64 `json:"totalDistance,omitempty"`
}

// Linescore is the per-inning runs/hits/errors summary.
type Linescore struct {
	CurrentInning        int            `json:"currentInning"`
	CurrentInningOrdinal string         `json:"currentInningOrdinal,omitempty"`
	InningState          string         `json:"inningState,omitempty"`
	IsTopInning          bool           `json:"isTopInning"`
	ScheduledInnings     int            `json:"scheduledInnings,omitempty"`
	Innings              []Inning       `json:"innings,omitempty"`
	Teams                LinescoreTeams `json:"teams"`
	Offense              *Offense       `json:"offense,omitempty"`
	Balls                int            `json:"balls"`
	Strikes              int            `json:"strikes"`
	Outs                 int            `json:"outs"`
}

// Inning is one inning's line for both teams.
type Inning struct {
	Num  int        `json:"num"`
	Away InningLine `json:"away"`
	Home InningLine `json:"home"`
}

// InningLine is a single half inning's runs, hits and errors. Runs is absent
// for a half inning that has not been played.
type InningLine struct {
	Runs       *int `json:"runs,omitempty"`
	Hits       int  `json:"hits"`
	Errors     int  `json:"errors"`
	LeftOnBase int  `json:"leftOnBase"`
}

// LinescoreTeams holds the game totals for both teams.
type LinescoreTeams struct {
	Away TeamLine `json:"away"`
	Home TeamLine `json:"home"`
}

// TeamLine is a team's runs, hits and errors for the game.
type TeamLine struct {
	Runs       int `json:"runs"`
	Hits       int `json:"hits"`
	Errors     int `json:"errors"`
	LeftOnBase int `json:"leftOnBase"`
}

// Offense lists the batters due up after the current one.
type Offense struct {
	Batter *Person `json:"batter,omitempty"`
	OnDeck *Person `json:"onDeck,omitempty"`
	InHole *Person `json:"inHole,omitempty"`
}

// Boxscore is the per-team and per-player stat block.
type Boxscore struct {
	Teams BoxscoreTeams  `json:"teams"`
	Info  []BoxscoreNote `json:"info,omitempty"`
}

// BoxscoreTeams pairs the away and home box score blocks.
type BoxscoreTeams struct {
	Away BoxscoreTeam `json:"away"`
	Home BoxscoreTeam `json:"home"`
}

// BoxscoreTeam is one team's aggregate and per-player stats. Players is keyed
// by "ID" followed by the player id, for example "ID660271".
type BoxscoreTeam struct {
	Team      Team                      `json:"team"`
	TeamStats StatBlock                 `json:"teamStats"`
	Players   map[string]BoxscorePlayer `json:"players,omitempty"`
	Batters   []int                     `json:"batters,omitempty"`
	Pitchers  []int                     `json:"pitchers,omitempty"`
}

// BoxscorePlayer is a player's box score entry.
type BoxscorePlayer struct {
	Person       Person     `json:"person"`
	Position     *Position  `json:"position,omitempty"`
	BattingOrder string     `json:"battingOrder,omitempty"`
	Stats        StatBlock  `json:"stats"`
	SeasonStats  *StatBlock `json:"seasonStats,omitempty"`
}

// Position is a fielding position reference.
type Position struct {
	Code         string `json:"code"`
	Abbreviation string `json:"abbreviation"`
}

// StatBlock groups batting and pitching lines.
type StatBlock struct {
	Batting  *BattingStats  `json:"batting,omitempty"`
	Pitching *PitchingStats `json:"pitching,omitempty"`
}

// BattingStats is a batting line.
type BattingStats struct {
	AtBats      int    `json:"atBats"`
	Runs        int    `json:"runs"`
	Hits        int    `json:"hits"`
	RBI         int    `json:"rbi"`
	BaseOnBalls int    `json:"baseOnBalls"`
	StrikeOuts  int    `json:"strikeOuts"`
	HomeRuns    int    `json:"homeRuns"`
	LeftOnBase  int    `json:"leftOnBase"`
	Avg         string `json:"avg,omitempty"`
	OPS         string `json:"ops,omitempty"`
}

// PitchingStats is a pitching line.
type PitchingStats struct {
	InningsPitched  string `json:"inningsPitched,omitempty"`
	Hits            int    `json:"hits"`
	Runs            int    `json:"runs"`
	EarnedRuns      int    `json:"earnedRuns"`
	BaseOnBalls     int    `json:"baseOnBalls"`
	StrikeOuts      int    `json:"strikeOuts"`
	HomeRuns        int    `json:"homeRuns"`
	NumberOfPitches int    `json:"numberOfPitches"`
	ERA             string `json:"era,omitempty"`
}

// BoxscoreNote is a labeled game note such as weather or attendance.
type BoxscoreNote struct {
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
}

// PlayerKey returns the box score map key for a player id.
func PlayerKey(id int) string {
	return "ID" + strconv.Itoa(id)
}
