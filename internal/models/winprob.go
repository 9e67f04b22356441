package models

// WinProbabilityAtBat is one element of the win probability document. The
// endpoint returns the list ordered by at-bat index.
type WinProbabilityAtBat struct {
	AtBatIndex                  int      `json:"atBatIndex"`
	About                       WPAbout  `json:"about"`
	HomeTeamWinProbability      float64  `json:"homeTeamWinProbability"`
	AwayTeamWinProbability      float64  `json:"awayTeamWinProbability"`
	HomeTeamWinProbabilityAdded float64  `json:"homeTeamWinProbabilityAdded"`
	LeverageIndex               *float64 `json:"leverageIndex,omitempty"`
}

// WPAbout is the inning context of a win probability element.
type WPAbout struct {
	Inning      int  `json:"inning"`
	IsTopInning bool `json:"isTopInning"`
}

// WinProbabilitySample is the normalized win probability after one at-bat.
// Probabilities are percentages in the range 0-100.
type WinProbabilitySample struct {
	AtBatIndex    int     `json:"at_bat_index"`
	HomeWinPct    float64 `json:"home_win_pct"`
	AwayWinPct    float64 `json:"away_win_pct"`
	HomeAddedPct  float64 `json:"home_added_pct"`
	LeverageIndex float64 `json:"leverage_index"`
	Inning        int     `json:"inning"`
	IsTopInning   bool    `json:"is_top_inning"`
}

// NeutralSample is the sample shown before any win probability data exists.
var NeutralSample = WinProbabilitySample{
	HomeWinPct:  50,
	AwayWinPct:  50,
	Inning:      1,
	IsTopInning: true,
}

// SampleFrom converts an upstream element into a sample. A missing leverage
// index becomes zero.
func SampleFrom(wp WinProbabilityAtBat) WinProbabilitySample {
	var li float64
	if wp.LeverageIndex != nil {
		li = *wp.LeverageIndex
	}
	return WinProbabilitySample{
		AtBatIndex:    wp.AtBatIndex,
		HomeWinPct:    wp.HomeTeamWinProbability,
		AwayWinPct:    wp.AwayTeamWinProbability,
		HomeAddedPct:  wp.HomeTeamWinProbabilityAdded,
		LeverageIndex: li,
		Inning:        wp.About.Inning,
		IsTopInning:   wp.About.IsTopInning,
	}
}
