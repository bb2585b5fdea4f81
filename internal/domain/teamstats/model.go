package teamstats

import "fmt"

// SeasonStats is one team's aggregate record for a league season, reduced to
// the figures the board displays.
type SeasonStats struct {
	TeamID        int64
	LeagueID      int64
	Season        int
	Played        int
	Wins          int
	Losses        int
	GoalsFor      int
	GoalsAgainst  int
	FailedToScore int
}

// Pair renders a home/away stat column in the board's "home - away" form.
func Pair(home, away int) string {
	return fmt.Sprintf("%d - %d", home, away)
}

// StatsPair is the per-fixture combination of both teams' season stats,
// formatted for tabular display. Missing stats render as zeros upstream.
type StatsPair struct {
	Played        string
	Wins          string
	Losses        string
	GoalsFor      string
	GoalsAgainst  string
	FailedToScore string
}

// BuildPair combines the two sides of a fixture into display columns.
func BuildPair(home, away SeasonStats) StatsPair {
	return StatsPair{
		Played:        Pair(home.Played, away.Played),
		Wins:          Pair(home.Wins, away.Wins),
		Losses:        Pair(home.Losses, away.Losses),
		GoalsFor:      Pair(home.GoalsFor, away.GoalsFor),
		GoalsAgainst:  Pair(home.GoalsAgainst, away.GoalsAgainst),
		FailedToScore: Pair(home.FailedToScore, away.FailedToScore),
	}
}
