package board

import (
	"time"

	"github.com/oddsradar/oddsradar/internal/domain/fixture"
)

// LeagueAll disables league filtering.
const LeagueAll = "all"

// SelectionReason names the rule that auto-selected a row.
type SelectionReason string

const (
	ReasonNone       SelectionReason = ""
	ReasonGoals      SelectionReason = "goals"
	ReasonResultGoal SelectionReason = "result+goal"
)

// Row is one fixture joined with its extracted odds, ready for display or
// export. Odds fields stay nil/empty when the bookmaker offered nothing.
type Row struct {
	Fixture      fixture.Fixture
	KickoffLocal string

	HomeWin *float64
	Draw    *float64
	AwayWin *float64

	HomeOverPrice   *float64
	HomeOverLabel   string
	HomeOverCaption string

	AwayOverPrice   *float64
	AwayOverLabel   string
	AwayOverCaption string

	AutoSelected    bool
	SelectionReason SelectionReason
}

// HasGoalOdds reports whether both team over-goals markets were quoted.
func (r Row) HasGoalOdds() bool {
	return r.HomeOverPrice != nil && r.AwayOverPrice != nil
}

// Kickoff times are displayed in Brasília local time. The provider's odds
// product predates DST abolition edge cases, so a fixed UTC-3 offset is used.
var displayZone = time.FixedZone("America/Sao_Paulo", -3*60*60)

// formatKickoff renders the display time for one fixture. An unparsed
// kickoff falls back to the raw provider string unmodified.
func formatKickoff(kickoffAt time.Time, raw string) string {
	if kickoffAt.IsZero() {
		return raw
	}
	return kickoffAt.In(displayZone).Format("15:04")
}
