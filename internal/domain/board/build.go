package board

import (
	"strings"

	"github.com/oddsradar/oddsradar/internal/domain/fixture"
	"github.com/oddsradar/oddsradar/internal/domain/odds"
)

// BuildOptions controls the fixture/odds merge.
type BuildOptions struct {
	// League keeps only fixtures whose league name matches exactly.
	// Empty or LeagueAll keeps everything.
	League string
	// RequireGoalOdds drops rows missing either team over-goals price.
	RequireGoalOdds bool
	// Warn receives non-fatal per-fixture problems. May be nil.
	Warn func(fixtureID int64, reason string)
}

// BuildRows joins a day's fixtures with their odds payloads into display-ready
// rows. Input order is preserved; fixtures without odds keep nil odds fields;
// postponed, cancelled and abandoned fixtures are dropped; malformed fixture
// entries are skipped with a warning and never abort the batch. Empty inputs
// yield an empty slice.
func BuildRows(fixtures []fixture.Fixture, payloads []odds.Payload, opts BuildOptions) []Row {
	if len(fixtures) == 0 {
		return []Row{}
	}

	// Last write wins on duplicate fixture ids; duplicates are not expected
	// but must not break the merge.
	byFixture := make(map[int64]odds.Payload, len(payloads))
	for _, payload := range payloads {
		if payload.FixtureID <= 0 {
			continue
		}
		byFixture[payload.FixtureID] = payload
	}

	filterLeague := normalizedLeagueFilter(opts.League)
	out := make([]Row, 0, len(fixtures))

	for _, item := range fixtures {
		// Filter before any odds work.
		if filterLeague != "" && item.LeagueName != filterLeague {
			continue
		}
		if !fixture.IsPlayableStatus(item.Status) {
			continue
		}

		if reason, ok := validateFixture(item); !ok {
			if opts.Warn != nil {
				opts.Warn(item.ID, reason)
			}
			continue
		}

		row := Row{
			Fixture:      item,
			KickoffLocal: formatKickoff(item.KickoffAt, item.KickoffRaw),
		}

		if payload, ok := byFixture[item.ID]; ok {
			applyOdds(&row, &payload)
		}

		if opts.RequireGoalOdds && !row.HasGoalOdds() {
			continue
		}

		row.AutoSelected, row.SelectionReason = Evaluate(row)
		out = append(out, row)
	}

	return out
}

func normalizedLeagueFilter(league string) string {
	trimmed := strings.TrimSpace(league)
	if trimmed == "" || strings.EqualFold(trimmed, LeagueAll) {
		return ""
	}
	return trimmed
}

func validateFixture(item fixture.Fixture) (string, bool) {
	switch {
	case item.ID <= 0:
		return "missing fixture id", false
	case item.LeagueName == "":
		return "missing league name", false
	case item.HomeTeamName == "" || item.AwayTeamName == "":
		return "missing team names", false
	default:
		return "", true
	}
}

func applyOdds(row *Row, payload *odds.Payload) {
	if winner := odds.Extract(payload, odds.MarketMatchWinner).Winner; winner != nil {
		row.HomeWin = winner.Home
		row.Draw = winner.Draw
		row.AwayWin = winner.Away
	}

	if over := odds.Extract(payload, odds.MarketHomeOverGoals).Over; over != nil {
		row.HomeOverPrice = over.Price
		row.HomeOverLabel = over.Label
		row.HomeOverCaption = over.Caption
	}

	if over := odds.Extract(payload, odds.MarketAwayOverGoals).Over; over != nil {
		row.AwayOverPrice = over.Price
		row.AwayOverLabel = over.Label
		row.AwayOverCaption = over.Caption
	}
}
