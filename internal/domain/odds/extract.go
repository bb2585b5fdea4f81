package odds

import (
	"fmt"
	"math"
	"strings"
)

// overThresholds is the fixed preference order for team over-goals markets:
// the lowest available threshold wins.
var overThresholds = []float64{0.5, 1.0, 1.5, 2.0, 2.5}

// MatchWinnerOdds holds the 1X2 prices for one fixture. Fields stay nil when
// the bookmaker did not quote that outcome.
type MatchWinnerOdds struct {
	Home *float64
	Draw *float64
	Away *float64
}

// OverGoalsOdds is the selected entry of a team over-goals market: the price,
// the matched provider label (e.g. "Over 0.5") and a reader-facing caption.
// Price is nil when the matched entry's odd did not parse.
type OverGoalsOdds struct {
	Price   *float64
	Label   string
	Caption string
}

// Extraction is the result of extracting one market from a payload. Exactly
// one of Winner/Over is set, matching the requested market.
type Extraction struct {
	Winner *MatchWinnerOdds
	Over   *OverGoalsOdds
}

// Extract pulls the normalized values for one market out of a fixture's odds
// payload. Only the first bookmaker entry is consulted; this mirrors the
// upstream request already being filtered to a single bookmaker, so extra
// entries are not expected (and are ignored when present). Absent data of any
// kind returns an empty extraction, never an error.
func Extract(payload *Payload, market MarketID) Extraction {
	bet, ok := firstBookmakerBet(payload, market)
	if !ok {
		return Extraction{}
	}

	switch market {
	case MarketMatchWinner:
		winner := extractMatchWinner(bet.Values)
		return Extraction{Winner: &winner}
	case MarketHomeOverGoals, MarketAwayOverGoals:
		over, found := extractOverGoals(bet.Values)
		if !found {
			return Extraction{}
		}
		return Extraction{Over: &over}
	default:
		return Extraction{}
	}
}

// firstBookmakerBet finds the requested market in the first bookmaker's bet
// list. The scan stops at the first matching bet id.
func firstBookmakerBet(payload *Payload, market MarketID) (Bet, bool) {
	if payload == nil || len(payload.Bookmakers) == 0 {
		return Bet{}, false
	}

	for _, bet := range payload.Bookmakers[0].Bets {
		if bet.ID == int(market) {
			return bet, true
		}
	}
	return Bet{}, false
}

func extractMatchWinner(values []BetValue) MatchWinnerOdds {
	var out MatchWinnerOdds
	for _, value := range values {
		switch value.Value {
		case "Home":
			out.Home = ParsePrice(value.Odd)
		case "Draw":
			out.Draw = ParsePrice(value.Odd)
		case "Away":
			out.Away = ParsePrice(value.Odd)
		}
	}
	return out
}

func extractOverGoals(values []BetValue) (OverGoalsOdds, bool) {
	for _, threshold := range overThresholds {
		label := overLabel(threshold)
		for _, value := range values {
			if !strings.Contains(value.Value, label) {
				continue
			}
			// The lowest matching threshold settles the market even when
			// its odd does not parse; a higher threshold never stands in.
			return OverGoalsOdds{
				Price:   ParsePrice(value.Odd),
				Label:   label,
				Caption: overCaption(threshold),
			}, true
		}
	}
	return OverGoalsOdds{}, false
}

func overLabel(threshold float64) string {
	return fmt.Sprintf("Over %.1f", threshold)
}

// overCaption spells out what clearing the threshold means: Over 0.5 is
// at least 1 goal, Over 1.5 at least 2, and so on.
func overCaption(threshold float64) string {
	goals := int(math.Floor(threshold)) + 1
	if goals == 1 {
		return "scores at least 1 goal"
	}
	return fmt.Sprintf("scores at least %d goals", goals)
}
