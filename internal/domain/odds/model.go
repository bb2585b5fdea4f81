package odds

import (
	"strconv"
	"strings"
)

// MarketID identifies a betting market in the provider's catalog.
type MarketID int

const (
	MarketMatchWinner   MarketID = 1
	MarketHomeOverGoals MarketID = 16
	MarketAwayOverGoals MarketID = 17
)

func (m MarketID) Valid() bool {
	switch m {
	case MarketMatchWinner, MarketHomeOverGoals, MarketAwayOverGoals:
		return true
	default:
		return false
	}
}

func (m MarketID) String() string {
	switch m {
	case MarketMatchWinner:
		return "match_winner"
	case MarketHomeOverGoals:
		return "home_over_goals"
	case MarketAwayOverGoals:
		return "away_over_goals"
	default:
		return "market_" + strconv.Itoa(int(m))
	}
}

// Payload is one fixture's odds entry as returned by the provider,
// already de-paginated by the fetch layer.
type Payload struct {
	FixtureID  int64
	Bookmakers []Bookmaker
}

type Bookmaker struct {
	ID   int64
	Name string
	Bets []Bet
}

type Bet struct {
	ID     int
	Name   string
	Values []BetValue
}

// BetValue carries the provider's raw label and price token for one outcome.
type BetValue struct {
	Value string
	Odd   string
}

// ParsePrice converts a provider price token into a number exactly once at
// the extraction boundary. Empty or non-numeric tokens yield nil.
func ParsePrice(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
