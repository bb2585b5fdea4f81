package fixture

import (
	"strings"
	"time"
)

const (
	StatusNotStarted = "Not Started"
	StatusPostponed  = "Match Postponed"
	StatusCancelled  = "Match Cancelled"
)

// Fixture is one scheduled match as parsed from the provider's fixtures
// response. Immutable once built; it lives only for one request cycle.
type Fixture struct {
	ID           int64
	LeagueID     int64
	LeagueName   string
	Country      string
	Season       int
	KickoffAt    time.Time
	KickoffRaw   string
	HomeTeamID   int64
	AwayTeamID   int64
	HomeTeamName string
	AwayTeamName string
	Status       string
}

func NormalizeStatus(value string) string {
	status := strings.TrimSpace(value)
	if status == "" {
		return StatusNotStarted
	}
	return status
}

func IsPlayableStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusPostponed, StatusCancelled, "Match Abandoned":
		return false
	default:
		return true
	}
}
