package board

import "strings"

const (
	minResultPrice = 1.5
	minGoalPrice   = 1.5
	anyGoalMark    = "0.5"
)

// Evaluate applies the betting-candidate heuristic to one row. Rules are
// checked in fixed order and the first hit wins:
//
//  1. home favored to win plus the away side priced to score,
//  2. the mirror of 1 with sides swapped,
//  3. both sides priced to score.
//
// All price comparisons are inclusive at 1.5. A missing price or label makes
// the rule false; Evaluate never fails and is a pure function of its input.
func Evaluate(row Row) (bool, SelectionReason) {
	if favoredWithOpponentGoal(row.HomeWin, row.AwayOverLabel, row.AwayOverPrice) {
		return true, ReasonResultGoal
	}
	if favoredWithOpponentGoal(row.AwayWin, row.HomeOverLabel, row.HomeOverPrice) {
		return true, ReasonResultGoal
	}
	if sideScores(row.HomeOverLabel, row.HomeOverPrice) && sideScores(row.AwayOverLabel, row.AwayOverPrice) {
		return true, ReasonGoals
	}
	return false, ReasonNone
}

func favoredWithOpponentGoal(winPrice *float64, overLabel string, overPrice *float64) bool {
	if winPrice == nil || *winPrice < minResultPrice {
		return false
	}
	return sideScores(overLabel, overPrice)
}

func sideScores(overLabel string, overPrice *float64) bool {
	if !strings.Contains(overLabel, anyGoalMark) {
		return false
	}
	return overPrice != nil && *overPrice >= minGoalPrice
}
