package usecase

import (
	"sort"

	"github.com/fplcups/minileague/internal/domain/cup"
	"github.com/fplcups/minileague/internal/domain/schedule"
	"github.com/fplcups/minileague/internal/domain/scoring"
)

// tiebreakContext carries the read-only inputs the resolver needs. The
// resolver is a pure function over it: it never mutates rows or the
// table and always returns a total order covering exactly the group it
// was given.
type tiebreakContext struct {
	fixtures    []schedule.Fixture
	scores      *scoring.Table
	currentWeek int
}

// resolveGroup orders one equal-cupPoints group. Two-team groups get
// the full head-to-head cascade; larger groups fall back to ascending
// total hits then descending goal difference, a deliberately weaker
// policy inherited from the competition rules.
func resolveGroup(group []cup.StandingsRow, tc tiebreakContext) []cup.StandingsRow {
	if len(group) <= 1 {
		return append([]cup.StandingsRow(nil), group...)
	}
	if len(group) == 2 {
		return resolvePair(group[0], group[1], tc)
	}

	out := append([]cup.StandingsRow(nil), group...)
	sort.SliceStable(out, func(i, j int) bool {
		hi := tc.scores.TotalHitsBefore(out[i].Team, tc.currentWeek)
		hj := tc.scores.TotalHitsBefore(out[j].Team, tc.currentWeek)
		if hi != hj {
			return hi < hj // fewer hits ranks higher
		}
		return out[i].GoalDifference > out[j].GoalDifference
	})
	return out
}

// resolvePair applies the two-team cascade: head-to-head result, then
// head-to-head raw score, then cumulative hits, then goal difference.
// On a full tie the input order is preserved.
func resolvePair(a, b cup.StandingsRow, tc tiebreakContext) []cup.StandingsRow {
	if f, ok := tc.headToHead(a.Team, b.Team); ok {
		aPoints := tc.scores.Points(a.Team, f.Week)
		bPoints := tc.scores.Points(b.Team, f.Week)

		outcome, _ := cup.Result(aPoints, bPoints)
		switch outcome {
		case cup.OutcomeTeam1Win:
			return []cup.StandingsRow{a, b}
		case cup.OutcomeTeam2Win:
			return []cup.StandingsRow{b, a}
		}

		// Drawn head-to-head: the higher raw score that week wins.
		if aPoints > bPoints {
			return []cup.StandingsRow{a, b}
		}
		if bPoints > aPoints {
			return []cup.StandingsRow{b, a}
		}
	}

	aHits := tc.scores.TotalHitsBefore(a.Team, tc.currentWeek)
	bHits := tc.scores.TotalHitsBefore(b.Team, tc.currentWeek)
	if aHits != bHits {
		if aHits < bHits {
			return []cup.StandingsRow{a, b}
		}
		return []cup.StandingsRow{b, a}
	}

	if b.GoalDifference > a.GoalDifference {
		return []cup.StandingsRow{b, a}
	}
	return []cup.StandingsRow{a, b}
}

// headToHead finds the single fixture pairing the two teams among weeks
// strictly before the current week. At most one exists in a round-robin
// cup.
func (tc tiebreakContext) headToHead(a, b string) (schedule.Fixture, bool) {
	for _, f := range tc.fixtures {
		if f.Week >= tc.currentWeek {
			continue
		}
		if f.Pairs(a, b) {
			return f, true
		}
	}
	return schedule.Fixture{}, false
}
