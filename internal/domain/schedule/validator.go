package schedule

import (
	"fmt"
	"sort"
	"strings"
)

const (
	ViolationOpponentCount = "opponent_count"
	ViolationDuplicatePair = "duplicate_pair"
)

// Violation is one concrete integrity failure found in a schedule.
type Violation struct {
	Kind string

	// Set for ViolationOpponentCount.
	Team     string
	Expected int
	Actual   int

	// Set for ViolationDuplicatePair.
	Team1 string
	Team2 string
	Weeks []int
}

func (v Violation) String() string {
	switch v.Kind {
	case ViolationOpponentCount:
		return fmt.Sprintf("team %s meets %d opponents, expected %d", v.Team, v.Actual, v.Expected)
	case ViolationDuplicatePair:
		weeks := make([]string, len(v.Weeks))
		for i, w := range v.Weeks {
			weeks[i] = fmt.Sprintf("%d", w)
		}
		return fmt.Sprintf("pair %s vs %s scheduled more than once (weeks %s)", v.Team1, v.Team2, strings.Join(weeks, ", "))
	default:
		return "unknown violation"
	}
}

// Report is the outcome of validating a schedule. A schedule that fails
// validation must not be consumed by the standings engine.
type Report struct {
	Valid      bool
	Violations []Violation
}

// Validate recomputes, per team, the set of opponents encountered and
// checks the round-robin contract: every team meets exactly N-1
// opponents and no unordered pair recurs. The bye placeholder is
// excluded on both counts. Validate is a pure check with no side
// effects.
func Validate(teams []string, s Schedule) Report {
	real := make([]string, 0, len(teams))
	for _, name := range teams {
		if name == ByeTeam {
			continue
		}
		real = append(real, name)
	}

	opponents := make(map[string]map[string]struct{}, len(real))
	for _, name := range real {
		opponents[name] = make(map[string]struct{})
	}

	weeksByPair := make(map[string][]int)
	pairOrder := make([]string, 0)
	for _, f := range s.Fixtures {
		if f.Team1 == ByeTeam || f.Team2 == ByeTeam {
			continue
		}
		key := PairKey(f.Team1, f.Team2)
		if _, ok := weeksByPair[key]; !ok {
			pairOrder = append(pairOrder, key)
		}
		weeksByPair[key] = append(weeksByPair[key], f.Week)

		if set, ok := opponents[f.Team1]; ok {
			set[f.Team2] = struct{}{}
		}
		if set, ok := opponents[f.Team2]; ok {
			set[f.Team1] = struct{}{}
		}
	}

	var violations []Violation
	for _, key := range pairOrder {
		weeks := weeksByPair[key]
		if len(weeks) < 2 {
			continue
		}
		sides := strings.SplitN(key, "|", 2)
		sorted := append([]int(nil), weeks...)
		sort.Ints(sorted)
		violations = append(violations, Violation{
			Kind:  ViolationDuplicatePair,
			Team1: sides[0],
			Team2: sides[1],
			Weeks: sorted,
		})
	}

	expected := len(real) - 1
	for _, name := range real {
		actual := len(opponents[name])
		if actual != expected {
			violations = append(violations, Violation{
				Kind:     ViolationOpponentCount,
				Team:     name,
				Expected: expected,
				Actual:   actual,
			})
		}
	}

	return Report{Valid: len(violations) == 0, Violations: violations}
}
