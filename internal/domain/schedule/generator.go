package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fplcups/minileague/internal/domain/team"
)

var (
	ErrTooFewTeams   = errors.New("at least two teams are required")
	ErrDuplicateTeam = errors.New("duplicate team name")
)

// Generate builds a single round-robin schedule for the given teams
// using the circle method: team[0] stays fixed while the rest rotate one
// position per round, which guarantees every unordered pair meets
// exactly once across N-1 rounds.
//
// An odd team count gets a synthetic bye appended; fixtures against the
// bye are dropped from the output but their round keeps its week number,
// so weeks stay contiguous from 1.
func Generate(names []string) (Schedule, error) {
	teams := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := team.Normalize(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return Schedule{}, fmt.Errorf("%w: %s", ErrDuplicateTeam, name)
		}
		seen[key] = struct{}{}
		teams = append(teams, name)
	}

	if len(teams) < 2 {
		return Schedule{}, fmt.Errorf("%w: got %d", ErrTooFewTeams, len(teams))
	}

	working := teams
	if len(working)%2 != 0 {
		working = append(append(make([]string, 0, len(working)+1), working...), ByeTeam)
	}

	rounds := len(working) - 1
	matchesPerRound := len(working) / 2
	fixed := working[0]
	rotating := working[1:]

	fixtures := make([]Fixture, 0, rounds*matchesPerRound)
	for round := 0; round < rounds; round++ {
		rotated := make([]string, 0, len(rotating))
		rotated = append(rotated, rotating[round:]...)
		rotated = append(rotated, rotating[:round]...)

		for i := 0; i < matchesPerRound; i++ {
			var a, b string
			if i == 0 {
				a, b = fixed, rotated[len(rotated)-1]
			} else {
				a, b = rotated[i-1], rotated[len(rotated)-1-i]
			}
			if a == ByeTeam || b == ByeTeam {
				continue
			}
			fixtures = append(fixtures, Fixture{Week: round + 1, Team1: a, Team2: b})
		}
	}

	return Schedule{Teams: teams, Fixtures: fixtures}, nil
}
