package schedule

import "strings"

// ByeTeam is the synthetic placeholder appended when the team count is
// odd. Fixtures against it never appear in a generated schedule; the
// round still consumes its week number.
const ByeTeam = "BYE"

// Fixture pairs two teams in a given week. The pair is unordered for
// identity purposes; the Team1/Team2 ordering only decides the sign of
// the score differential.
type Fixture struct {
	Week  int
	Team1 string
	Team2 string
}

func (f Fixture) Involves(name string) bool {
	return f.Team1 == name || f.Team2 == name
}

// Pairs reports whether the fixture is the meeting of a and b,
// regardless of side.
func (f Fixture) Pairs(a, b string) bool {
	return (f.Team1 == a && f.Team2 == b) || (f.Team1 == b && f.Team2 == a)
}

// PairKey is the canonical identity of an unordered pairing.
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "|" + b
}

// Schedule is the complete fixture set of one cup. It is generated once
// at cup setup and read-only afterwards; regenerating it would renumber
// fixtures and invalidate recorded results.
type Schedule struct {
	Teams    []string
	Fixtures []Fixture
}

// Rounds returns the number of distinct weeks the schedule spans.
func (s Schedule) Rounds() int {
	weeks := make(map[int]struct{}, len(s.Fixtures))
	for _, f := range s.Fixtures {
		weeks[f.Week] = struct{}{}
	}
	return len(weeks)
}

func (s Schedule) FixturesForWeek(week int) []Fixture {
	out := make([]Fixture, 0, len(s.Teams)/2)
	for _, f := range s.Fixtures {
		if f.Week == week {
			out = append(out, f)
		}
	}
	return out
}

// WithWeekOffset returns a copy with every fixture week shifted by
// offset. Generation numbers rounds 1..N-1; the cup that owns the
// schedule maps them onto its absolute week range.
func (s Schedule) WithWeekOffset(offset int) Schedule {
	out := Schedule{
		Teams:    append([]string(nil), s.Teams...),
		Fixtures: make([]Fixture, len(s.Fixtures)),
	}
	for i, f := range s.Fixtures {
		f.Week += offset
		out.Fixtures[i] = f
	}
	return out
}
