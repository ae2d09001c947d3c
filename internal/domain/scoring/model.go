package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// WeeklyScore is one team's result for one week: raw fantasy points
// scored and transfer hit penalties taken.
type WeeklyScore struct {
	Team   string
	Week   int
	Points int
	Hits   int
}

// Cell renders the score in the historical "points:hits" cell format.
func (s WeeklyScore) Cell() string {
	return fmt.Sprintf("%d:%d", s.Points, s.Hits)
}

// ParseCell decodes a historical "points:hits" cell. Empty, absent or
// malformed parts decode to zero; a bare number is treated as points
// with no hits. Negative values never appear in the historical store
// and parse to zero.
func ParseCell(raw string) (points, hits int) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, 0
	}

	parts := strings.SplitN(value, ":", 2)
	points = parseNonNegative(parts[0])
	if len(parts) == 2 {
		hits = parseNonNegative(parts[1])
	}
	return points, hits
}

func parseNonNegative(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// LiveRecord is one scraped row from the live feed for the in-progress
// week.
type LiveRecord struct {
	Rank        int
	TeamName    string
	TotalPoints int
	LivePoints  int
	Hits        int
}

// Table maps (team, week) to that week's score. It is assembled fresh
// for every standings request and keeps teams in insertion order so
// downstream iteration is deterministic.
type Table struct {
	order   []string
	byTeam  map[string]map[int]WeeklyScore
	maxWeek int
}

func NewTable() *Table {
	return &Table{byTeam: make(map[string]map[int]WeeklyScore)}
}

func (t *Table) Set(score WeeklyScore) {
	weeks, ok := t.byTeam[score.Team]
	if !ok {
		weeks = make(map[int]WeeklyScore)
		t.byTeam[score.Team] = weeks
		t.order = append(t.order, score.Team)
	}
	weeks[score.Week] = score
	if score.Week > t.maxWeek {
		t.maxWeek = score.Week
	}
}

// Get returns the recorded score or a zero-valued cell when the team
// has no entry for that week.
func (t *Table) Get(team string, week int) WeeklyScore {
	if weeks, ok := t.byTeam[team]; ok {
		if score, ok := weeks[week]; ok {
			return score
		}
	}
	return WeeklyScore{Team: team, Week: week}
}

func (t *Table) Points(team string, week int) int {
	return t.Get(team, week).Points
}

func (t *Table) Hits(team string, week int) int {
	return t.Get(team, week).Hits
}

// TotalHitsBefore sums a team's transfer hits over all weeks strictly
// before the given week.
func (t *Table) TotalHitsBefore(team string, week int) int {
	total := 0
	for w := 1; w < week; w++ {
		total += t.Hits(team, w)
	}
	return total
}

// Teams returns team names in insertion order.
func (t *Table) Teams() []string {
	return append([]string(nil), t.order...)
}

// MaxWeek is the highest week any score was recorded for.
func (t *Table) MaxWeek() int {
	return t.maxWeek
}
