package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fplcups/minileague/internal/domain/schedule"
	"github.com/fplcups/minileague/internal/domain/scoring"
	"github.com/fplcups/minileague/internal/domain/season"
	"github.com/fplcups/minileague/internal/platform/logging"
)

func fourTeamCup(t *testing.T) schedule.Schedule {
	t.Helper()
	sched, err := schedule.Generate([]string{"Alice", "Bob", "Cara", "Dan"})
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}
	return sched
}

func newStandingsService(sched schedule.Schedule, table *scoring.Table, current season.CurrentWeek) *StandingsService {
	scheduleRepo := &stubScheduleRepository{byCup: map[int]schedule.Schedule{1: sched}}
	scores := NewScoreService(
		&stubHistoryRepository{table: table},
		nil,
		&stubOracle{current: current},
		logging.NewNop(),
	)
	return NewStandingsService(scheduleRepo, scores, "12345", logging.NewNop())
}

func TestStandingsService_GetCup_AggregatesAndBreaksTies(t *testing.T) {
	t.Parallel()

	// Weeks for four teams: 1 Alice-Dan / Bob-Cara, 2 Alice-Bob /
	// Cara-Dan, 3 Alice-Cara / Dan-Bob. Alice wins all three; the other
	// three finish level on 2 points and are split by cumulative hits.
	table := historyTable(
		scoring.WeeklyScore{Team: "Alice", Week: 1, Points: 60},
		scoring.WeeklyScore{Team: "Dan", Week: 1, Points: 50, Hits: 2},
		scoring.WeeklyScore{Team: "Bob", Week: 1, Points: 50},
		scoring.WeeklyScore{Team: "Cara", Week: 1, Points: 49},

		scoring.WeeklyScore{Team: "Alice", Week: 2, Points: 60},
		scoring.WeeklyScore{Team: "Bob", Week: 2, Points: 40},
		scoring.WeeklyScore{Team: "Cara", Week: 2, Points: 45, Hits: 1},
		scoring.WeeklyScore{Team: "Dan", Week: 2, Points: 45},

		scoring.WeeklyScore{Team: "Alice", Week: 3, Points: 60},
		scoring.WeeklyScore{Team: "Cara", Week: 3, Points: 45},
		scoring.WeeklyScore{Team: "Dan", Week: 3, Points: 50},
		scoring.WeeklyScore{Team: "Bob", Week: 3, Points: 48},
	)

	service := newStandingsService(fourTeamCup(t), table, season.CurrentWeek{Week: 4})

	view, err := service.GetCup(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetCup error: %v", err)
	}

	if len(view.Standings) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(view.Standings))
	}
	wantOrder := []string{"Alice", "Bob", "Cara", "Dan"}
	for i, name := range wantOrder {
		if view.Standings[i].Team != name {
			t.Fatalf("position %d: got=%s want=%s", i+1, view.Standings[i].Team, name)
		}
	}

	alice := view.Standings[0]
	if alice.Played != 3 || alice.Wins != 3 || alice.CupPoints != 9 {
		t.Fatalf("unexpected leader row: %+v", alice)
	}
	if alice.GoalDifference != 45 {
		t.Fatalf("leader goal difference: got=%d want=45", alice.GoalDifference)
	}
	for _, row := range view.Standings[1:] {
		if row.CupPoints != 2 {
			t.Fatalf("expected a 3-way tie on 2 points, got %+v", row)
		}
	}

	if view.Info.Number != 1 || view.Info.CurrentWeek != 4 {
		t.Fatalf("unexpected cup info: %+v", view.Info)
	}
	if len(view.Info.Weeks) != 7 || view.Info.Weeks[0] != 1 || view.Info.Weeks[6] != 7 {
		t.Fatalf("unexpected cup weeks: %v", view.Info.Weeks)
	}
}

func TestStandingsService_GetCup_ScheduleViewMidCup(t *testing.T) {
	t.Parallel()

	table := historyTable(
		scoring.WeeklyScore{Team: "Alice", Week: 1, Points: 60},
		scoring.WeeklyScore{Team: "Dan", Week: 1, Points: 50},
		scoring.WeeklyScore{Team: "Bob", Week: 1, Points: 50},
		scoring.WeeklyScore{Team: "Cara", Week: 1, Points: 49},
	)

	service := newStandingsService(fourTeamCup(t), table, season.CurrentWeek{Week: 2, DeadlinePassed: false})

	view, err := service.GetCup(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetCup error: %v", err)
	}

	if len(view.Schedule) != 2 {
		t.Fatalf("expected weeks 1 and 2, got %d entries", len(view.Schedule))
	}

	week1 := view.Schedule[0]
	if week1.Week != 1 || week1.IsCurrent {
		t.Fatalf("unexpected first week entry: %+v", week1)
	}
	var found bool
	for _, m := range week1.Matches {
		if m.Team1 == "Alice" && m.Team2 == "Dan" {
			found = true
			if !m.Played || m.Result != "60-50 (Win Alice)" {
				t.Fatalf("unexpected result: %+v", m)
			}
		}
		if m.Team1 == "Bob" && m.Team2 == "Cara" {
			if m.Result != "50-49 (Draw)" {
				t.Fatalf("narrow margin must render as a draw: %+v", m)
			}
		}
	}
	if !found {
		t.Fatal("Alice-Dan fixture missing from week 1")
	}

	week2 := view.Schedule[1]
	if !week2.IsCurrent {
		t.Fatal("second week should be flagged current")
	}
	for _, m := range week2.Matches {
		if m.Played || m.Result != UnplayedResult {
			t.Fatalf("pre-deadline current week must be unplayed: %+v", m)
		}
	}

	// Pre-deadline current week contributes nothing to the table.
	if view.Standings[0].Team != "Alice" || view.Standings[0].Played != 1 {
		t.Fatalf("unexpected leader after one week: %+v", view.Standings[0])
	}
	// Bob and Cara drew their meeting; the higher raw score ranks first.
	if view.Standings[1].Team != "Bob" || view.Standings[2].Team != "Cara" {
		t.Fatalf("unexpected tie order: %s, %s", view.Standings[1].Team, view.Standings[2].Team)
	}
	if view.Standings[3].Team != "Dan" || view.Standings[3].CupPoints != 0 {
		t.Fatalf("unexpected last row: %+v", view.Standings[3])
	}
}

func TestStandingsService_GetCup_InputErrors(t *testing.T) {
	t.Parallel()

	service := newStandingsService(fourTeamCup(t), scoring.NewTable(), season.CurrentWeek{Week: 1})

	if _, err := service.GetCup(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.GetCup(context.Background(), 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStandingsService_GetCup_RejectsCorruptSchedule(t *testing.T) {
	t.Parallel()

	corrupt := schedule.Schedule{
		Teams: []string{"Alice", "Bob"},
		Fixtures: []schedule.Fixture{
			{Week: 1, Team1: "Alice", Team2: "Bob"},
			{Week: 2, Team1: "Bob", Team2: "Alice"},
		},
	}
	service := newStandingsService(corrupt, scoring.NewTable(), season.CurrentWeek{Week: 3})

	_, err := service.GetCup(context.Background(), 1)
	if !errors.Is(err, ErrScheduleInvalid) {
		t.Fatalf("expected ErrScheduleInvalid, got %v", err)
	}
}
