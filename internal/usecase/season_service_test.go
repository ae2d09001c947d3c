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

func TestSeasonService_Overview(t *testing.T) {
	t.Parallel()

	cup1, err := schedule.Generate([]string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("generate cup 1: %v", err)
	}
	cup2, err := schedule.Generate([]string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("generate cup 2: %v", err)
	}
	cup2 = cup2.WithWeekOffset(7)

	repo := &stubScheduleRepository{byCup: map[int]schedule.Schedule{1: cup1, 2: cup2}}
	table := historyTable(
		scoring.WeeklyScore{Team: "Alice", Week: 1, Points: 60},
		scoring.WeeklyScore{Team: "Bob", Week: 1, Points: 40},
		scoring.WeeklyScore{Team: "Alice", Week: 8, Points: 40},
		scoring.WeeklyScore{Team: "Bob", Week: 8, Points: 60},
	)
	scores := NewScoreService(
		&stubHistoryRepository{table: table},
		nil,
		&stubOracle{current: season.CurrentWeek{Week: 9}},
		logging.NewNop(),
	)
	standings := NewStandingsService(repo, scores, "12345", logging.NewNop())
	schedules := NewScheduleService(repo, logging.NewNop())

	service := NewSeasonService(standings, schedules, logging.NewNop())

	overview, err := service.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}

	if len(overview.Cups) != 2 {
		t.Fatalf("expected 2 cups, got %d", len(overview.Cups))
	}
	if overview.Cups[0].Info.Number != 1 || overview.Cups[1].Info.Number != 2 {
		t.Fatalf("cups out of order: %d, %d", overview.Cups[0].Info.Number, overview.Cups[1].Info.Number)
	}
	if overview.CurrentWeek != 9 {
		t.Fatalf("unexpected current week: %d", overview.CurrentWeek)
	}

	// Each cup is won by its week's scorer.
	if overview.Cups[0].Standings[0].Team != "Alice" {
		t.Fatalf("cup 1 leader: got=%s want=Alice", overview.Cups[0].Standings[0].Team)
	}
	if overview.Cups[1].Standings[0].Team != "Bob" {
		t.Fatalf("cup 2 leader: got=%s want=Bob", overview.Cups[1].Standings[0].Team)
	}
}

func TestSeasonService_Overview_NoCups(t *testing.T) {
	t.Parallel()

	repo := &stubScheduleRepository{}
	scores := NewScoreService(
		&stubHistoryRepository{table: scoring.NewTable()},
		nil,
		&stubOracle{current: season.CurrentWeek{Week: 1}},
		logging.NewNop(),
	)
	service := NewSeasonService(
		NewStandingsService(repo, scores, "12345", logging.NewNop()),
		NewScheduleService(repo, logging.NewNop()),
		logging.NewNop(),
	)

	if _, err := service.Overview(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeasonService_Overview_FailingCupFailsOverview(t *testing.T) {
	t.Parallel()

	corrupt := schedule.Schedule{
		Teams: []string{"Alice", "Bob"},
		Fixtures: []schedule.Fixture{
			{Week: 1, Team1: "Alice", Team2: "Bob"},
			{Week: 2, Team1: "Alice", Team2: "Bob"},
		},
	}
	repo := &stubScheduleRepository{byCup: map[int]schedule.Schedule{1: corrupt}}
	scores := NewScoreService(
		&stubHistoryRepository{table: scoring.NewTable()},
		nil,
		&stubOracle{current: season.CurrentWeek{Week: 3}},
		logging.NewNop(),
	)
	service := NewSeasonService(
		NewStandingsService(repo, scores, "12345", logging.NewNop()),
		NewScheduleService(repo, logging.NewNop()),
		logging.NewNop(),
	)

	if _, err := service.Overview(context.Background()); !errors.Is(err, ErrScheduleInvalid) {
		t.Fatalf("expected ErrScheduleInvalid, got %v", err)
	}
}
