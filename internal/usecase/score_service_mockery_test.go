package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/fplcups/minileague/internal/domain/scoring"
	"github.com/fplcups/minileague/internal/domain/season"
	scoringmock "github.com/fplcups/minileague/internal/mocks/domain/scoring"
	seasonmock "github.com/fplcups/minileague/internal/mocks/domain/season"
	"github.com/fplcups/minileague/internal/platform/logging"
)

func TestScoreService_Snapshot_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	historyRepo := scoringmock.NewHistoryRepository(t)
	oracle := seasonmock.NewOracle(t)
	service := NewScoreService(historyRepo, nil, oracle, logging.NewNop())

	table := scoring.NewTable()
	table.Set(scoring.WeeklyScore{Team: "Alice", Week: 1, Points: 55})

	oracle.
		On("CurrentWeek", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(season.CurrentWeek{Week: 2, DeadlinePassed: false}, nil).
		Once()
	historyRepo.
		On("LoadTable", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(table, nil).
		Once()

	snap, err := service.Snapshot(ctx, "620117")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Current.Week != 2 {
		t.Fatalf("unexpected current week: got=%d want=2", snap.Current.Week)
	}
	if snap.Table.Points("Alice", 1) != 55 {
		t.Fatalf("unexpected points: got=%d want=55", snap.Table.Points("Alice", 1))
	}
	if snap.LiveApplied {
		t.Fatalf("live overlay must not apply before the deadline")
	}
}

func TestScoreService_Snapshot_OracleFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	historyRepo := scoringmock.NewHistoryRepository(t)
	oracle := seasonmock.NewOracle(t)
	service := NewScoreService(historyRepo, nil, oracle, logging.NewNop())

	oracleErr := errors.New("deadline file unreadable")
	oracle.
		On("CurrentWeek", mock.Anything).
		Return(season.CurrentWeek{}, oracleErr).
		Once()

	_, err := service.Snapshot(ctx, "620117")
	if !errors.Is(err, oracleErr) {
		t.Fatalf("expected oracle error to propagate, got %v", err)
	}
}
