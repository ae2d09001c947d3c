package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fplcups/minileague/internal/domain/schedule"
	qb "github.com/fplcups/minileague/internal/platform/querybuilder"
)

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) GetByCup(ctx context.Context, cupNumber int) (schedule.Schedule, bool, error) {
	query, args, err := qb.Select("id", "cup_number", "week", "team1", "team2", "created_at").
		From("fixtures").
		Where(qb.Eq("cup_number", cupNumber)).
		OrderBy("week", "id").
		ToSQL()
	if err != nil {
		return schedule.Schedule{}, false, fmt.Errorf("build select fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return schedule.Schedule{}, false, fmt.Errorf("select fixtures by cup: %w", err)
	}
	if len(rows) == 0 {
		return schedule.Schedule{}, false, nil
	}

	fixtures := make([]schedule.Fixture, 0, len(rows))
	seen := make(map[string]bool)
	teams := make([]string, 0)
	for _, row := range rows {
		fixtures = append(fixtures, schedule.Fixture{Week: row.Week, Team1: row.Team1, Team2: row.Team2})
		for _, name := range []string{row.Team1, row.Team2} {
			if !seen[name] {
				seen[name] = true
				teams = append(teams, name)
			}
		}
	}
	return schedule.Schedule{Teams: teams, Fixtures: fixtures}, true, nil
}

// Save writes the cup's fixtures in one transaction, replacing any
// previous rows for the cup.
func (r *ScheduleRepository) Save(ctx context.Context, cupNumber int, s schedule.Schedule) error {
	if len(s.Fixtures) == 0 {
		return fmt.Errorf("refusing to save empty schedule for cup %d", cupNumber)
	}

	builder := qb.InsertInto("fixtures").
		Columns("cup_number", "week", "team1", "team2")
	for _, f := range s.Fixtures {
		builder = builder.Values(cupNumber, f.Week, f.Team1, f.Team2)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert fixtures query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save schedule tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM fixtures WHERE cup_number = $1", cupNumber); err != nil {
		return fmt.Errorf("clear fixtures for cup %d: %w", cupNumber, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fixtures for cup %d: %w", cupNumber, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save schedule tx: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) ListCups(ctx context.Context) ([]int, error) {
	query, args, err := qb.Select("cup_number").
		Distinct().
		From("fixtures").
		OrderBy("cup_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list cups query: %w", err)
	}

	var cups []int
	if err := r.db.SelectContext(ctx, &cups, query, args...); err != nil {
		return nil, fmt.Errorf("select cup numbers: %w", err)
	}
	return cups, nil
}
