package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fplcups/minileague/internal/domain/scoring"
	qb "github.com/fplcups/minileague/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// LoadTable reads every stored weekly score. Insertion order of the
// rows fixes the team order of the table, matching the file store.
func (r *ScoreRepository) LoadTable(ctx context.Context) (*scoring.Table, error) {
	query, args, err := qb.Select("id", "team_name", "week", "points", "hits", "created_at", "updated_at").
		From("weekly_scores").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly scores query: %w", err)
	}

	var rows []weeklyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weekly scores: %w", err)
	}

	table := scoring.NewTable()
	for _, row := range rows {
		table.Set(scoring.WeeklyScore{
			Team:   row.TeamName,
			Week:   row.Week,
			Points: row.Points,
			Hits:   row.Hits,
		})
	}
	return table, nil
}

// UpsertScores writes a batch of weekly scores, replacing any existing
// cell for the same team and week.
func (r *ScoreRepository) UpsertScores(ctx context.Context, scores []scoring.WeeklyScore) error {
	if len(scores) == 0 {
		return nil
	}

	builder := qb.InsertInto("weekly_scores").
		Columns("team_name", "week", "points", "hits").
		Suffix("ON CONFLICT (team_name, week) DO UPDATE SET points = EXCLUDED.points, hits = EXCLUDED.hits, updated_at = NOW()")
	for _, s := range scores {
		builder = builder.Values(s.Team, s.Week, s.Points, s.Hits)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert weekly scores query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert weekly scores: %w", err)
	}
	return nil
}
