package memory

import (
	"context"
	"sync"

	"github.com/fplcups/minileague/internal/domain/scoring"
	"github.com/fplcups/minileague/internal/domain/season"
)

type ScoreRepository struct {
	mu     sync.RWMutex
	scores []scoring.WeeklyScore
}

func NewScoreRepository(scores []scoring.WeeklyScore) *ScoreRepository {
	return &ScoreRepository{scores: append([]scoring.WeeklyScore(nil), scores...)}
}

// LoadTable rebuilds the table on every call so callers can mutate
// their copy freely.
func (r *ScoreRepository) LoadTable(_ context.Context) (*scoring.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := scoring.NewTable()
	for _, s := range r.scores {
		table.Set(s)
	}
	return table, nil
}

func (r *ScoreRepository) Append(_ context.Context, scores ...scoring.WeeklyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scores = append(r.scores, scores...)
	return nil
}

// FixedOracle always reports the same current week. Useful for tests
// and for replaying a finished season.
type FixedOracle struct {
	Current season.CurrentWeek
}

func (o FixedOracle) CurrentWeek(_ context.Context) (season.CurrentWeek, error) {
	return o.Current, nil
}
