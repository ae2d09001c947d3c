package usecase

import (
	"context"
	"sort"

	"github.com/fplcups/minileague/internal/domain/schedule"
	"github.com/fplcups/minileague/internal/domain/scoring"
	"github.com/fplcups/minileague/internal/domain/season"
)

type stubScheduleRepository struct {
	byCup map[int]schedule.Schedule
	err   error
}

func (r *stubScheduleRepository) GetByCup(_ context.Context, cupNumber int) (schedule.Schedule, bool, error) {
	if r.err != nil {
		return schedule.Schedule{}, false, r.err
	}
	s, ok := r.byCup[cupNumber]
	return s, ok, nil
}

func (r *stubScheduleRepository) Save(_ context.Context, cupNumber int, s schedule.Schedule) error {
	if r.err != nil {
		return r.err
	}
	if r.byCup == nil {
		r.byCup = make(map[int]schedule.Schedule)
	}
	r.byCup[cupNumber] = s
	return nil
}

func (r *stubScheduleRepository) ListCups(_ context.Context) ([]int, error) {
	if r.err != nil {
		return nil, r.err
	}
	cups := make([]int, 0, len(r.byCup))
	for n := range r.byCup {
		cups = append(cups, n)
	}
	sort.Ints(cups)
	return cups, nil
}

type stubHistoryRepository struct {
	table *scoring.Table
	err   error
}

func (r *stubHistoryRepository) LoadTable(_ context.Context) (*scoring.Table, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.table, nil
}

type stubOracle struct {
	current season.CurrentWeek
	err     error
}

func (o *stubOracle) CurrentWeek(_ context.Context) (season.CurrentWeek, error) {
	if o.err != nil {
		return season.CurrentWeek{}, o.err
	}
	return o.current, nil
}

type stubLiveFeed struct {
	records []scoring.LiveRecord
	err     error
	calls   int
}

func (f *stubLiveFeed) FetchLeague(_ context.Context, _ string) ([]scoring.LiveRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}
