package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fplcups/minileague/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu    sync.RWMutex
	items map[int]schedule.Schedule
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{items: make(map[int]schedule.Schedule)}
}

func (r *ScheduleRepository) GetByCup(_ context.Context, cupNumber int) (schedule.Schedule, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[cupNumber]
	if !ok {
		return schedule.Schedule{}, false, nil
	}
	return s, true, nil
}

func (r *ScheduleRepository) Save(_ context.Context, cupNumber int, s schedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[cupNumber] = s
	return nil
}

func (r *ScheduleRepository) ListCups(_ context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cups := make([]int, 0, len(r.items))
	for n := range r.items {
		cups = append(cups, n)
	}
	sort.Ints(cups)
	return cups, nil
}
