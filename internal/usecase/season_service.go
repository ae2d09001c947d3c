package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/fplcups/minileague/internal/platform/logging"
)

const seasonWorkerCount = 4

// SeasonOverview is the season rolled up across every cup that has a
// stored schedule, in cup order.
type SeasonOverview struct {
	CurrentWeek    int
	DeadlinePassed bool
	LiveApplied    bool
	Warning        string
	Cups           []CupView
}

// SeasonService assembles the season overview by fanning cup views out
// over a bounded worker pool.
type SeasonService struct {
	standings *StandingsService
	schedules *ScheduleService
	logger    *logging.Logger
}

func NewSeasonService(standings *StandingsService, schedules *ScheduleService, logger *logging.Logger) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonService{standings: standings, schedules: schedules, logger: logger}
}

// Overview computes standings for every stored cup concurrently. A
// single failing cup fails the whole overview: partial seasons would
// be indistinguishable from short ones.
func (s *SeasonService) Overview(ctx context.Context) (SeasonOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Overview")
	defer span.End()

	cups, err := s.schedules.repo.ListCups(ctx)
	if err != nil {
		return SeasonOverview{}, fmt.Errorf("list cups: %w", err)
	}
	if len(cups) == 0 {
		return SeasonOverview{}, fmt.Errorf("%w: no cup schedules stored", ErrNotFound)
	}
	sort.Ints(cups)

	pool, err := ants.NewPool(seasonWorkerCount)
	if err != nil {
		return SeasonOverview{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	views := make([]CupView, len(cups))
	errs := make([]error, len(cups))

	var workers sync.WaitGroup
	for i, cupNumber := range cups {
		i, cupNumber := i, cupNumber
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			views[i], errs[i] = s.standings.GetCup(ctx, cupNumber)
		}); err != nil {
			workers.Done()
			return SeasonOverview{}, fmt.Errorf("submit cup task to worker pool: %w", err)
		}
	}
	workers.Wait()

	for i, err := range errs {
		if err != nil {
			return SeasonOverview{}, fmt.Errorf("cup %d overview: %w", cups[i], err)
		}
	}

	overview := SeasonOverview{Cups: views}
	if len(views) > 0 {
		// Week state and the live flag are identical across cups: every
		// view derives them from the same snapshot.
		overview.CurrentWeek = views[0].Info.CurrentWeek
		overview.DeadlinePassed = views[0].Info.DeadlinePassed
	}
	for _, v := range views {
		if v.Info.LiveApplied {
			overview.LiveApplied = true
		}
		if v.Info.Warning != "" && overview.Warning == "" {
			overview.Warning = v.Info.Warning
		}
	}
	return overview, nil
}
