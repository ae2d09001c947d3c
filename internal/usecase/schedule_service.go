package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/fplcups/minileague/internal/domain/cup"
	"github.com/fplcups/minileague/internal/domain/schedule"
	"github.com/fplcups/minileague/internal/platform/logging"
)

// ScheduleService generates and serves cup schedules. Generation is an
// operator action: a cup's schedule is written once and never silently
// replaced.
type ScheduleService struct {
	repo   schedule.Repository
	logger *logging.Logger
}

func NewScheduleService(repo schedule.Repository, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{repo: repo, logger: logger}
}

var ErrScheduleExists = errors.New("schedule already exists")

// Generate builds a round-robin schedule for the given cup and persists
// it with absolute week numbers. The generated schedule is validated
// before it is saved; a generator that emits an invalid schedule is a
// programming error, not an input error, and is surfaced as such.
func (s *ScheduleService) Generate(ctx context.Context, cupNumber int, teams []string) (schedule.Schedule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Generate")
	defer span.End()

	if cupNumber < 1 {
		return schedule.Schedule{}, fmt.Errorf("%w: cup number must be >= 1", ErrInvalidInput)
	}

	if _, found, err := s.repo.GetByCup(ctx, cupNumber); err != nil {
		return schedule.Schedule{}, fmt.Errorf("check existing schedule: %w", err)
	} else if found {
		return schedule.Schedule{}, fmt.Errorf("%w: cup=%d", ErrScheduleExists, cupNumber)
	}

	generated, err := schedule.Generate(teams)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if report := schedule.Validate(generated.Teams, generated); !report.Valid {
		for _, v := range report.Violations {
			s.logger.ErrorContext(ctx, "generated schedule failed validation", "cup", cupNumber, "violation", v.String())
		}
		return schedule.Schedule{}, fmt.Errorf("%w: cup=%d violations=%d", ErrScheduleInvalid, cupNumber, len(report.Violations))
	}

	first, _ := cup.Weeks(cupNumber)
	shifted := generated.WithWeekOffset(first - 1)

	if err := s.repo.Save(ctx, cupNumber, shifted); err != nil {
		return schedule.Schedule{}, fmt.Errorf("save schedule: %w", err)
	}

	s.logger.InfoContext(ctx, "cup schedule generated",
		"cup", cupNumber,
		"teams", len(shifted.Teams),
		"fixtures", len(shifted.Fixtures),
	)
	return shifted, nil
}

// Get returns the stored schedule for a cup.
func (s *ScheduleService) Get(ctx context.Context, cupNumber int) (schedule.Schedule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Get")
	defer span.End()

	if cupNumber < 1 {
		return schedule.Schedule{}, fmt.Errorf("%w: cup number must be >= 1", ErrInvalidInput)
	}
	sched, found, err := s.repo.GetByCup(ctx, cupNumber)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("get schedule: %w", err)
	}
	if !found {
		return schedule.Schedule{}, fmt.Errorf("%w: cup=%d", ErrNotFound, cupNumber)
	}
	return sched, nil
}
