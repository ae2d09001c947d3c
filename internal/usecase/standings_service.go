package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/fplcups/minileague/internal/domain/cup"
	"github.com/fplcups/minileague/internal/domain/schedule"
	"github.com/fplcups/minileague/internal/domain/scoring"
	"github.com/fplcups/minileague/internal/domain/season"
	"github.com/fplcups/minileague/internal/platform/logging"
)

// UnplayedResult marks a fixture whose week has not been scored yet.
const UnplayedResult = "Not yet played"

// StandingsService turns a cup's fixtures plus the merged score table
// into ordered standings and a results-annotated schedule view.
type StandingsService struct {
	scheduleRepo schedule.Repository
	scores       *ScoreService
	leagueID     string
	logger       *logging.Logger
}

func NewStandingsService(
	scheduleRepo schedule.Repository,
	scores *ScoreService,
	leagueID string,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		scheduleRepo: scheduleRepo,
		scores:       scores,
		leagueID:     leagueID,
		logger:       logger,
	}
}

type CupInfo struct {
	Number         int
	Weeks          []int
	CurrentWeek    int
	DeadlinePassed bool
	LiveApplied    bool
	Warning        string
}

type FixtureResult struct {
	Team1       string
	Team2       string
	Played      bool
	Team1Points int
	Team2Points int
	Result      string
}

type WeekFixtures struct {
	Week      int
	IsCurrent bool
	Matches   []FixtureResult
}

type CupView struct {
	Info      CupInfo
	Standings []cup.StandingsRow
	Schedule  []WeekFixtures
}

// GetCup computes the full view of one cup. The schedule is re-checked
// against the round-robin contract on every read: a failing schedule is
// unusable, not a degraded input.
func (s *StandingsService) GetCup(ctx context.Context, cupNumber int) (CupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GetCup")
	defer span.End()

	if cupNumber < 1 {
		return CupView{}, fmt.Errorf("%w: cup number must be >= 1", ErrInvalidInput)
	}

	sched, found, err := s.scheduleRepo.GetByCup(ctx, cupNumber)
	if err != nil {
		return CupView{}, fmt.Errorf("get cup schedule: %w", err)
	}
	if !found {
		return CupView{}, fmt.Errorf("%w: cup=%d", ErrNotFound, cupNumber)
	}

	report := schedule.Validate(sched.Teams, sched)
	if !report.Valid {
		for _, v := range report.Violations {
			s.logger.ErrorContext(ctx, "schedule integrity violation", "cup", cupNumber, "violation", v.String())
		}
		return CupView{}, fmt.Errorf("%w: cup=%d violations=%d", ErrScheduleInvalid, cupNumber, len(report.Violations))
	}

	snap, err := s.scores.Snapshot(ctx, s.leagueID)
	if err != nil {
		return CupView{}, err
	}

	rows := computeStandings(sched.Fixtures, snap.Table, snap.Current)
	view := scheduleView(cupNumber, sched, snap.Table, snap.Current)

	return CupView{
		Info: CupInfo{
			Number:         cupNumber,
			Weeks:          cup.WeekRange(cupNumber),
			CurrentWeek:    snap.Current.Week,
			DeadlinePassed: snap.Current.DeadlinePassed,
			LiveApplied:    snap.LiveApplied,
			Warning:        snap.Warning,
		},
		Standings: rows,
		Schedule:  view,
	}, nil
}

// scoreable reports whether a fixture's result counts yet: its week is
// fully in the past, or it is the current week and the deadline has
// passed.
func scoreable(week int, current season.CurrentWeek) bool {
	return week < current.Week || (week == current.Week && current.DeadlinePassed)
}

// computeStandings aggregates every scoreable fixture under the margin
// rule, then orders teams by cup points with tiebreaks resolved per
// equal-points group. It is pure over its inputs, so identical inputs
// always produce identical ordered output.
func computeStandings(fixtures []schedule.Fixture, table *scoring.Table, current season.CurrentWeek) []cup.StandingsRow {
	byTeam := make(map[string]*cup.StandingsRow)
	order := make([]string, 0)
	rowFor := func(name string) *cup.StandingsRow {
		if row, ok := byTeam[name]; ok {
			return row
		}
		row := &cup.StandingsRow{Team: name}
		byTeam[name] = row
		order = append(order, name)
		return row
	}

	// Register every team first so an all-unplayed cup still lists them.
	for _, f := range fixtures {
		rowFor(f.Team1)
		rowFor(f.Team2)
	}

	for _, f := range fixtures {
		if !scoreable(f.Week, current) {
			continue
		}

		team1 := rowFor(f.Team1)
		team2 := rowFor(f.Team2)
		outcome, diff := cup.Result(table.Points(f.Team1, f.Week), table.Points(f.Team2, f.Week))

		team1.Played++
		team2.Played++
		team1.GoalDifference += diff
		team2.GoalDifference -= diff

		switch outcome {
		case cup.OutcomeTeam1Win:
			team1.Wins++
			team1.CupPoints += cup.PointsForWin
			team2.Losses++
		case cup.OutcomeTeam2Win:
			team2.Wins++
			team2.CupPoints += cup.PointsForWin
			team1.Losses++
		default:
			team1.Draws++
			team2.Draws++
			team1.CupPoints += cup.PointsForDraw
			team2.CupPoints += cup.PointsForDraw
		}
	}

	groups := make(map[int][]cup.StandingsRow)
	points := make([]int, 0)
	for _, name := range order {
		row := byTeam[name]
		if _, ok := groups[row.CupPoints]; !ok {
			points = append(points, row.CupPoints)
		}
		groups[row.CupPoints] = append(groups[row.CupPoints], *row)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(points)))

	tc := tiebreakContext{fixtures: fixtures, scores: table, currentWeek: current.Week}
	out := make([]cup.StandingsRow, 0, len(order))
	for _, p := range points {
		out = append(out, resolveGroup(groups[p], tc)...)
	}
	return out
}

// scheduleView renders the cup's weeks up to the current one, each
// fixture annotated with its result or the unplayed marker.
func scheduleView(cupNumber int, sched schedule.Schedule, table *scoring.Table, current season.CurrentWeek) []WeekFixtures {
	out := make([]WeekFixtures, 0, cup.WeeksPerCup)
	for _, week := range cup.WeekRange(cupNumber) {
		if week > current.Week {
			continue
		}

		fixtures := sched.FixturesForWeek(week)
		if len(fixtures) == 0 {
			continue
		}

		matches := make([]FixtureResult, 0, len(fixtures))
		for _, f := range fixtures {
			match := FixtureResult{Team1: f.Team1, Team2: f.Team2, Result: UnplayedResult}
			if scoreable(week, current) {
				p1 := table.Points(f.Team1, week)
				p2 := table.Points(f.Team2, week)
				match.Played = true
				match.Team1Points = p1
				match.Team2Points = p2

				outcome, _ := cup.Result(p1, p2)
				switch outcome {
				case cup.OutcomeTeam1Win:
					match.Result = fmt.Sprintf("%d-%d (Win %s)", p1, p2, f.Team1)
				case cup.OutcomeTeam2Win:
					match.Result = fmt.Sprintf("%d-%d (Win %s)", p1, p2, f.Team2)
				default:
					match.Result = fmt.Sprintf("%d-%d (Draw)", p1, p2)
				}
			}
			matches = append(matches, match)
		}

		out = append(out, WeekFixtures{
			Week:      week,
			IsCurrent: week == current.Week,
			Matches:   matches,
		})
	}
	return out
}
