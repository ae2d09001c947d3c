package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fplcups/minileague/internal/domain/scoring"
	"github.com/fplcups/minileague/internal/domain/season"
	"github.com/fplcups/minileague/internal/domain/team"
	"github.com/fplcups/minileague/internal/platform/logging"
)

// LiveFeed fetches the in-progress scores for a league's current week.
// A fetch failure is terminal for the request; retry policy belongs to
// the caller.
type LiveFeed interface {
	FetchLeague(ctx context.Context, leagueID string) ([]scoring.LiveRecord, error)
}

// ScoreService assembles the per-request score table: the historical
// table plus, once the current week's deadline has passed, the live
// overlay for that week only.
type ScoreService struct {
	historyRepo scoring.HistoryRepository
	liveFeed    LiveFeed
	oracle      season.Oracle
	logger      *logging.Logger
}

func NewScoreService(
	historyRepo scoring.HistoryRepository,
	liveFeed LiveFeed,
	oracle season.Oracle,
	logger *logging.Logger,
) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreService{
		historyRepo: historyRepo,
		liveFeed:    liveFeed,
		oracle:      oracle,
		logger:      logger,
	}
}

// ScoreSnapshot is one request's merged view of the season scores.
// Warning carries a soft degradation notice when the live feed could
// not be used; the table is still valid historical data in that case.
type ScoreSnapshot struct {
	Table       *scoring.Table
	Current     season.CurrentWeek
	LiveApplied bool
	Warning     string
}

func (s *ScoreService) Snapshot(ctx context.Context, leagueID string) (ScoreSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Snapshot")
	defer span.End()

	current, err := s.oracle.CurrentWeek(ctx)
	if err != nil {
		return ScoreSnapshot{}, fmt.Errorf("resolve current week: %w", err)
	}

	table, err := s.historyRepo.LoadTable(ctx)
	if err != nil {
		return ScoreSnapshot{}, fmt.Errorf("load historical score table: %w", err)
	}

	snap := ScoreSnapshot{Table: table, Current: current}
	if !current.DeadlinePassed || s.liveFeed == nil {
		return snap, nil
	}

	records, err := s.liveFeed.FetchLeague(ctx, leagueID)
	if err == nil && len(records) == 0 {
		err = fmt.Errorf("%w: live feed returned no records", ErrDependencyUnavailable)
	}
	if err != nil {
		// Soft failure: serve historical data for the current week and
		// tell the caller the overlay is missing.
		s.logger.WarnContext(ctx, "live feed unavailable, serving historical scores",
			"league_id", leagueID, "week", current.Week, "error", err)
		snap.Warning = "live scores unavailable for week " + strconv.Itoa(current.Week) + ", showing historical data"
		return snap, nil
	}

	s.overlayLive(table, records, current.Week)
	snap.LiveApplied = true
	return snap, nil
}

// overlayLive writes each live record over the current week's cell of
// the first historical team its name matches. Historical teams without
// a live match keep their prior value (absent cells stay zero), and
// completed weeks are never touched.
func (s *ScoreService) overlayLive(table *scoring.Table, records []scoring.LiveRecord, week int) {
	teams := table.Teams()
	for _, record := range records {
		for _, name := range teams {
			if !team.MatchesLiveName(name, record.TeamName) {
				continue
			}
			table.Set(scoring.WeeklyScore{
				Team:   name,
				Week:   week,
				Points: record.LivePoints,
				Hits:   record.Hits,
			})
			break
		}
	}
}

// WeekGrid is the frontend-shaped score matrix: a header row followed by
// one row per team, cells in the "points:hits" format.
type WeekGrid struct {
	Headers     []string
	Rows        [][]string
	Current     season.CurrentWeek
	LiveApplied bool
	Warning     string
}

// Grid renders the merged snapshot as a week-indexed grid covering week
// 1 through the later of the last recorded week and the current week.
func (s *ScoreService) Grid(ctx context.Context, leagueID string) (WeekGrid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Grid")
	defer span.End()

	snap, err := s.Snapshot(ctx, leagueID)
	if err != nil {
		return WeekGrid{}, err
	}

	lastWeek := snap.Table.MaxWeek()
	if snap.Current.Week > lastWeek {
		lastWeek = snap.Current.Week
	}

	headers := make([]string, 0, lastWeek+1)
	headers = append(headers, "team")
	for w := 1; w <= lastWeek; w++ {
		headers = append(headers, strconv.Itoa(w))
	}

	teams := snap.Table.Teams()
	rows := make([][]string, 0, len(teams))
	for _, name := range teams {
		row := make([]string, 0, lastWeek+1)
		row = append(row, name)
		for w := 1; w <= lastWeek; w++ {
			row = append(row, snap.Table.Get(name, w).Cell())
		}
		rows = append(rows, row)
	}

	return WeekGrid{
		Headers:     headers,
		Rows:        rows,
		Current:     snap.Current,
		LiveApplied: snap.LiveApplied,
		Warning:     snap.Warning,
	}, nil
}
