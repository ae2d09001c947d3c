package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/fplcups/minileague/internal/domain/schedule"
	"github.com/fplcups/minileague/internal/platform/logging"
	"github.com/fplcups/minileague/internal/usecase"
)

type Handler struct {
	scoreService     *usecase.ScoreService
	standingsService *usecase.StandingsService
	scheduleService  *usecase.ScheduleService
	seasonService    *usecase.SeasonService
	leagueID         string
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	scoreService *usecase.ScoreService,
	standingsService *usecase.StandingsService,
	scheduleService *usecase.ScheduleService,
	seasonService *usecase.SeasonService,
	leagueID string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scoreService:     scoreService,
		standingsService: standingsService,
		scheduleService:  scheduleService,
		seasonService:    seasonService,
		leagueID:         leagueID,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetWeeks serves the merged score grid for a league: historical weeks
// plus the live overlay for the current week when available.
func (h *Handler) GetWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeks")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	if leagueID == "" {
		leagueID = h.leagueID
	}

	grid, err := h.scoreService.Grid(ctx, leagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get weeks failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekGridDTO{
		Headers: grid.Headers,
		Rows:    grid.Rows,
		CurrentWeek: currentWeekDTO{
			Week:           grid.Current.Week,
			DeadlinePassed: grid.Current.DeadlinePassed,
		},
		LiveApplied: grid.LiveApplied,
		Warning:     grid.Warning,
	})
}

func (h *Handler) GetCup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCup")
	defer span.End()

	cupNumber, err := parseCupNumber(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.standingsService.GetCup(ctx, cupNumber)
	if err != nil {
		h.logger.ErrorContext(ctx, "get cup failed", "cup", cupNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cupToDTO(view))
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	overview, err := h.seasonService.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get season failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	cups := make([]cupDTO, 0, len(overview.Cups))
	for _, view := range overview.Cups {
		cups = append(cups, cupToDTO(view))
	}
	writeSuccess(ctx, w, http.StatusOK, seasonDTO{
		CurrentWeek: currentWeekDTO{
			Week:           overview.CurrentWeek,
			DeadlinePassed: overview.DeadlinePassed,
		},
		LiveApplied: overview.LiveApplied,
		Warning:     overview.Warning,
		Cups:        cups,
	})
}

type generateScheduleRequest struct {
	Teams []string `json:"teams" validate:"required,min=2,dive,required"`
}

// GenerateSchedule creates and stores the round-robin schedule for a
// cup. Operator-only; the router wraps it in the internal job token
// check.
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	cupNumber, err := parseCupNumber(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req generateScheduleRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	sched, err := h.scheduleService.Generate(ctx, cupNumber, req.Teams)
	if err != nil {
		h.logger.ErrorContext(ctx, "generate schedule failed", "cup", cupNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, scheduleToDTO(cupNumber, sched))
}

func parseCupNumber(r *http.Request) (int, error) {
	raw := r.PathValue("cupNumber")
	cupNumber, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: cup number %q is not a number", usecase.ErrInvalidInput, raw)
	}
	return cupNumber, nil
}

type currentWeekDTO struct {
	Week           int  `json:"week"`
	DeadlinePassed bool `json:"deadlinePassed"`
}

type weekGridDTO struct {
	Headers     []string       `json:"headers"`
	Rows        [][]string     `json:"rows"`
	CurrentWeek currentWeekDTO `json:"currentWeek"`
	LiveApplied bool           `json:"liveApplied"`
	Warning     string         `json:"warning,omitempty"`
}

type standingsRowDTO struct {
	Position       int    `json:"position"`
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	Points         int    `json:"points"`
	GoalDifference int    `json:"goalDifference"`
}

type fixtureResultDTO struct {
	Team1       string `json:"team1"`
	Team2       string `json:"team2"`
	Played      bool   `json:"played"`
	Team1Points int    `json:"team1Points"`
	Team2Points int    `json:"team2Points"`
	Result      string `json:"result"`
}

type weekFixturesDTO struct {
	Week      int                `json:"week"`
	IsCurrent bool               `json:"isCurrent"`
	Matches   []fixtureResultDTO `json:"matches"`
}

type cupDTO struct {
	Number      int               `json:"number"`
	Weeks       []int             `json:"weeks"`
	CurrentWeek currentWeekDTO    `json:"currentWeek"`
	LiveApplied bool              `json:"liveApplied"`
	Warning     string            `json:"warning,omitempty"`
	Standings   []standingsRowDTO `json:"standings"`
	Schedule    []weekFixturesDTO `json:"schedule"`
}

type seasonDTO struct {
	CurrentWeek currentWeekDTO `json:"currentWeek"`
	LiveApplied bool           `json:"liveApplied"`
	Warning     string         `json:"warning,omitempty"`
	Cups        []cupDTO       `json:"cups"`
}

type scheduleFixtureDTO struct {
	Week  int    `json:"week"`
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
}

type scheduleDTO struct {
	Cup      int                  `json:"cup"`
	Teams    []string             `json:"teams"`
	Fixtures []scheduleFixtureDTO `json:"fixtures"`
}

func cupToDTO(view usecase.CupView) cupDTO {
	standings := make([]standingsRowDTO, 0, len(view.Standings))
	for i, row := range view.Standings {
		standings = append(standings, standingsRowDTO{
			Position:       i + 1,
			Team:           row.Team,
			Played:         row.Played,
			Wins:           row.Wins,
			Draws:          row.Draws,
			Losses:         row.Losses,
			Points:         row.CupPoints,
			GoalDifference: row.GoalDifference,
		})
	}

	weeks := make([]weekFixturesDTO, 0, len(view.Schedule))
	for _, week := range view.Schedule {
		matches := make([]fixtureResultDTO, 0, len(week.Matches))
		for _, m := range week.Matches {
			matches = append(matches, fixtureResultDTO{
				Team1:       m.Team1,
				Team2:       m.Team2,
				Played:      m.Played,
				Team1Points: m.Team1Points,
				Team2Points: m.Team2Points,
				Result:      m.Result,
			})
		}
		weeks = append(weeks, weekFixturesDTO{
			Week:      week.Week,
			IsCurrent: week.IsCurrent,
			Matches:   matches,
		})
	}

	return cupDTO{
		Number: view.Info.Number,
		Weeks:  view.Info.Weeks,
		CurrentWeek: currentWeekDTO{
			Week:           view.Info.CurrentWeek,
			DeadlinePassed: view.Info.DeadlinePassed,
		},
		LiveApplied: view.Info.LiveApplied,
		Warning:     view.Info.Warning,
		Standings:   standings,
		Schedule:    weeks,
	}
}

func scheduleToDTO(cupNumber int, sched schedule.Schedule) scheduleDTO {
	fixtures := make([]scheduleFixtureDTO, 0, len(sched.Fixtures))
	for _, f := range sched.Fixtures {
		fixtures = append(fixtures, scheduleFixtureDTO{Week: f.Week, Team1: f.Team1, Team2: f.Team2})
	}
	return scheduleDTO{Cup: cupNumber, Teams: sched.Teams, Fixtures: fixtures}
}
