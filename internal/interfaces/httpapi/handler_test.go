package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/fplcups/minileague/internal/domain/scoring"
	"github.com/fplcups/minileague/internal/domain/season"
	"github.com/fplcups/minileague/internal/infrastructure/repository/memory"
	"github.com/fplcups/minileague/internal/platform/logging"
	"github.com/fplcups/minileague/internal/usecase"
)

const testJobToken = "job-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	scheduleRepo := memory.NewScheduleRepository()
	scoreRepo := memory.NewScoreRepository([]scoring.WeeklyScore{
		{Team: "Alice", Week: 1, Points: 60},
		{Team: "Bob", Week: 1, Points: 40},
	})
	oracle := memory.FixedOracle{Current: season.CurrentWeek{Week: 2, DeadlinePassed: false}}
	logger := logging.NewNop()

	scoreService := usecase.NewScoreService(scoreRepo, nil, oracle, logger)
	standingsService := usecase.NewStandingsService(scheduleRepo, scoreService, "12345", logger)
	scheduleService := usecase.NewScheduleService(scheduleRepo, logger)
	seasonService := usecase.NewSeasonService(standingsService, scheduleService, logger)

	if _, err := scheduleService.Generate(context.Background(), 1, []string{"Alice", "Bob"}); err != nil {
		t.Fatalf("seed cup 1 schedule: %v", err)
	}

	handler := NewHandler(scoreService, standingsService, scheduleService, seasonService, "12345", logger)
	return NewRouter(handler, logger, []string{"*"}, testJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_GetCup(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cups/1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	if got, _ := data["number"].(float64); got != 1 {
		t.Fatalf("expected cup number 1, got %v", data["number"])
	}
	standings, ok := data["standings"].([]any)
	if !ok || len(standings) != 2 {
		t.Fatalf("expected 2 standings rows, got %v", data["standings"])
	}
	// Alice won the only scored week by a clear margin.
	first := standings[0].(map[string]any)
	if got, _ := first["team"].(string); got != "Alice" {
		t.Fatalf("expected Alice first, got %v", first["team"])
	}
}

func TestRouter_GetCup_BadInputs(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cups/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric cup: expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cups/99", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown cup: expected 404, got %d", rec.Code)
	}
}

func TestRouter_GetWeeks(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/12345/weeks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]any)
	headers, ok := data["headers"].([]any)
	if !ok || len(headers) != 3 {
		t.Fatalf("expected team + 2 week headers, got %v", data["headers"])
	}
}

func TestRouter_GetSeason(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/season", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]any)
	cups, ok := data["cups"].([]any)
	if !ok || len(cups) != 1 {
		t.Fatalf("expected 1 cup in season, got %v", data["cups"])
	}
}

func TestRouter_GenerateSchedule(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	payload := `{"teams":["Alice","Bob","Cara","Dan"]}`

	t.Run("requires job token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cups/2/schedule", strings.NewReader(payload)))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("creates schedule", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/cups/2/schedule", strings.NewReader(payload))
		req.Header.Set("X-Internal-Job-Token", testJobToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeEnvelope(t, rec)
		data := body["data"].(map[string]any)
		fixtures, ok := data["fixtures"].([]any)
		if !ok || len(fixtures) != 6 {
			t.Fatalf("expected 6 fixtures, got %v", data["fixtures"])
		}
	})

	t.Run("rejects duplicate cup", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/cups/1/schedule", strings.NewReader(payload))
		req.Header.Set("X-Internal-Job-Token", testJobToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("rejects single team", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/cups/3/schedule", strings.NewReader(`{"teams":["Alice"]}`))
		req.Header.Set("X-Internal-Job-Token", testJobToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
