package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/fplcups/minileague/internal/config"
	"github.com/fplcups/minileague/internal/domain/schedule"
	"github.com/fplcups/minileague/internal/domain/scoring"
	"github.com/fplcups/minileague/internal/infrastructure/livefeed"
	"github.com/fplcups/minileague/internal/infrastructure/repository/csvstore"
	"github.com/fplcups/minileague/internal/infrastructure/repository/postgres"
	"github.com/fplcups/minileague/internal/interfaces/httpapi"
	"github.com/fplcups/minileague/internal/platform/logging"
	"github.com/fplcups/minileague/internal/usecase"
)

const (
	scoresFileName    = "weeks.csv"
	deadlinesFileName = "deadlines.txt"
)

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	scoreRepo, scheduleRepo, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Deadlines stay file-based in both storage modes: the file is the
	// artifact the league admin edits between weeks.
	oracle := csvstore.NewDeadlineRepository(filepath.Join(cfg.DataDir, deadlinesFileName), logger)

	var feed usecase.LiveFeed
	if cfg.LiveFeedEnabled {
		feed = livefeed.NewClient(livefeed.Config{
			BaseURL:        cfg.LiveFeedBaseURL,
			Timeout:        cfg.LiveFeedTimeout,
			CacheTTL:       cfg.LiveFeedCacheTTL,
			CircuitBreaker: cfg.LiveFeedCircuit,
		}, logger)
	}

	scoreSvc := usecase.NewScoreService(scoreRepo, feed, oracle, logger)
	standingsSvc := usecase.NewStandingsService(scheduleRepo, scoreSvc, cfg.LeagueID, logger)
	scheduleSvc := usecase.NewScheduleService(scheduleRepo, logger)
	seasonSvc := usecase.NewSeasonService(standingsSvc, scheduleSvc, logger)

	handler := httpapi.NewHandler(scoreSvc, standingsSvc, scheduleSvc, seasonSvc, cfg.LeagueID, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (scoring.HistoryRepository, schedule.Repository, error) {
	if cfg.UsePostgres() {
		db, err := connectDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		logger.Info("storage configured", "backend", "postgres", "database", dbNameFromURL(cfg.DBURL))
		return postgres.NewScoreRepository(db), postgres.NewScheduleRepository(db), nil
	}

	scoreRepo := csvstore.NewScoreRepository(filepath.Join(cfg.DataDir, scoresFileName))
	scheduleRepo := csvstore.NewScheduleRepository(cfg.DataDir)

	// Fail fast on corrupt schedule files instead of at first request.
	cups, err := scheduleRepo.LoadAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("validate schedule files: %w", err)
	}
	logger.Info("storage configured", "backend", "csv", "data_dir", cfg.DataDir, "cups", len(cups))

	return scoreRepo, scheduleRepo, nil
}

func connectDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	return otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
}
