package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fplcups/minileague/internal/platform/logging"
	"github.com/fplcups/minileague/internal/platform/resilience"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	LeagueID                string
	DataDir                 string
	DBURL                   string
	DBDisablePreparedBinary bool
	CORSAllowedOrigins      []string
	InternalJobToken        string
	LiveFeedEnabled         bool
	LiveFeedBaseURL         string
	LiveFeedTimeout         time.Duration
	LiveFeedCacheTTL        time.Duration
	LiveFeedCircuit         resilience.CircuitBreakerConfig
	PprofEnabled            bool
	PprofAddr               string
	UptraceEnabled          bool
	UptraceDSN              string
	UptraceLogsEnabled      bool
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeAuthToken      string
	PyroscopeUploadRate     time.Duration
	LogLevel                logging.Level
}

// UsePostgres reports whether score and fixture storage should go
// through the database instead of the CSV data directory.
func (c Config) UsePostgres() bool {
	return strings.TrimSpace(c.DBURL) != ""
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	liveFeedEnabled, err := strconv.ParseBool(getEnv("LIVEFEED_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVEFEED_ENABLED: %w", err)
	}
	liveFeedTimeout, err := time.ParseDuration(getEnv("LIVEFEED_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVEFEED_TIMEOUT: %w", err)
	}
	if liveFeedTimeout <= 0 {
		return Config{}, fmt.Errorf("LIVEFEED_TIMEOUT must be > 0")
	}
	liveFeedCacheTTL, err := time.ParseDuration(getEnv("LIVEFEED_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVEFEED_CACHE_TTL: %w", err)
	}
	if liveFeedCacheTTL <= 0 {
		return Config{}, fmt.Errorf("LIVEFEED_CACHE_TTL must be > 0")
	}
	liveFeedCircuitEnabled, err := strconv.ParseBool(getEnv("LIVEFEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVEFEED_CIRCUIT_ENABLED: %w", err)
	}
	liveFeedCircuitFailureCount, err := getEnvAsInt("LIVEFEED_CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVEFEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if liveFeedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("LIVEFEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	liveFeedCircuitOpenTimeout, err := time.ParseDuration(getEnv("LIVEFEED_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVEFEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if liveFeedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("LIVEFEED_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	liveFeedCircuitHalfOpenMaxReq, err := getEnvAsInt("LIVEFEED_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVEFEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if liveFeedCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("LIVEFEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "minileague-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		LeagueID:                strings.TrimSpace(getEnv("LEAGUE_ID", "")),
		DataDir:                 getEnv("DATA_DIR", "./data"),
		DBURL:                   getEnv("DB_URL", ""),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InternalJobToken:        strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		LiveFeedEnabled:         liveFeedEnabled,
		LiveFeedBaseURL:         strings.TrimSpace(getEnv("LIVEFEED_BASE_URL", "https://plan.livefpl.net")),
		LiveFeedTimeout:         liveFeedTimeout,
		LiveFeedCacheTTL:        liveFeedCacheTTL,
		LiveFeedCircuit: resilience.CircuitBreakerConfig{
			Enabled:          liveFeedCircuitEnabled,
			FailureThreshold: liveFeedCircuitFailureCount,
			OpenTimeout:      liveFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   liveFeedCircuitHalfOpenMaxReq,
		},
		PprofEnabled:           pprofEnabled,
		PprofAddr:              pprofAddr,
		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		UptraceLogsEnabled:     uptraceLogsEnabled,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
		LogLevel:               parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	if cfg.LiveFeedEnabled && cfg.LeagueID == "" {
		return Config{}, fmt.Errorf("LEAGUE_ID is required when LIVEFEED_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
