package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/hockey-league/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string
	SwaggerEnabled     bool

	// DBURL selects the postgres backend. Empty runs on seeded in-memory
	// repositories.
	DBURL          string
	DBMaxOpenConns int
	CacheEnabled   bool
	CacheTTL       time.Duration

	AnubisBaseURL               string
	AnubisIntrospectURL         string
	AnubisAdminKey              string
	AnubisTimeout               time.Duration
	AnubisCircuitEnabled        bool
	AnubisCircuitFailureCount   int
	AnubisCircuitOpenTimeout    time.Duration
	AnubisCircuitHalfOpenMaxReq int
	AuthCacheTTL                time.Duration

	EABaseURL               string
	EAPlatform              string
	EAClubIDs               []int64
	EATimeout               time.Duration
	EAMaxRetries            int
	EAMatchCacheTTL         time.Duration
	EAMaxConcurrency        int
	EACircuitEnabled        bool
	EACircuitFailureCount   int
	EACircuitOpenTimeout    time.Duration
	EACircuitHalfOpenMaxReq int

	StatsQueueMaxRetries      int
	StatsQueueBatchSize       int
	StatsQueueMaxBatchSize    int
	StatsQueueWorkers         int
	StatsQueueUpsert          bool
	StatsQueueProcessInterval time.Duration
	StatsQueueClaimLease      time.Duration

	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	DiagnosticsEnabled         bool
	DiagnosticsAddr            string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "hockey-league-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DBURL:                      strings.TrimSpace(os.Getenv("DB_URL")),
		AnubisBaseURL:              getEnv("ANUBIS_BASE_URL", "http://localhost:8081"),
		AnubisIntrospectURL:        getEnv("ANUBIS_INTROSPECT_URL", "/v1/auth/introspect"),
		AnubisAdminKey:             strings.TrimSpace(os.Getenv("ANUBIS_ADMIN_KEY")),
		EABaseURL:                  getEnv("EA_BASE_URL", "https://proclubs.ea.com/api/nhl"),
		EAPlatform:                 getEnv("EA_PLATFORM", "common-gen5"),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeAuthToken:         strings.TrimSpace(os.Getenv("PYROSCOPE_AUTH_TOKEN")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(os.Getenv("PYROSCOPE_BASIC_AUTH_USER")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(os.Getenv("PYROSCOPE_BASIC_AUTH_PASSWORD")),
		PyroscopeServerAddress:     strings.TrimSpace(os.Getenv("PYROSCOPE_SERVER_ADDRESS")),
		DiagnosticsAddr:            strings.TrimSpace(getEnv("DIAGNOSTICS_ADDR", ":6060")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	p := parser{}
	cfg.SwaggerEnabled = p.bool("SWAGGER_ENABLED", swaggerDefault)
	cfg.ReadTimeout = p.positiveDuration("APP_READ_TIMEOUT", "10s")
	cfg.WriteTimeout = p.positiveDuration("APP_WRITE_TIMEOUT", "15s")

	cfg.DBMaxOpenConns = p.intAtLeast("DB_MAX_OPEN_CONNS", 10, 1)
	cfg.CacheEnabled = p.bool("CACHE_ENABLED", "true")
	cfg.CacheTTL = p.positiveDuration("CACHE_TTL", "60s")

	cfg.AnubisTimeout = p.positiveDuration("ANUBIS_TIMEOUT", "3s")
	cfg.AnubisCircuitEnabled = p.bool("ANUBIS_CIRCUIT_ENABLED", "true")
	cfg.AnubisCircuitFailureCount = p.intAtLeast("ANUBIS_CIRCUIT_FAILURE_COUNT", 5, 1)
	cfg.AnubisCircuitOpenTimeout = p.positiveDuration("ANUBIS_CIRCUIT_OPEN_TIMEOUT", "15s")
	cfg.AnubisCircuitHalfOpenMaxReq = p.intAtLeast("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1)
	cfg.AuthCacheTTL = p.duration("AUTH_CACHE_TTL", "30s")

	cfg.EAClubIDs = p.idList("EA_CLUB_IDS")
	cfg.EATimeout = p.positiveDuration("EA_TIMEOUT", "15s")
	cfg.EAMaxRetries = p.intAtLeast("EA_MAX_RETRIES", 2, 0)
	cfg.EAMatchCacheTTL = p.duration("EA_MATCH_CACHE_TTL", "30s")
	cfg.EAMaxConcurrency = p.intAtLeast("EA_MAX_CONCURRENCY", 4, 1)
	cfg.EACircuitEnabled = p.bool("EA_CIRCUIT_ENABLED", "true")
	cfg.EACircuitFailureCount = p.intAtLeast("EA_CIRCUIT_FAILURE_COUNT", 5, 1)
	cfg.EACircuitOpenTimeout = p.positiveDuration("EA_CIRCUIT_OPEN_TIMEOUT", "30s")
	cfg.EACircuitHalfOpenMaxReq = p.intAtLeast("EA_CIRCUIT_HALF_OPEN_MAX_REQ", 1, 1)

	cfg.StatsQueueMaxRetries = p.intAtLeast("STATS_QUEUE_MAX_RETRIES", 3, 1)
	cfg.StatsQueueBatchSize = p.intAtLeast("STATS_QUEUE_BATCH_SIZE", 10, 1)
	cfg.StatsQueueMaxBatchSize = p.intAtLeast("STATS_QUEUE_MAX_BATCH_SIZE", 50, 1)
	cfg.StatsQueueWorkers = p.intAtLeast("STATS_QUEUE_WORKERS", 1, 1)
	cfg.StatsQueueUpsert = p.bool("STATS_QUEUE_UPSERT", "false")
	cfg.StatsQueueProcessInterval = p.duration("STATS_QUEUE_PROCESS_INTERVAL", "0s")
	cfg.StatsQueueClaimLease = p.positiveDuration("STATS_QUEUE_CLAIM_LEASE", "10m")

	cfg.UptraceEnabled = p.bool("UPTRACE_ENABLED", "false")
	cfg.UptraceLogsEnabled = p.bool("UPTRACE_LOGS_ENABLED", "true")
	cfg.PyroscopeEnabled = p.bool("PYROSCOPE_ENABLED", "false")
	cfg.PyroscopeUploadRate = p.positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.DiagnosticsEnabled = p.bool("DIAGNOSTICS_ENABLED", "false")

	if p.err != nil {
		return Config{}, p.err
	}

	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.StatsQueueBatchSize > cfg.StatsQueueMaxBatchSize {
		return Config{}, fmt.Errorf("STATS_QUEUE_BATCH_SIZE must be <= STATS_QUEUE_MAX_BATCH_SIZE")
	}
	if cfg.StatsQueueProcessInterval < 0 {
		return Config{}, fmt.Errorf("STATS_QUEUE_PROCESS_INTERVAL must be >= 0")
	}
	if cfg.DiagnosticsEnabled && cfg.DiagnosticsAddr == "" {
		cfg.DiagnosticsAddr = ":6060"
	}

	return cfg, nil
}

// parser keeps the first parse failure so Load can read every variable
// before reporting.
type parser struct {
	err error
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *parser) bool(key, fallback string) bool {
	out, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		p.fail(fmt.Errorf("parse %s: %w", key, err))
	}
	return out
}

func (p *parser) duration(key, fallback string) time.Duration {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		p.fail(fmt.Errorf("parse %s: %w", key, err))
	}
	return out
}

func (p *parser) positiveDuration(key, fallback string) time.Duration {
	out := p.duration(key, fallback)
	if p.err == nil && out <= 0 {
		p.fail(fmt.Errorf("%s must be > 0", key))
	}
	return out
}

func (p *parser) intAtLeast(key string, fallback, minimum int) int {
	out, err := getEnvAsInt(key, fallback)
	if err != nil {
		p.fail(fmt.Errorf("parse %s: %w", key, err))
		return fallback
	}
	if out < minimum {
		p.fail(fmt.Errorf("%s must be >= %d", key, minimum))
	}
	return out
}

func (p *parser) idList(key string) []int64 {
	items := splitCSV(os.Getenv(key))
	out := make([]int64, 0, len(items))
	for _, item := range items {
		value, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			p.fail(fmt.Errorf("parse %s: invalid id %q: %w", key, item, err))
			continue
		}
		if value <= 0 {
			p.fail(fmt.Errorf("%s ids must be > 0, got %d", key, value))
			continue
		}
		out = append(out, value)
	}
	return out
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

	return strconv.Atoi(value)
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
