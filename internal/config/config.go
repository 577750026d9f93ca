package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/league-hub/internal/platform/logging"
	"github.com/riskibarqy/league-hub/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ShutdownGrace  time.Duration
	LogLevel       logging.Level
	LogFormat      string

	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	AdminToken         string

	StorageBackend          string
	DBURL                   string
	DBDisablePreparedBinary bool
	DBMaxOpenConns          int
	DBSeedOnStart           bool

	CacheBackend string
	CacheTTL     time.Duration
	RedisURL     string
	RedisPrefix  string

	NATSEnabled bool
	NATSURL     string
	NATSSubject string

	LiveFeedBaseURL  string
	LiveFeedAPIKey   string
	ScorePageURL     string
	FeedTimeout      time.Duration
	FeedMaxRetries   int
	FeedBackoff      time.Duration
	FeedCircuit      resilience.CircuitBreakerConfig
	ReviewTTL        time.Duration
	RecomputeWorkers int

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool
	// Request logs for these paths are kept out of Uptrace.
	UptraceLogSkipPaths []string
	UptraceLogLevel     logging.Level

	PprofEnabled bool
	PprofAddr    string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads the environment. Every value has a default that runs the service
// against the in-memory store with the demo seed.
func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        strings.TrimSpace(getEnv("APP_SERVICE_NAME", "league-hub-api")),
		ServiceVersion:     strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:           strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AdminToken:         strings.TrimSpace(getEnv("ADMIN_TOKEN", "")),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		RedisURL:           strings.TrimSpace(getEnv("REDIS_URL", "")),
		RedisPrefix:        getEnv("REDIS_PREFIX", "leaguehub:"),
		NATSURL:            strings.TrimSpace(getEnv("NATS_URL", "nats://127.0.0.1:4222")),
		NATSSubject:        strings.TrimSpace(getEnv("NATS_SUBJECT", "leaguehub.competition.updated")),
		LiveFeedBaseURL:    strings.TrimSpace(getEnv("LIVEFEED_BASE_URL", "https://api.livefeed.example/v1")),
		LiveFeedAPIKey:     strings.TrimSpace(getEnv("LIVEFEED_API_KEY", "")),
		ScorePageURL:       strings.TrimSpace(getEnv("SCOREPAGE_URL", "")),
		PprofAddr:          strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),

		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	cfg.LogFormat, err = parseEnum("APP_LOG_FORMAT", getEnv("APP_LOG_FORMAT", logging.FormatJSON), logging.FormatJSON, logging.FormatConsole)
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	if cfg.SwaggerEnabled, err = getEnvAsBool("SWAGGER_ENABLED", swaggerDefault); err != nil {
		return Config{}, err
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "30s"); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownGrace, err = getEnvAsDuration("APP_SHUTDOWN_GRACE", "10s"); err != nil {
		return Config{}, err
	}

	if err := loadStorage(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadFeeds(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadStorage(cfg *Config) error {
	var err error

	cfg.StorageBackend, err = parseEnum("STORAGE_BACKEND", getEnv("STORAGE_BACKEND", StorageMemory), StorageMemory, StoragePostgres)
	if err != nil {
		return err
	}
	if cfg.StorageBackend == StoragePostgres && cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORAGE_BACKEND=%s", StoragePostgres)
	}
	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", "true"); err != nil {
		return err
	}
	if cfg.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.DBMaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}
	if cfg.DBSeedOnStart, err = getEnvAsBool("DB_SEED_ON_START", "true"); err != nil {
		return err
	}

	cfg.CacheBackend, err = parseEnum("CACHE_BACKEND", getEnv("CACHE_BACKEND", CacheMemory), CacheNone, CacheMemory, CacheRedis)
	if err != nil {
		return err
	}
	if cfg.CacheBackend == CacheRedis && cfg.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=%s", CacheRedis)
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "60s"); err != nil {
		return err
	}

	if cfg.NATSEnabled, err = getEnvAsBool("NATS_ENABLED", "false"); err != nil {
		return err
	}
	if cfg.NATSEnabled && cfg.NATSURL == "" {
		return fmt.Errorf("NATS_URL is required when NATS_ENABLED=true")
	}
	return nil
}

func loadFeeds(cfg *Config) error {
	var err error

	if cfg.FeedTimeout, err = getEnvAsDuration("FEED_TIMEOUT", "15s"); err != nil {
		return err
	}
	if cfg.FeedMaxRetries, err = getEnvAsInt("FEED_MAX_RETRIES", 1); err != nil {
		return fmt.Errorf("invalid FEED_MAX_RETRIES: %w", err)
	}
	if cfg.FeedMaxRetries < 0 {
		return fmt.Errorf("FEED_MAX_RETRIES must be >= 0")
	}
	if cfg.FeedBackoff, err = getEnvAsDuration("FEED_BACKOFF", "300ms"); err != nil {
		return err
	}

	circuitEnabled, err := getEnvAsBool("FEED_CIRCUIT_ENABLED", "true")
	if err != nil {
		return err
	}
	failureCount, err := getEnvAsInt("FEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return fmt.Errorf("invalid FEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if failureCount < 1 {
		return fmt.Errorf("FEED_CIRCUIT_FAILURE_COUNT must be > 0")
	}
	openTimeout, err := getEnvAsDuration("FEED_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return err
	}
	halfOpenMaxReq, err := getEnvAsInt("FEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return fmt.Errorf("invalid FEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if halfOpenMaxReq < 1 {
		return fmt.Errorf("FEED_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
	}
	cfg.FeedCircuit = resilience.CircuitBreakerConfig{
		Enabled:          circuitEnabled,
		FailureThreshold: failureCount,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}

	if cfg.ReviewTTL, err = getEnvAsDuration("REVIEW_TTL", "30m"); err != nil {
		return err
	}
	if cfg.RecomputeWorkers, err = getEnvAsInt("RECOMPUTE_WORKERS", 4); err != nil {
		return fmt.Errorf("invalid RECOMPUTE_WORKERS: %w", err)
	}
	if cfg.RecomputeWorkers < 1 || cfg.RecomputeWorkers > 32 {
		return fmt.Errorf("RECOMPUTE_WORKERS must be between 1 and 32")
	}
	return nil
}

func loadObservability(cfg *Config) error {
	var err error

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", "false"); err != nil {
		return err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = getEnvAsBool("UPTRACE_LOGS_ENABLED", "true"); err != nil {
		return err
	}
	cfg.UptraceLogSkipPaths = splitCSV(getEnv("UPTRACE_LOG_SKIP_PATHS", "/healthz"))
	cfg.UptraceLogLevel = logging.ParseLevel(getEnv("UPTRACE_LOG_LEVEL", "info"))

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", "false"); err != nil {
		return err
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		cfg.PprofAddr = ":6060"
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", "false"); err != nil {
		return err
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
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

func getEnvAsBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration rejects zero and negative values.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func parseEnum(key, raw string, allowed ...string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, item := range allowed {
		if value == item {
			return value, nil
		}
	}
	return "", fmt.Errorf("invalid %s %q: valid values are %s", key, raw, strings.Join(allowed, ", "))
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

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
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
