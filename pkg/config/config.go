package config

import (
	"os"
	"strconv"
	"time"

	"artwork-dedup/internal/constants"
)

type Config struct {
	DatabaseURL string
	Port        string

	// Similarity engine settings
	SimilarityConfigPath  string // optional YAML override for weights/thresholds
	CandidateRadiusMeters float64
	CandidateLimit        int

	// Ingest pipeline settings
	WorkerCount int

	// Database performance settings
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime int // minutes
	DBConnMaxIdleTime int // minutes
	DBReadTimeout     time.Duration
	DBWriteTimeout    time.Duration

	// Logging settings
	LogLevel          string
	LogFormat         string // "json" or "text"
	LogFile           string
	EnableFileLogging bool

	// Environment & metrics
	Env            string // development, staging, production
	MetricsEnabled bool
	MetricsPath    string
}

func Load() *Config {
	workerCount, _ := strconv.Atoi(getEnv("WORKER_COUNT", "0")) // 0 = use default

	radius, _ := strconv.ParseFloat(getEnv("CANDIDATE_RADIUS_METERS", "1000"), 64)
	limit, _ := strconv.Atoi(getEnv("CANDIDATE_LIMIT", "100"))

	// Database performance settings with defaults
	dbMaxOpenConns, _ := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	dbMaxIdleConns, _ := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "10"))
	dbConnMaxLifetime, _ := strconv.Atoi(getEnv("DB_CONN_MAX_LIFETIME_MINUTES", "10"))
	dbConnMaxIdleTime, _ := strconv.Atoi(getEnv("DB_CONN_MAX_IDLE_TIME_MINUTES", "5"))

	dbReadTO, _ := time.ParseDuration(getEnv("DB_READ_TIMEOUT", "8s"))
	dbWriteTO, _ := time.ParseDuration(getEnv("DB_WRITE_TIMEOUT", "6s"))

	enableFileLogging, _ := strconv.ParseBool(getEnv("ENABLE_FILE_LOGGING", "false"))

	env := getEnv("ENV", "development")
	metricsDefault := env == "development" || env == "staging"
	metricsEnabled, _ := strconv.ParseBool(getEnv("METRICS_ENABLED", strconv.FormatBool(metricsDefault)))

	if radius <= 0 {
		radius = constants.CandidateRadiusMetersDefault
	}
	if limit <= 0 {
		limit = constants.CandidateLimitDefault
	}

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        getEnv("PORT", "8080"),

		SimilarityConfigPath:  getEnv("SIMILARITY_CONFIG_PATH", ""),
		CandidateRadiusMeters: radius,
		CandidateLimit:        limit,

		WorkerCount: workerCount,

		DBMaxOpenConns:    dbMaxOpenConns,
		DBMaxIdleConns:    dbMaxIdleConns,
		DBConnMaxLifetime: dbConnMaxLifetime,
		DBConnMaxIdleTime: dbConnMaxIdleTime,
		DBReadTimeout:     dbReadTO,
		DBWriteTimeout:    dbWriteTO,

		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		LogFile:           getEnv("LOG_FILE", ""),
		EnableFileLogging: enableFileLogging,

		Env:            env,
		MetricsEnabled: metricsEnabled,
		MetricsPath:    getEnv("METRICS_PATH", "/metrics"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
