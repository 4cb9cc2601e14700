package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	LogLevel    string
	LogFormat   string
	LogDir      string // empty logs to stdout only
	Environment string
	ServiceName string
	Version     string

	// HTTP
	TrustedProxies  []string // X-Forwarded-For is only honored from these addresses
	MaxRequestBytes int64

	// Rule database and recomputation
	RulesPath        string
	StrictParity     bool
	RecomputeWorkers int

	// Latest-report cache
	ReportCacheSize int
	ReportCacheTTL  time.Duration

	// Persistence
	PersistReports    bool
	PersistTimeout    time.Duration
	ReportStore       string // postgres or sqlite
	SQLitePath        string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", ""),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),

		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),
		MaxRequestBytes: int64(getEnvAsInt("MAX_REQUEST_BYTES", DefaultMaxRequestBytes)),

		RulesPath:        getEnv("RULES_PATH", ConfigPathResourceTypes),
		StrictParity:     getEnvAsBool("STRICT_PARITY", true),
		RecomputeWorkers: getEnvAsInt("RECOMPUTE_WORKERS", DefaultRecomputeWorkers),

		ReportCacheSize: getEnvAsInt("REPORT_CACHE_SIZE", DefaultReportCacheSize),
		ReportCacheTTL:  getEnvAsDuration("REPORT_CACHE_TTL", DefaultReportCacheTTL),

		PersistReports:    getEnvAsBool("PERSIST_REPORTS", false),
		PersistTimeout:    getEnvAsDuration("PERSIST_TIMEOUT", DefaultPersistTimeout),
		ReportStore:       strings.ToLower(getEnv("REPORT_STORE", ReportStorePostgres)),
		SQLitePath:        getEnv("SQLITE_PATH", DefaultSQLitePath),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "cityproduction"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.RecomputeWorkers < 1 {
		return nil, fmt.Errorf("RECOMPUTE_WORKERS must be at least 1, got %d", cfg.RecomputeWorkers)
	}

	if cfg.ReportStore != ReportStorePostgres && cfg.ReportStore != ReportStoreSQLite {
		return nil, fmt.Errorf("REPORT_STORE must be %q or %q, got %q", ReportStorePostgres, ReportStoreSQLite, cfg.ReportStore)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsList splits a comma-separated variable, dropping empty items
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvAsBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
