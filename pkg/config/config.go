package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the snapshot store and history log.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Storage
	Store StoreConfig

	// Database (only required when Store.Backend == "postgres")
	Database DatabaseConfig

	// Redis (fetch-result cache)
	Redis RedisConfig

	// Data acquisition
	Fetch FetchConfig

	// Operator-supplied signal inputs
	Signals SignalsConfig

	// Scoring
	CriticalThreshold int    // score at or above this is flagged critical
	EvaluateCron      string // cron expression (with seconds) for scheduled evaluations

	// Logging
	LogLevel  string
	LogFormat string
}

// StoreConfig selects and parameterizes the persistence backend.
type StoreConfig struct {
	Backend      string // "file" or "postgres"
	SnapshotFile string
	HistoryFile  string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration for the acquisition cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// FetchConfig holds the acquisition layer settings.
type FetchConfig struct {
	CacheTTL    time.Duration // TTL for cached upstream values
	Timeout     time.Duration // per-request HTTP timeout
	RateLimit   float64       // requests per second against upstream sources
	RateBurst   int
	ETFFlowsURL string
	FredURL     string
	YahooURL    string
}

// SignalsConfig carries operator-set signal inputs. The three tension
// signals are tier names ("Green", "Amber", "Red"); CapexGrowth and
// USDReserveShare are raw numeric readings with no live source.
type SignalsConfig struct {
	CapexGrowth       float64
	USDReserveShare   float64
	ChinaUSTension    string
	CriticalResources string
	UkraineEscalation string
}

// Load reads configuration from environment variables.
// This function is the only caller of os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Store: StoreConfig{
			Backend:      getEnv("STORE_BACKEND", BackendFile),
			SnapshotFile: getEnv("SNAPSHOT_FILE", "last_snapshot.json"),
			HistoryFile:  getEnv("HISTORY_FILE", "crash_history.csv"),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Fetch: FetchConfig{
			CacheTTL:    getEnvAsDuration("FETCH_CACHE_TTL", "15m"),
			Timeout:     getEnvAsDuration("FETCH_TIMEOUT", "12s"),
			RateLimit:   getEnvAsFloat("FETCH_RATE_LIMIT", 2.0),
			RateBurst:   getEnvAsInt("FETCH_RATE_BURST", 4),
			ETFFlowsURL: getEnv("ETF_FLOWS_URL", "https://www.etf.com/channels/artificial-intelligence-etfs"),
			FredURL:     getEnv("FRED_URL", "https://fred.stlouisfed.org/graph/fredgraph.csv"),
			YahooURL:    getEnv("YAHOO_URL", "https://query1.finance.yahoo.com"),
		},

		Signals: SignalsConfig{
			CapexGrowth:       getEnvAsFloat("CAPEX_GROWTH_PCT", 35.0),
			USDReserveShare:   getEnvAsFloat("USD_RESERVE_SHARE_PCT", 58.0),
			ChinaUSTension:    getEnv("CHINA_US_TENSION", "Amber"),
			CriticalResources: getEnv("CRITICAL_RESOURCES", "Amber"),
			UkraineEscalation: getEnv("UKRAINE_ESCALATION", "Amber"),
		},

		CriticalThreshold: getEnvAsInt("CRITICAL_THRESHOLD", 50),
		EvaluateCron:      getEnv("EVALUATE_CRON", "0 0 * * * *"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Store.Backend {
	case BackendFile:
		if c.Store.SnapshotFile == "" || c.Store.HistoryFile == "" {
			return fmt.Errorf("SNAPSHOT_FILE and HISTORY_FILE are required for the file backend")
		}
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q", BackendFile, BackendPostgres)
	}

	for name, tier := range map[string]string{
		"CHINA_US_TENSION":   c.Signals.ChinaUSTension,
		"CRITICAL_RESOURCES": c.Signals.CriticalResources,
		"UKRAINE_ESCALATION": c.Signals.UkraineEscalation,
	} {
		if tier != "Green" && tier != "Amber" && tier != "Red" {
			return fmt.Errorf("%s must be one of: Green, Amber, Red (got %q)", name, tier)
		}
	}

	if c.CriticalThreshold < 0 || c.CriticalThreshold > 100 {
		return fmt.Errorf("CRITICAL_THRESHOLD must be in [0,100]")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
