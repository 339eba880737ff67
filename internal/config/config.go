package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBSQLitePath      string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
	DBAutoMigrate     bool
	DBLogLevel        string
	DBSlowQueryMS     int

	Redis    RedisConfig
	Snapshot SnapshotConfig
}

// RedisConfig holds the redis connection used by the redis snapshot store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SnapshotConfig selects and tunes the snapshot persistence backend.
type SnapshotConfig struct {
	Store     string
	KeyPrefix string
	TTL       time.Duration
}

const (
	SnapshotStoreDatabase = "database"
	SnapshotStoreRedis    = "redis"
	SnapshotStoreMemory   = "memory"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:           getenv("APP_SERVICE", "eventdesk"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		OTLPEndpoint:      getenv("OTLP_ENDPOINT", "localhost:4317"),
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "postgres"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBSQLitePath:      getenv("DATABASE_SQLITE_PATH", "eventdesk.db"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
		DBAutoMigrate:     getenvBool("DATABASE_AUTO_MIGRATE", false),
		DBLogLevel:        getenv("DATABASE_LOG_LEVEL", "warn"),
		DBSlowQueryMS:     getenvInt("DATABASE_SLOW_QUERY_MS", 200),
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
			DB:       getenvInt("REDIS_DB", 0),
		},
		Snapshot: SnapshotConfig{
			Store:     normalizeSnapshotStore(getenv("SNAPSHOT_STORE", SnapshotStoreDatabase)),
			KeyPrefix: getenv("SNAPSHOT_KEY_PREFIX", "eventdesk:snapshot"),
			TTL:       time.Duration(getenvInt("SNAPSHOT_TTL_SECONDS", 0)) * time.Second,
		},
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func normalizeSnapshotStore(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case SnapshotStoreRedis:
		return SnapshotStoreRedis
	case SnapshotStoreMemory:
		return SnapshotStoreMemory
	default:
		return SnapshotStoreDatabase
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
