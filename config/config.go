package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration assembled from the environment.
type Config struct {
	Port string

	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBDSN          string
	DBMaxRetries   int
	DBQueryTimeout time.Duration
	DBAutoMigrate  bool

	CensusSource string
	MongoURI     string
	MongoDBName  string

	LookupCacheTTL     time.Duration
	MaxProjectionYears int

	CORSOrigins []string
	CORSDebug   bool

	LogLevel  string
	LogFormat string
}

// Census data sources.
const (
	SourceSQL   = "sql"
	SourceMongo = "mongo"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
}

// Load reads the configuration from environment variables, applying defaults
// for anything unset or unparsable.
func Load() Config {
	cfg := Config{
		Port: getEnvWithDefault("PORT", "8080"),

		DBDriver:       strings.ToLower(getEnvWithDefault("DB_DRIVER", "postgres")),
		DBHost:         getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:         getEnvWithDefault("DB_PORT", "5432"),
		DBUser:         getEnvWithDefault("DB_USER", "postgres"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getEnvWithDefault("DB_NAME", "census"),
		DBSSLMode:      os.Getenv("DB_SSL_MODE"),
		DBDSN:          os.Getenv("DB_DSN"),
		DBMaxRetries:   getEnvAsInt("DB_MAX_RETRIES", 5),
		DBQueryTimeout: getEnvAsDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		DBAutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", false),

		CensusSource: strings.ToLower(getEnvWithDefault("CENSUS_SOURCE", SourceSQL)),
		MongoURI:     getEnvWithDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:  getEnvWithDefault("MONGO_DB_NAME", "census"),

		LookupCacheTTL:     getEnvAsDuration("LOOKUP_CACHE_TTL", 24*time.Hour),
		MaxProjectionYears: getEnvAsInt("MAX_PROJECTION_YEARS", 200),

		CORSOrigins: getEnvAsList("CORS_ORIGINS", defaultCORSOrigins),
		CORSDebug:   getEnvAsBool("CORS_DEBUG", false),

		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnvWithDefault("LOG_FORMAT", "console")),
	}
	if cfg.DBSSLMode == "" {
		// Managed Postgres hosts reject plaintext connections.
		if strings.Contains(cfg.DBHost, "aivencloud.com") {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}
	return cfg
}

// DSN returns the data source name for DBDriver. DB_DSN wins when set.
func (c Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	if c.DBDriver == "sqlite3" {
		return "file:" + url.PathEscape(c.DBName) + ".db?cache=shared"
	}
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=" + c.DBSSLMode
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
