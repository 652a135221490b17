package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	DB          *sql.DB
	MongoDB     *mongo.Database
	MongoClient *mongo.Client
)

var retryDelay = 5 * time.Second

// LoadEnv loads environment variables from the first .env file found.
// Variables already present in the environment are not overridden.
func LoadEnv() error {
	// Try multiple possible locations for .env file
	possiblePaths := []string{
		os.Getenv("CENSUS_ENV"), // Environment-specified path
		".env",
		"../.env",
	}

	for _, path := range possiblePaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("error loading %s: %w", path, err)
		}
		log.Info().Str("path", path).Msg("loaded environment file")
		return nil
	}
	return fmt.Errorf("no .env file found")
}

// InitDBWithRetry opens the configured SQL database, retrying the connection
// up to cfg.DBMaxRetries times.
func InitDBWithRetry(cfg Config) error {
	attempts := cfg.DBMaxRetries
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = InitDB(cfg)
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Str("driver", cfg.DBDriver).
			Msgf("failed to connect to database (attempt %d/%d)", i+1, attempts)
		if i < attempts-1 {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("failed to connect to %s after %d attempts: %w", cfg.DBDriver, attempts, err)
}

func InitDB(cfg Config) error {
	log.Info().
		Str("driver", cfg.DBDriver).
		Str("host", cfg.DBHost).
		Str("port", cfg.DBPort).
		Str("database", cfg.DBName).
		Str("sslmode", cfg.DBSSLMode).
		Msg("connecting to database")

	db, err := sql.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	if cfg.DBDriver == "sqlite3" {
		// sqlite serializes writers; one connection avoids "database is locked".
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("error connecting to database: %w", err)
	}

	DB = db
	log.Info().Str("database", cfg.DBName).Msg("successfully connected to database")
	return nil
}

// ConnectMongoWithRetry connects to MongoDB with retries and selects
// cfg.MongoDBName.
func ConnectMongoWithRetry(cfg Config) error {
	if cfg.MongoURI == "" {
		return fmt.Errorf("MONGO_URI environment variable is required but not set")
	}
	attempts := cfg.DBMaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = connectMongo(cfg.MongoURI, cfg.MongoDBName)
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Msgf("failed to connect to MongoDB (attempt %d/%d)", i+1, attempts)
		if i < attempts-1 {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("failed to connect to MongoDB after %d attempts: %w", attempts, err)
}

func connectMongo(uri, dbName string) error {
	clientOptions := options.Client().ApplyURI(uri).
		SetMaxPoolSize(100).
		SetMinPoolSize(5).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetSocketTimeout(30 * time.Second).
		SetRetryReads(true).
		SetReadPreference(readpref.Primary())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("error connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("error pinging MongoDB: %w", err)
	}

	MongoClient = client
	MongoDB = client.Database(dbName)
	log.Info().Str("database", dbName).Msg("successfully connected to MongoDB")
	return nil
}

// CheckMongoHealth pings the MongoDB census source.
func CheckMongoHealth(ctx context.Context) error {
	if MongoClient == nil {
		return fmt.Errorf("MongoDB connection not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := MongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB health check failed: %w", err)
	}
	return nil
}

// CloseDB releases the SQL pool and the MongoDB client.
func CloseDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if DB != nil {
		if err := DB.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database connection")
		}
		DB = nil
	}

	if MongoClient != nil {
		if err := MongoClient.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("error closing MongoDB connection")
		}
		MongoClient = nil
		MongoDB = nil
	}
}
