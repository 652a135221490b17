package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/iitbhu2k25/DSS-Nextjs/config"
	"github.com/iitbhu2k25/DSS-Nextjs/handlers"
	"github.com/iitbhu2k25/DSS-Nextjs/metrics"
	"github.com/iitbhu2k25/DSS-Nextjs/middleware"
	"github.com/iitbhu2k25/DSS-Nextjs/projection"
	"github.com/iitbhu2k25/DSS-Nextjs/repository"
)

func main() {
	startTime := time.Now()

	// Load environment variables first
	envErr := config.LoadEnv()
	cfg := config.Load()
	config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Warn().Err(envErr).Msg("continuing without .env file")
	}
	log.Info().Str("started_at", startTime.Format(time.RFC3339)).Msg("starting server initialization")

	// Initialize the SQL database with retries
	log.Info().Str("driver", cfg.DBDriver).Msg("initializing database")
	if err := config.InitDBWithRetry(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer config.CloseDB()
	if cfg.DBAutoMigrate {
		if err := repository.CreateSchema(context.Background(), config.DB); err != nil {
			log.Fatal().Err(err).Msg("failed to create schema")
		}
	}
	store := repository.NewSQLStore(config.DB, cfg.DBQueryTimeout)

	census, err := censusSource(cfg, store)
	if err != nil {
		log.Fatal().Err(err).Str("census_source", cfg.CensusSource).Msg("failed to initialize census source")
	}

	lookups := repository.NewCachedLocations(store, config.InitCache(cfg.LookupCacheTTL))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector, err := metrics.New(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	r := mux.NewRouter()

	// Apply middlewares in correct order
	r.Use(middleware.RequestID)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.Metrics(collector))
	r.Use(middleware.RecoveryMiddleware)

	r.Handle("/metrics", collector.Handler()).Methods(http.MethodGet)

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	var mongoHealth handlers.Pinger
	if cfg.CensusSource == config.SourceMongo {
		mongoHealth = handlers.PingFunc(config.CheckMongoHealth)
	}
	handlers.New(handlers.Options{
		Locations:          lookups,
		Census:             census,
		Metrics:            collector,
		Health:             store,
		MongoHealth:        mongoHealth,
		MaxProjectionYears: cfg.MaxProjectionYears,
		DBDriver:           cfg.DBDriver,
		DBName:             cfg.DBName,
		CensusSource:       cfg.CensusSource,
	}).Register(api)
	log.Info().Msg("routes registered successfully")

	srv := &http.Server{
		Handler:           rootHandler(cfg, r),
		Addr:              ":" + cfg.Port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Dur("startup", time.Since(startTime)).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	log.Info().Msgf("health check endpoint: http://localhost:%s/api/v1/health", cfg.Port)

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutdown signal received")
	case err := <-serverErrors:
		log.Error().Err(err).Msg("server error received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	} else {
		log.Info().Msg("server shutdown completed successfully")
	}
	config.ClearAllCaches()
}

// censusSource picks where decadal census rows are read from.
func censusSource(cfg config.Config, store *repository.SQLStore) (projection.CensusSource, error) {
	if cfg.CensusSource != config.SourceMongo {
		return store, nil
	}
	if err := config.ConnectMongoWithRetry(cfg); err != nil {
		return nil, err
	}
	source := repository.NewMongoCensusSource(config.MongoDB, cfg.DBQueryTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := source.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("continuing without census index")
	}
	return source, nil
}

// rootHandler wraps the router with CORS and gzip compression. CORS sits
// outside the router so preflight requests are answered before route matching.
func rootHandler(cfg config.Config, r http.Handler) http.Handler {
	corsLogger := log.With().Str("component", "cors").Logger()
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
			"X-Requested-With",
			"X-Request-ID",
			"Origin",
		},
		ExposedHeaders: []string{
			"Content-Length",
			"Content-Type",
			"Content-Disposition",
			"X-Request-ID",
		},
		AllowCredentials: false,
		MaxAge:           86400,
		Debug:            cfg.CORSDebug,
		Logger:           &corsLogger,
	})

	h := corsHandler.Handler(r)
	if cfg.CORSDebug {
		h = middleware.CORSDebugMiddleware(h)
	}
	return gorillahandlers.CompressHandler(h)
}
