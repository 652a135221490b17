package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iitbhu2k25/DSS-Nextjs/apperrors"
	"github.com/iitbhu2k25/DSS-Nextjs/metrics"
	"github.com/iitbhu2k25/DSS-Nextjs/middleware"
	"github.com/iitbhu2k25/DSS-Nextjs/projection"
	"github.com/iitbhu2k25/DSS-Nextjs/repository"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 32 << 20

// HealthChecker reports on the backing database for /health/detailed.
type HealthChecker interface {
	Ping(ctx context.Context) error
	ExistingTables(ctx context.Context) []string
}

// Pinger checks that a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Options wires a Handler to its dependencies.
type Options struct {
	Locations repository.LocationStore
	Census    projection.CensusSource
	Metrics   *metrics.Collector
	Health    HealthChecker

	// MongoHealth is set when census rows are read from MongoDB.
	MongoHealth Pinger

	// MaxProjectionYears caps the span of a range projection; 0 disables the cap.
	MaxProjectionYears int

	// Reported by /health/detailed.
	DBDriver     string
	DBName       string
	CensusSource string
}

// Handler serves the census API.
type Handler struct {
	locations repository.LocationStore
	census    projection.CensusSource
	metrics   *metrics.Collector
	health    HealthChecker
	mongo     Pinger
	maxSpan   int

	dbDriver     string
	dbName       string
	censusSource string
}

func New(opts Options) *Handler {
	return &Handler{
		locations:    opts.Locations,
		census:       opts.Census,
		metrics:      opts.Metrics,
		health:       opts.Health,
		mongo:        opts.MongoHealth,
		maxSpan:      opts.MaxProjectionYears,
		dbDriver:     opts.DBDriver,
		dbName:       opts.DBName,
		censusSource: opts.CensusSource,
	}
}

// Register mounts every route on api, normally the /api/v1 subrouter.
func (h *Handler) Register(api *mux.Router) {
	// Location routes
	api.HandleFunc("/locations/states", h.GetStates).Methods(http.MethodGet)
	api.HandleFunc("/locations/districts", h.GetDistricts).Methods(http.MethodPost)
	api.HandleFunc("/locations/subdistricts", h.GetSubdistricts).Methods(http.MethodPost)
	api.HandleFunc("/locations/villages", h.GetVillages).Methods(http.MethodPost)

	// Population routes
	api.HandleFunc("/population/time-series", h.ProjectPopulation).Methods(http.MethodPost)
	api.HandleFunc("/population/time-series/geometry", h.ProjectGeometry).Methods(http.MethodPost)
	api.HandleFunc("/population/time-series/export", h.ExportProjection).Methods(http.MethodPost)

	// Health check
	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	api.HandleFunc("/health/detailed", h.HealthDetailed).Methods(http.MethodGet)
}

// decodeJSON reads a JSON body into v. Syntax problems are reported as
// BAD_REQUEST and unusable values as INVALID_FIELD.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var sizeErr *http.MaxBytesError
	switch {
	case errors.As(err, &sizeErr):
		return apperrors.New(apperrors.KindValidation, apperrors.CodeBadRequest, "request body too large")
	case errors.Is(err, io.EOF):
		return apperrors.New(apperrors.KindValidation, apperrors.CodeBadRequest, "request body is empty")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.Wrap(apperrors.KindValidation, apperrors.CodeBadRequest, "malformed JSON body", err)
	case errors.As(err, &typeErr):
		return apperrors.InvalidField(typeErr.Field, "unexpected "+typeErr.Value)
	default:
		return apperrors.Wrap(apperrors.KindValidation, apperrors.CodeInvalidField, err.Error(), err)
	}
}

func requestID(ctx context.Context) string {
	return middleware.GetRequestID(ctx)
}
