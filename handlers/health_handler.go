package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/iitbhu2k25/DSS-Nextjs/utils"
)

type HealthResponse struct {
	Status       string    `json:"status"`
	DBStatus     string    `json:"db_status"`
	DBDetails    DBDetails `json:"db_details"`
	MongoStatus  string    `json:"mongo_status,omitempty"`
	CensusSource string    `json:"census_source,omitempty"`
	Error        string    `json:"error,omitempty"`
}

type DBDetails struct {
	Driver   string   `json:"driver"`
	Database string   `json:"database"`
	Tables   []string `json:"tables,omitempty"`
}

// Health is a plain liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("Health: failed to write response")
	}
}

// HealthDetailed pings the database and lists the readable census tables.
// When census rows come from MongoDB it pings that too. It answers 503 when
// either is unreachable.
func (h *Handler) HealthDetailed(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:       "ok",
		CensusSource: h.censusSource,
		DBDetails: DBDetails{
			Driver:   h.dbDriver,
			Database: h.dbName,
		},
	}

	status := http.StatusOK
	switch {
	case h.health == nil:
		response.Status = "error"
		response.DBStatus = "not_initialized"
		response.Error = "Database connection not initialized"
		status = http.StatusServiceUnavailable
	default:
		if err := h.health.Ping(r.Context()); err != nil {
			response.Status = "error"
			response.DBStatus = "connection_error"
			response.Error = "Database ping failed: " + err.Error()
			status = http.StatusServiceUnavailable
			break
		}
		response.DBStatus = "connected"
		response.DBDetails.Tables = h.health.ExistingTables(r.Context())
	}

	if h.mongo != nil {
		if err := h.mongo.Ping(r.Context()); err != nil {
			response.Status = "error"
			response.MongoStatus = "connection_error"
			if response.Error == "" {
				response.Error = "MongoDB ping failed: " + err.Error()
			}
			status = http.StatusServiceUnavailable
		} else {
			response.MongoStatus = "connected"
		}
	}

	utils.WriteJSON(w, status, response)
}
