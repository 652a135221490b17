// Package utils holds the JSON response helpers shared by the handlers.
package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/iitbhu2k25/DSS-Nextjs/apperrors"
	"github.com/iitbhu2k25/DSS-Nextjs/middleware"
)

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	TraceID string                 `json:"trace_id"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	WriteJSON(w, status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
			TraceID: middleware.GetRequestID(ctx),
		},
	})
}

// WriteAppError maps err to its HTTP status and error body. Internal errors
// are logged with their cause and reported to the client without it.
func WriteAppError(ctx context.Context, w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	code := apperrors.CodeOf(err)

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("code", code).Str("request_id", middleware.GetRequestID(ctx)).Msg("request failed")
		WriteError(ctx, w, status, code, "internal server error", nil)
		return
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		WriteError(ctx, w, status, code, appErr.Message, appErr.Details)
		return
	}
	WriteError(ctx, w, status, code, err.Error(), nil)
}
