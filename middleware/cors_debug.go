package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// CORSDebugMiddleware logs the CORS-relevant headers of each request and
// response. Enabled with CORS_DEBUG; the policy itself is enforced by rs/cors.
func CORSDebugMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info().
			Str("origin", r.Header.Get("Origin")).
			Str("method", r.Method).
			Str("request_method", r.Header.Get("Access-Control-Request-Method")).
			Str("request_headers", r.Header.Get("Access-Control-Request-Headers")).
			Bool("preflight", r.Method == http.MethodOptions).
			Msg("[CORS Debug] request")

		next.ServeHTTP(w, r)

		log.Info().
			Str("allow_origin", w.Header().Get("Access-Control-Allow-Origin")).
			Str("vary", w.Header().Get("Vary")).
			Msg("[CORS Debug] response")
	})
}
