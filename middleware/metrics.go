package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iitbhu2k25/DSS-Nextjs/metrics"
)

// Metrics records request counts and latencies labeled by the matched mux
// route template.
func Metrics(c *metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			c.ObserveRequest(routeName(r), r.Method, rw.status, time.Since(start))
		})
	}
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
