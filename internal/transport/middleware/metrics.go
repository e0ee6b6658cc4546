package middleware

import (
	"net/http"
	"time"
)

type requestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Metrics records every request with the mux pattern that served it. It must
// be the innermost middleware: the mux sets r.Pattern on the request it is
// handed, so no middleware may copy the request between the two.
func Metrics(obs requestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			obs.ObserveRequest(r.Method, r.Pattern, sw.status, time.Since(start))
		})
	}
}
