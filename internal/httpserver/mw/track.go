package mw

import (
	"net/http"

	"github.com/darrylwest/service-uptime/pkg/status"
)

// Track counts every request as an access and every 5xx response as an
// error on st. Requests to skipPaths (probes, scrapes) are not counted.
func Track(st status.ServiceStatus, skipPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			ww := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(ww, r)

			st.Access.Incr()
			if ww.status >= http.StatusInternalServerError {
				st.Errors.Incr()
			}
		})
	}
}
