package core

import (
	"net/http"
	"time"
)

// RequestLog logs one line per request. Wired only when request logging is
// enabled in the config.
func (a *App) RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &ResponseRecorder{ResponseWriter: w, StartTime: time.Now()}

		next.ServeHTTP(rec, r)

		a.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.Status,
			"bytes", rec.BytesWritten,
			"duration", rec.Duration(),
			"origin", r.Header.Get("Origin"),
		)
	})
}
