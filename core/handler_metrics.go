package core

import (
	"net"
	"net/http"
	"strings"
)

// RecordRequest is a chain observer feeding the hot-path sketch. It runs
// after the response was sent and never writes to it.
func (a *App) RecordRequest() http.Handler {
	return http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		a.hot.Observe(r.URL.Path)
	})
}

// MetricsHandler reports the hottest request paths as JSON.
// Endpoint: GET /.modserve/metrics
// Disabled (404) unless metrics are enabled; restricted to exact client IP
// matches from the allow-list.
func (a *App) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	cfg := a.Config()
	if !cfg.Metrics.Enabled {
		writeJsonError(w, errorNotFound)
		return
	}

	remote := clientIP(r.RemoteAddr)
	if remote == "" {
		writeJsonError(w, errorNotFound)
		return
	}

	allowed := false
	for _, ip := range cfg.Metrics.AllowedIPs {
		if ip == remote {
			allowed = true
			break
		}
	}
	if !allowed {
		writeJsonError(w, errorNotFound)
		return
	}

	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    "ok_metrics",
			Message: "Hottest request paths",
		},
		Data: a.hot.Top(),
	})
}

// clientIP strips the port from a RemoteAddr, handling bracketed IPv6.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return strings.Trim(remoteAddr, "[]")
	}
	return host
}
