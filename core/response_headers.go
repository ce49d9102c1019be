package core

import (
	"net/http"
)

// headersAllowCors opens the server to cross-origin callers. Set only for
// requests carrying a real Origin, never for sandboxed-iframe requests
// (Origin: null), which must stay as restricted as the production runtime
// keeps them.
var headersAllowCors = map[string]string{
	"Access-Control-Allow-Headers": "Origin, X-Requested-With, Content-Type, Accept",
	"Access-Control-Allow-Origin":  "*",
}

// headersNoStore disables caching on every response. A cached response would
// also freeze the injected live-reload client, so nothing may be stored.
var headersNoStore = map[string]string{
	"Cache-Control": "no-store",
}

var headersJson = map[string]string{
	"Content-Type":           "application/json; charset=utf-8",
	"X-Content-Type-Options": "nosniff",
}

// setHeaders applies one or more sets of headers to the response writer.
// Headers from later maps will overwrite headers from earlier maps if keys
// conflict.
func setHeaders(w http.ResponseWriter, headers ...map[string]string) {
	for _, headerMap := range headers {
		for key, value := range headerMap {
			w.Header().Set(key, value)
		}
	}
}
