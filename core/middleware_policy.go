package core

import (
	"net/http"
	"strings"
)

// cspSandbox is the fixed directive emulating the production runtime: mods
// run sandboxed with scripts allowed, and may load from their own origin,
// eval/inline code, and blob/data URLs.
const cspSandbox = "sandbox allow-scripts; default-src 'self' 'unsafe-eval' 'unsafe-inline' blob: data:"

// originNull is what a sandboxed iframe without allow-same-origin sends.
const originNull = "null"

// HeaderPolicy approximates the production runtime's cross-origin and CSP
// behavior on every response, then defers to the next handler. It never
// rejects a request.
//
// A request with a real Origin header comes from tooling outside the sandbox
// (browser extensions, external dev tools hitting the server directly); its
// origin is recorded and cross-origin access is opened up. Origin: null means
// a sandboxed iframe, which could never make such calls against the real
// runtime, so it is deliberately left out of the allow-list.
func (a *App) HeaderPolicy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		isCorsRequest := origin != ""
		fromOutsideSandbox := origin != originNull

		if isCorsRequest && fromOutsideSandbox {
			a.origins.Add(origin)
			setHeaders(w, headersAllowCors)
		}

		setHeaders(w, headersNoStore)

		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Security-Policy", a.contentSecurityPolicy())
		// Legacy header for older user agents.
		w.Header().Set("X-Content-Security-Policy", "sandbox allow-scripts")

		next.ServeHTTP(w, r)
	})
}

// contentSecurityPolicy builds the CSP value: the fixed sandbox directive
// followed by every observed origin and then every declared external
// resource, space-joined. Duplicates between the two lists are permitted.
func (a *App) contentSecurityPolicy() string {
	sources := append(a.origins.Snapshot(), a.resources.Get()...)
	if len(sources) == 0 {
		return cspSandbox
	}
	return cspSandbox + " " + strings.Join(sources, " ")
}
