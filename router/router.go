package router

import "net/http"

// Router is the minimal routing surface the server needs: GET endpoints for
// the dev tooling plus a fallback handler that serves the mod bundle files.
type Router interface {
	http.Handler

	// Handle registers a GET handler for an exact path.
	Handle(path string, handler http.Handler)

	// HandleFunc registers a GET handler func for an exact path.
	HandleFunc(path string, handler func(http.ResponseWriter, *http.Request))

	// Static registers the fallback handler invoked for every request no
	// other route matched, regardless of method.
	Static(handler http.Handler)
}
