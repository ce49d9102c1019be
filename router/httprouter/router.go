package httprouter

import (
	"net/http"

	jshttprouter "github.com/julienschmidt/httprouter"
	"github.com/modworks/modserve/router"
)

// Implementation of the router interface backed by julienschmidt/httprouter.
type Router struct {
	rt *jshttprouter.Router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

func (r *Router) Handle(path string, handler http.Handler) {
	r.rt.Handler("GET", path, handler)
}

func (r *Router) HandleFunc(path string, handler func(http.ResponseWriter, *http.Request)) {
	r.rt.Handle("GET", path, func(w http.ResponseWriter, req *http.Request, _ jshttprouter.Params) {
		handler(w, req)
	})
}

func (r *Router) Static(handler http.Handler) {
	// The file server is the NotFound fallback rather than a "/*filepath"
	// catch-all, which would conflict with the registered tool routes.
	r.rt.NotFound = handler
}

func New() router.Router {
	rt := jshttprouter.New()
	// Non-GET requests must fall through to the static handler, not 405.
	rt.HandleMethodNotAllowed = false
	return &Router{rt: rt}
}
