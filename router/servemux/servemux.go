package servemux

import (
	"net/http"

	"github.com/modworks/modserve/router"
)

// ServeMuxRouter implements router.Router using net/http ServeMux with
// Go 1.22 method patterns.
type ServeMuxRouter struct {
	*http.ServeMux
}

func (s *ServeMuxRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.ServeMux.ServeHTTP(w, r)
}

func (s *ServeMuxRouter) Handle(path string, handler http.Handler) {
	s.ServeMux.Handle("GET "+path, handler)
}

func (s *ServeMuxRouter) HandleFunc(path string, handler func(http.ResponseWriter, *http.Request)) {
	s.ServeMux.HandleFunc("GET "+path, handler)
}

func (s *ServeMuxRouter) Static(handler http.Handler) {
	// Bare "/" matches every path and method not claimed by another route.
	s.ServeMux.Handle("/", handler)
}

func New() router.Router {
	return &ServeMuxRouter{ServeMux: http.NewServeMux()}
}
