package modserve

import (
	"net/http"

	"github.com/modworks/modserve/bundle"
	"github.com/modworks/modserve/config"
	"github.com/modworks/modserve/core"
	"github.com/modworks/modserve/reload"
	"github.com/modworks/modserve/router"
)

// MetricsPath reports the hottest request paths while metrics are enabled.
const MetricsPath = "/.modserve/metrics"

func route(cfg *config.Config, ap *core.App, b *reload.Broadcaster, bundler *bundle.Bundler) {
	// Dev tool endpoints get the header policy but no HTML injection; the
	// event stream must not be buffered.
	tool := func(h http.Handler) http.Handler {
		return router.NewChain(h).WithMiddleware(ap.HeaderPolicy).Handler()
	}

	ap.Router().Handle(reload.EventsPath, tool(http.HandlerFunc(b.ServeEvents)))
	ap.Router().Handle(reload.ClientPath, tool(http.HandlerFunc(b.ServeClient)))
	ap.Router().Handle(MetricsPath, tool(http.HandlerFunc(ap.MetricsHandler)))
	if bundler != nil {
		ap.Router().Handle(cfg.Bundle.Path, tool(bundler))
	}

	// The mod bundle itself: every request runs through the header policy
	// first, HTML responses get the reload client injected, and the static
	// file server handles the rest.
	middlewares := make([]func(http.Handler) http.Handler, 0, 4)
	if cfg.Log.Requests {
		middlewares = append(middlewares, ap.RequestLog)
	}
	if cfg.Cors {
		middlewares = append(middlewares, core.Cors)
	}
	middlewares = append(middlewares, ap.HeaderPolicy, reload.Inject)

	static := router.NewChain(http.FileServer(http.Dir(cfg.Root))).
		WithMiddleware(middlewares...).
		WithObservers(ap.RecordRequest())

	ap.Router().Static(static.Handler())
}
