package core

import (
	"log/slog"

	"github.com/modworks/modserve/cache"
	"github.com/modworks/modserve/config"
	"github.com/modworks/modserve/manifest"
	"github.com/modworks/modserve/router"
	"github.com/modworks/modserve/topk"
)

// App is the server-wide context. It owns the mutable state shared across
// requests (observed cross-origin request origins, declared external
// resources) together with the config provider, router and logger.
//
// Handlers and middleware have App as receiver and reach everything through
// it, which keeps the state injectable in tests instead of ambient globals.
type App struct {
	router         router.Router
	configProvider *config.Provider
	logger         *slog.Logger
	origins        *OriginSet
	resources      *manifest.List
	bundleCache    cache.Cache[string, []byte]
	hot            *topk.PathSketch
}

func NewApp(opts ...Option) (*App, error) {
	a := &App{
		origins: NewOriginSet(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.configProvider == nil {
		return nil, errMissing("config provider", "WithConfigProvider")
	}
	if a.router == nil {
		return nil, errMissing("router", "WithRouter")
	}
	if a.logger == nil {
		return nil, errMissing("logger", "WithLogger")
	}
	if a.resources == nil {
		a.resources = manifest.NewList()
	}

	cfg := a.configProvider.Get()
	a.hot = topk.New(topk.SketchParams{K: cfg.Metrics.TopK})

	return a, nil
}

// Router returns the application's router instance.
func (a *App) Router() router.Router {
	return a.router
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Config returns the current configuration snapshot.
func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

// Origins is the set of cross-origin request origins observed so far.
func (a *App) Origins() *OriginSet {
	return a.origins
}

// Resources is the list of external resources declared by the manifest.
func (a *App) Resources() *manifest.List {
	return a.resources
}

func (a *App) BundleCache() cache.Cache[string, []byte] {
	return a.bundleCache
}
