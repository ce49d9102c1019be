package core

import (
	"fmt"
	"log/slog"

	"github.com/modworks/modserve/cache"
	"github.com/modworks/modserve/config"
	"github.com/modworks/modserve/manifest"
	"github.com/modworks/modserve/router"
)

type Option func(*App)

// WithRouter sets the router implementation.
func WithRouter(r router.Router) Option {
	return func(a *App) {
		a.router = r
	}
}

// WithConfigProvider sets the application's configuration provider.
func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) {
		a.configProvider = p
	}
}

// WithLogger sets the logger implementation.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithResources sets the manifest-backed external resource list.
func WithResources(l *manifest.List) Option {
	return func(a *App) {
		a.resources = l
	}
}

// WithBundleCache sets the cache used for bundled entry output.
func WithBundleCache(c cache.Cache[string, []byte]) Option {
	return func(a *App) {
		a.bundleCache = c
	}
}

func errMissing(what, option string) error {
	return fmt.Errorf("%s is required but was not provided (use %s)", what, option)
}
