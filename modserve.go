// Package modserve is a development-time HTTP server for locally previewing
// a mod bundle. It serves a directory of static files with live reload and
// sets response headers approximating the production runtime's cross-origin
// and content-security-policy behavior, driven by the mod's manifest.
package modserve

import (
	"fmt"

	"github.com/modworks/modserve/bundle"
	"github.com/modworks/modserve/config"
	"github.com/modworks/modserve/core"
	"github.com/modworks/modserve/manifest"
	"github.com/modworks/modserve/reload"
	"github.com/modworks/modserve/server"
)

// New loads the configuration file at cfgPath (defaults when empty) and
// builds the App and Server with the provided options.
func New(cfgPath string, opts ...core.Option) (*core.App, *server.Server, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	return NewWithConfig(cfgPath, cfg, opts...)
}

// NewWithConfig builds the App and Server from an already loaded (and
// possibly flag-amended) configuration. cfgPath is kept for SIGHUP config
// reloads; flag amendments do not survive a reload.
func NewWithConfig(cfgPath string, cfg *config.Config, opts ...core.Option) (*core.App, *server.Server, error) {
	// Fail fast, before anything binds or watches.
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("configuration invalid: %w", err)
	}

	provider := config.NewProvider(cfg)
	resources := manifest.NewList()

	// Defaults first so caller options override them.
	allOpts := []core.Option{
		core.WithConfigProvider(provider),
		core.WithResources(resources),
		WithRouterServeMux(),
		WithPhusLogger(nil),
	}
	allOpts = append(allOpts, opts...)

	app, err := core.NewApp(allOpts...)
	if err != nil {
		return nil, nil, err
	}

	broadcaster := reload.NewBroadcaster(app.Logger())
	// A manifest change alters the CSP, so connected pages must reload.
	resources.Subscribe(func([]string) { broadcaster.NotifyAll() })

	notify := []func(){broadcaster.NotifyAll}
	var bundler *bundle.Bundler
	if cfg.Bundle.Entry != "" {
		bundler = bundle.New(cfg.Root, cfg.Bundle.Entry, cfg.Bundle.Minify,
			app.BundleCache(), app.Logger())
		notify = append(notify, bundler.Invalidate)
	}

	route(cfg, app, broadcaster, bundler)

	var reloadFunc func() error
	if cfgPath != "" {
		reloadFunc = func() error {
			newCfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := config.Validate(newCfg); err != nil {
				return err
			}
			provider.Update(newCfg)
			return nil
		}
	}

	srv := server.NewServer(provider, app.Router(), app.Logger(), reloadFunc)
	srv.AddDaemon(manifest.NewWatcher(cfg.Root, cfg.Manifest, resources, app.Logger()))
	srv.AddDaemon(reload.NewWatcher(cfg.Root, cfg.Wait.Duration, app.Logger(), notify...))

	return app, srv, nil
}
