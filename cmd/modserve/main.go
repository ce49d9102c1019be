package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/modworks/modserve"
	"github.com/modworks/modserve/config"
	"github.com/modworks/modserve/core"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to TOML config file")
		port       = flag.Int("port", 0, "listen port (overrides config)")
		root       = flag.String("root", "", "directory to serve (overrides config)")
		open       = flag.String("open", "", "path to open in the browser after start")
		wait       = flag.Duration("wait", 0, "debounce delay for reload events (overrides config)")
		verbose    = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "modserve: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the config file, which wins over defaults.
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *root != "" {
		cfg.Root = *root
	}
	if *open != "" {
		cfg.Open = *open
	}
	if *wait > 0 {
		cfg.Wait.Duration = *wait
	}
	if *verbose {
		cfg.Log.Level.Level = slog.LevelDebug
		cfg.Log.Requests = true
	}

	opts := []core.Option{
		modserve.WithRouterHttprouter(),
		modserve.WithPhusLogger(&slog.HandlerOptions{Level: cfg.Log.Level.Level}),
	}
	if cfg.Bundle.Entry != "" {
		opts = append(opts, modserve.WithBundleCacheRistretto())
	}

	_, srv, err := modserve.NewWithConfig(*configPath, cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "modserve: %v\n", err)
		os.Exit(1)
	}

	srv.Run()
}
