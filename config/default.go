package config

import (
	"log/slog"
	"time"
)

// NewDefaultConfig creates a new Config with sensible defaults for a local
// preview server. Callers and config files override on top of these.
func NewDefaultConfig() *Config {
	return &Config{
		Root:     "./test/test-files/",
		Open:     "",
		Wait:     Duration{Duration: 250 * time.Millisecond},
		Cors:     false,
		Manifest: DefaultManifestName,
		Server: Server{
			Port:                    8090,
			ReadTimeout:             Duration{Duration: 5 * time.Second},
			ReadHeaderTimeout:       Duration{Duration: 2 * time.Second},
			WriteTimeout:            Duration{Duration: 30 * time.Second},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			ShutdownGracefulTimeout: Duration{Duration: 5 * time.Second},
		},
		Bundle: Bundle{
			Entry:  "",
			Path:   "/.modserve/bundle.js",
			Minify: false,
		},
		Metrics: Metrics{
			Enabled:    false,
			AllowedIPs: []string{"127.0.0.1", "::1"},
			TopK:       10,
		},
		Log: Log{
			Level:    LogLevel{Level: slog.LevelInfo},
			Requests: false,
		},
	}
}
