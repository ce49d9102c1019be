package config

import (
	"fmt"
	"log/slog"
	"time"
)

// DefaultManifestName is the manifest file looked up in the served root.
const DefaultManifestName = "mod-manifest.json"

type Config struct {
	// Root is the filesystem directory served to the browser. It must exist
	// before the server binds its port.
	Root string `toml:"root"`

	// Open is the path opened in the browser after the server starts.
	// Empty disables opening.
	Open string `toml:"open"`

	// Wait is the debounce delay applied to file change events before a
	// reload is broadcast.
	Wait Duration `toml:"wait"`

	// Cors enables the generic permissive CORS middleware. Off by default:
	// the header policy middleware implements its own CORS handling.
	Cors bool `toml:"cors"`

	// Manifest is the file name of the mod manifest inside Root.
	Manifest string `toml:"manifest"`

	Server  Server  `toml:"server"`
	Bundle  Bundle  `toml:"bundle"`
	Metrics Metrics `toml:"metrics"`
	Log     Log     `toml:"log"`
}

type Server struct {
	Port                    int      `toml:"port"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`
}

// Addr returns the listen address derived from Port.
func (s *Server) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Bundle configures on-demand bundling of a mod entry point.
type Bundle struct {
	// Entry is the entry point source file, relative to Root. Empty disables
	// bundling.
	Entry string `toml:"entry"`

	// Path is the URL path the bundled output is served from.
	Path string `toml:"path"`

	Minify bool `toml:"minify"`
}

type Metrics struct {
	Enabled bool `toml:"enabled"`

	// AllowedIPs restricts the metrics endpoint to exact client IP matches.
	AllowedIPs []string `toml:"allowed_ips"`

	// TopK is the number of hottest request paths reported.
	TopK int `toml:"top_k"`
}

type Log struct {
	Level LogLevel `toml:"level"`

	// Requests enables per-request logging.
	Requests bool `toml:"requests"`
}

// Duration wraps time.Duration for TOML text (un)marshalling.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// LogLevel wraps slog.Level for TOML text (un)marshalling.
type LogLevel struct {
	slog.Level
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	return l.Level.UnmarshalText(text)
}

func (l LogLevel) MarshalText() ([]byte, error) {
	return l.Level.MarshalText()
}
