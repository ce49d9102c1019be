package modserve

import (
	"log/slog"
	"os"

	cacheRistretto "github.com/modworks/modserve/cache/ristretto"
	"github.com/modworks/modserve/core"
	"github.com/modworks/modserve/router/httprouter"
	"github.com/modworks/modserve/router/servemux"
	phuslog "github.com/phuslu/log"
)

func WithRouterServeMux() core.Option {
	return core.WithRouter(servemux.New())
}

func WithRouterHttprouter() core.Option {
	return core.WithRouter(httprouter.New())
}

// WithBundleCacheRistretto backs the bundler with an in-memory ristretto
// cache, so unchanged entries are not rebuilt on every request.
func WithBundleCacheRistretto() core.Option {
	c, _ := cacheRistretto.New[string, []byte]()
	return core.WithBundleCache(c)
}

// DefaultLoggerOptions provides default settings for slog handlers.
// Level: Debug, removes the time attribute from output.
var DefaultLoggerOptions = &slog.HandlerOptions{
	Level: slog.LevelDebug,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	},
}

// WithPhusLogger configures slog with phuslu/log's JSON handler.
// Uses DefaultLoggerOptions if opts is nil.
func WithPhusLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	return core.WithLogger(logger)
}

// WithTextLogger configures slog with the standard library's text handler.
func WithTextLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	return core.WithLogger(logger)
}
