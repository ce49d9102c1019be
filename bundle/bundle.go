// Package bundle serves a mod entry point bundled on demand with esbuild,
// so a multi-file mod source can be previewed without a separate build step.
package bundle

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/modworks/modserve/cache"
)

// Output is cached under a fixed key; there is one entry point per server.
const cacheKey = "bundle"

type Bundler struct {
	root   string
	entry  string
	minify bool
	cache  cache.Cache[string, []byte]
	logger *slog.Logger
}

// New creates a bundler for the entry point source file entry, relative to
// root. The cache may be nil, which rebuilds on every request.
func New(root, entry string, minify bool, c cache.Cache[string, []byte], logger *slog.Logger) *Bundler {
	return &Bundler{
		root:   root,
		entry:  entry,
		minify: minify,
		cache:  c,
		logger: logger,
	}
}

// ServeHTTP serves the bundled output, rebuilding when the cache is cold.
// Build failures return 500 with the esbuild messages in the body.
func (b *Bundler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	out, err := b.build()
	if err != nil {
		b.logger.Error("bundle build failed", "entry", b.entry, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(out)
}

// Invalidate drops the cached output. Hooked to the file watcher so edits
// take effect on the next request.
func (b *Bundler) Invalidate() {
	if b.cache != nil {
		b.cache.Del(cacheKey)
	}
}

func (b *Bundler) build() ([]byte, error) {
	if b.cache != nil {
		if out, ok := b.cache.Get(cacheKey); ok {
			return out, nil
		}
	}

	result := api.Build(api.BuildOptions{
		EntryPoints:       []string{filepath.Join(b.root, b.entry)},
		Bundle:            true,
		MinifyWhitespace:  b.minify,
		MinifyIdentifiers: b.minify,
		MinifySyntax:      b.minify,
		Format:            api.FormatESModule,
		Target:            api.ES2017,
		Platform:          api.PlatformBrowser,
		Write:             false,
	})

	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, msg := range result.Errors {
			msgs = append(msgs, msg.Text)
		}
		return nil, fmt.Errorf("esbuild failed with %d errors: %s",
			len(result.Errors), strings.Join(msgs, "; "))
	}
	if len(result.OutputFiles) == 0 {
		return nil, fmt.Errorf("esbuild produced no output for %s", b.entry)
	}

	out := result.OutputFiles[0].Contents
	if b.cache != nil {
		b.cache.Set(cacheKey, out, int64(len(out)))
	}
	b.logger.Debug("bundle rebuilt", "entry", b.entry, "bytes", len(out))
	return out, nil
}
