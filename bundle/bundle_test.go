package bundle

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mapCache is a deterministic cache.Cache for tests; ristretto admission is
// probabilistic.
type mapCache struct {
	m    map[string][]byte
	sets int
}

func newMapCache() *mapCache {
	return &mapCache{m: make(map[string][]byte)}
}

func (c *mapCache) Get(key string) ([]byte, bool) {
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache) Set(key string, value []byte, _ int64) bool {
	c.m[key] = value
	c.sets++
	return true
}

func (c *mapCache) SetWithTTL(key string, value []byte, cost int64, _ time.Duration) bool {
	return c.Set(key, value, cost)
}

func (c *mapCache) Del(key string) {
	delete(c.m, key)
}

func writeModSource(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"mod.js":  `import { msg } from "./lib.js"; console.log(msg);`,
		"lib.js":  `export const msg = "hello-bundle";`,
		"junk.md": `not a module`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBundler_ServesBundledEntry(t *testing.T) {
	t.Parallel()

	root := writeModSource(t)
	b := New(root, "mod.js", false, nil, testLogger())

	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, httptest.NewRequest("GET", "/.modserve/bundle.js", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d, body %q", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "hello-bundle") {
		t.Errorf("bundled output missing imported constant: %q", rec.Body.String())
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control got %q, want no-store", got)
	}
}

func TestBundler_BuildErrorIs500(t *testing.T) {
	t.Parallel()

	b := New(t.TempDir(), "missing.js", false, nil, testLogger())

	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, httptest.NewRequest("GET", "/.modserve/bundle.js", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status got %d, want 500", rec.Code)
	}
}

func TestBundler_CacheAndInvalidate(t *testing.T) {
	t.Parallel()

	root := writeModSource(t)
	c := newMapCache()
	b := New(root, "mod.js", false, c, testLogger())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		b.ServeHTTP(rec, httptest.NewRequest("GET", "/.modserve/bundle.js", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
	if c.sets != 1 {
		t.Errorf("expected one build for three requests, got %d", c.sets)
	}

	b.Invalidate()

	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, httptest.NewRequest("GET", "/.modserve/bundle.js", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("post-invalidate status %d", rec.Code)
	}
	if c.sets != 2 {
		t.Errorf("invalidate did not trigger a rebuild, sets=%d", c.sets)
	}
}
