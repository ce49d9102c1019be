package modserve

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modworks/modserve/config"
	"github.com/modworks/modserve/core"
	"github.com/modworks/modserve/reload"
)

func newTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	html := `<!DOCTYPE html><html><body><h1>mod preview</h1></body></html>`
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func newTestApp(t *testing.T, mutate func(*config.Config)) *core.App {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Root = newTestRoot(t)
	if mutate != nil {
		mutate(cfg)
	}
	app, _, err := NewWithConfig("", cfg, WithTextLogger(nil))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return app
}

func TestNewWithConfig_MissingRootFails(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Root = filepath.Join(t.TempDir(), "does-not-exist")

	_, _, err := NewWithConfig("", cfg, WithTextLogger(nil))
	if err == nil {
		t.Fatal("expected error for missing root directory")
	}
	if !strings.Contains(err.Error(), cfg.Root) {
		t.Errorf("error should name the missing root, got: %v", err)
	}
}

func TestServe_HTMLGetsPolicyHeadersAndClientScript(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
	csp := w.Header().Get("Content-Security-Policy")
	if !strings.HasPrefix(csp, "sandbox allow-scripts; default-src 'self'") {
		t.Errorf("unexpected CSP: %q", csp)
	}
	if !strings.Contains(w.Body.String(), `<script src="`+reload.ClientPath+`"></script>`) {
		t.Error("served HTML is missing the reload client script tag")
	}
}

func TestServe_ManifestResourcesReachCSP(t *testing.T) {
	app := newTestApp(t, nil)
	app.Resources().Replace([]string{"https://cdn.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, req)

	csp := w.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "https://cdn.example.com") {
		t.Errorf("CSP should include declared external resource, got %q", csp)
	}
}

func TestServe_ToolEndpoints(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.Metrics.Enabled = true
		cfg.Metrics.AllowedIPs = []string{"192.0.2.1"}
	})

	t.Run("client script", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, reload.ClientPath, nil)
		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "EventSource") {
			t.Error("client script should use EventSource")
		}
		// Tool responses skip HTML injection but keep the header policy.
		if got := w.Header().Get("Cache-Control"); got != "no-store" {
			t.Errorf("Cache-Control = %q, want no-store", got)
		}
	})

	t.Run("metrics allows listed IP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, MetricsPath, nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("metrics rejects other IP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, MetricsPath, nil)
		req.RemoteAddr = "203.0.113.9:1234"
		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}

func TestServe_CrossOriginRequestLearnsOrigin(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	req.Header.Set("Origin", "https://host.example")
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if !app.Origins().Has("https://host.example") {
		t.Error("origin should have been recorded")
	}

	// The next response's CSP carries the learned origin.
	w = httptest.NewRecorder()
	app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	if csp := w.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "https://host.example") {
		t.Errorf("CSP should include learned origin, got %q", csp)
	}
}

func TestServe_UserOptionOverridesDefault(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Root = newTestRoot(t)

	app, srv, err := NewWithConfig("", cfg, WithRouterHttprouter(), WithTextLogger(nil))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	if srv == nil {
		t.Fatal("server is nil")
	}

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("httprouter-backed app: status = %d", w.Code)
	}
}
