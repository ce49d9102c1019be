// Package reload implements the live-reload half of the dev server: a
// recursive file watcher over the served root, a server-sent-events
// broadcaster, and the middleware that injects the client script into served
// HTML.
package reload

import (
	"log/slog"
	"net/http"
	"sync"
)

const (
	// EventsPath is the SSE endpoint the injected client subscribes to.
	EventsPath = "/.modserve/events"

	// ClientPath serves the reload client script.
	ClientPath = "/.modserve/client.js"
)

const clientScript = `(() => {
  const source = new EventSource("` + EventsPath + `");
  source.addEventListener("reload", () => location.reload());
})();
`

// Broadcaster fans a reload signal out to every connected browser tab.
type Broadcaster struct {
	logger  *slog.Logger
	mu      sync.Mutex
	clients map[chan struct{}]struct{}
}

func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		logger:  logger,
		clients: make(map[chan struct{}]struct{}),
	}
}

// NotifyAll signals every connected client to reload. Slow clients that have
// a signal pending already are skipped, not waited for.
func (b *Broadcaster) NotifyAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

func (b *Broadcaster) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	delete(b.clients, ch)
	b.mu.Unlock()
}

// ServeEvents is the SSE endpoint. The connection stays open until the
// client goes away; every reload signal becomes one "reload" event.
func (b *Broadcaster) ServeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ch := b.subscribe()
	defer b.unsubscribe(ch)
	b.logger.Debug("reload client connected", "clients", b.ClientCount())

	for {
		select {
		case <-r.Context().Done():
			b.logger.Debug("reload client disconnected")
			return
		case <-ch:
			if _, err := w.Write([]byte("event: reload\ndata: reload\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// ServeClient serves the reload client script.
func (b *Broadcaster) ServeClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(clientScript))
}
