// Package topk tracks request path frequencies in a sliding top-k sketch,
// backing the dev metrics endpoint.
package topk

import (
	"sync"

	"github.com/keilerkonzept/topk/sliding"
)

type SketchParams struct {
	K          int
	WindowSize int
	Width      int
	Depth      int
	// TickSize is the number of observations per sliding-window tick.
	TickSize uint64
}

func (p *SketchParams) fillDefaults() {
	if p.K <= 0 {
		p.K = 10
	}
	if p.WindowSize <= 0 {
		p.WindowSize = 10
	}
	if p.Width <= 0 {
		p.Width = 1024
	}
	if p.Depth <= 0 {
		p.Depth = 3
	}
	if p.TickSize == 0 {
		p.TickSize = 100
	}
}

// PathSketch provides thread-safe access to a sliding sketch instance and
// manages ticking.
type PathSketch struct {
	mu       sync.Mutex
	sketch   *sliding.Sketch
	tickSize uint64
	tickReq  uint64
}

func New(params SketchParams) *PathSketch {
	params.fillDefaults()
	instance := sliding.New(params.K, params.WindowSize,
		sliding.WithWidth(params.Width), sliding.WithDepth(params.Depth))
	return &PathSketch{
		sketch:   instance,
		tickSize: params.TickSize,
	}
}

// Observe records one request for path and advances the sliding window every
// tickSize observations.
func (s *PathSketch) Observe(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sketch.Incr(path)
	s.tickReq++

	if s.tickReq >= s.tickSize {
		s.sketch.Tick()
		s.tickReq = 0
	}
}

// Entry is one path with its observed count within the current window.
type Entry struct {
	Path  string `json:"path"`
	Count uint32 `json:"count"`
}

// Top returns the hottest paths, most frequent first.
func (s *PathSketch) Top() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.sketch.SortedSlice()
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		out = append(out, Entry{Path: item.Item, Count: item.Count})
	}
	return out
}
