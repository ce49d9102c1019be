// Package manifest keeps the list of externally allowed resource origins
// declared by a mod manifest in sync with the file on disk.
package manifest

import (
	"encoding/json"
	"sync"
)

// document is the subset of the mod manifest this server consumes. All other
// fields are ignored.
type document struct {
	ExternalResources json.RawMessage `json:"externalResources"`
}

// ParseExternalResources extracts the externalResources field from raw
// manifest JSON. A malformed document is an error; a document without the
// field, or with a field that is not an array of strings, yields an empty
// list.
func ParseExternalResources(data []byte) ([]string, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.ExternalResources) == 0 {
		return []string{}, nil
	}
	var resources []string
	if err := json.Unmarshal(doc.ExternalResources, &resources); err != nil {
		return []string{}, nil
	}
	return resources, nil
}

// List holds the declared external resources and notifies subscribers on
// every read of the manifest. The list is replaced wholesale, never merged.
type List struct {
	mu        sync.RWMutex
	resources []string
	subs      []func([]string)
}

func NewList() *List {
	return &List{resources: []string{}}
}

// Get returns a snapshot of the current resources.
func (l *List) Get() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.resources))
	copy(out, l.resources)
	return out
}

// Replace swaps in a new resource list and notifies subscribers.
func (l *List) Replace(resources []string) {
	if resources == nil {
		resources = []string{}
	}
	l.mu.Lock()
	l.resources = resources
	subs := l.subs
	l.mu.Unlock()

	for _, fn := range subs {
		fn(resources)
	}
}

// Touch notifies subscribers with the current, unchanged list. Used when a
// manifest read fails and the last-good value stays in effect.
func (l *List) Touch() {
	l.mu.RLock()
	resources := l.resources
	subs := l.subs
	l.mu.RUnlock()

	for _, fn := range subs {
		fn(resources)
	}
}

// Subscribe registers fn to be invoked after every manifest read with the
// then-current resource list. Not safe to call after the watcher started.
func (l *List) Subscribe(fn func([]string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, fn)
}
