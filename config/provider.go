package config

import "sync"

// Provider holds the currently active configuration and hands out a
// consistent snapshot to concurrent readers. Handlers read through the
// provider instead of keeping their own *Config.
type Provider struct {
	mu  sync.RWMutex
	cfg *Config
}

func NewProvider(cfg *Config) *Provider {
	if cfg == nil {
		panic("config provider requires a non-nil initial config")
	}
	return &Provider{cfg: cfg}
}

// Get returns the current configuration snapshot.
func (p *Provider) Get() *Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// Update atomically replaces the current configuration.
func (p *Provider) Update(cfg *Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
}
