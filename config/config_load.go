package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Load builds a Config from the TOML file at path, decoded over the defaults
// so values present in the file take precedence and everything else keeps its
// default. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	return cfg, nil
}
