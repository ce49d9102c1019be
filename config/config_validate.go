package config

import (
	"fmt"
	"os"
)

// Validate checks a Config before the server binds its port. A missing root
// directory is fatal: serving an empty tree silently would only confuse.
func Validate(cfg *Config) error {
	if err := validateRoot(cfg.Root); err != nil {
		return err
	}
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if cfg.Wait.Duration < 0 {
		return fmt.Errorf("wait cannot be negative, got %s", cfg.Wait.Duration)
	}
	return nil
}

func validateRoot(root string) error {
	if root == "" {
		return fmt.Errorf("root directory cannot be empty")
	}
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("root directory %q does not exist", root)
		}
		return fmt.Errorf("cannot stat root directory %q: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %q is not a directory", root)
	}
	return nil
}

func validateServer(server *Server) error {
	if server.Port < 1 || server.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535, got %d", server.Port)
	}
	return nil
}
