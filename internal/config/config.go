// Package config loads and validates the session configuration. It is a
// collaborator concern (spec.md §1): internal/core never reads a file or an
// environment variable.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AutoCookies/sonarlock/internal/core"
)

// Default returns the built-in defaults (spec.md §3).
func Default() core.Config {
	return core.DefaultConfig()
}

// Load reads a YAML config file and overlays it onto the defaults. An empty
// path is not an error — callers that only want flag-driven defaults pass "".
func Load(path string) (core.Config, error) {
	cfg := Default()
	if path == "" {
		return finish(cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return core.Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return core.Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return finish(cfg)
}

// finish resolves the yaml-only ModeName field into the ActionMode enum and
// runs the invalid-argument validation pass of spec.md §7.
func finish(cfg core.Config) (core.Config, error) {
	mode, err := core.ParseActionMode(cfg.Actions.ModeName)
	if err != nil {
		return core.Config{}, err
	}
	cfg.Actions.Mode = mode

	if err := cfg.Validate(); err != nil {
		return core.Config{}, err
	}
	return cfg, nil
}
