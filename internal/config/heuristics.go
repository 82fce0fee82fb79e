package config

import (
	"fmt"
	"os"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/pelletier/go-toml/v2"
)

// LoadHeuristics returns the default outline heuristics with any keys
// present in the TOML file at path applied on top. An empty path yields
// the defaults unchanged.
func LoadHeuristics(path string) (outline.Heuristics, error) {
	h := outline.DefaultHeuristics()
	if path == "" {
		return h, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("read heuristics: %w", err)
	}
	if err := toml.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("parse heuristics %s: %w", path, err)
	}
	if err := h.Validate(); err != nil {
		return h, fmt.Errorf("heuristics %s: %w", path, err)
	}
	return h, nil
}
