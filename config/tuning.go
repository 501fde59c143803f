package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"birdroyale/game"
)

// LoadTuning decodes a YAML tuning file over the defaults. An empty path
// returns the defaults unchanged.
func LoadTuning(path string) (game.Tuning, error) {
	t := game.DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return game.Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return game.Tuning{}, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return game.Tuning{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}
