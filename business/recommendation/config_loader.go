package recommendation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"smartshop/pkg/logger"
)

// LoadWeights reads a YAML weight profile from path. Keys that are absent in
// the file keep their default value, so a profile only has to spell out what
// it overrides.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("read ranking config: %w", err)
	}

	// unmarshal over the defaults so missing keys fall through
	w := DefaultWeights()
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("parse ranking config: %w", err)
	}

	if w.Complements == nil {
		w.Complements = DefaultComplements()
	}

	return w, nil
}

// LoadWeightsOrDefault is the main-path helper: empty path or a broken file
// falls back to the built-in defaults instead of refusing to start.
func LoadWeightsOrDefault(path string) Weights {
	if path == "" {
		return DefaultWeights()
	}

	w, err := LoadWeights(path)
	if err != nil {
		logger.Warn("Failed to load ranking config, using defaults", "path", path, "error", err)
		return DefaultWeights()
	}

	logger.Info("Loaded ranking config", "path", path)
	return w
}
