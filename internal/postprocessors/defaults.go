package postprocessors

import (
	"github.com/custodia-labs/casegen/internal/core/ports/driven"
	"github.com/custodia-labs/casegen/internal/postprocessors/dedupe"
	"github.com/custodia-labs/casegen/internal/postprocessors/quality"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("quality", buildQuality)
	r.Register("dedupe", buildDedupe)
}

// buildQuality creates a quality filter from generic config.
// Supported config keys:
//   - min_chars (int): Character floor (default: 40)
func buildQuality(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []quality.Option
	if _, ok := cfg["min_chars"]; ok {
		opts = append(opts, quality.WithMinChars(getIntFromConfig(cfg, "min_chars")))
	}
	return quality.New(opts...), nil
}

func buildDedupe(_ map[string]any) (driven.PostProcessor, error) {
	return dedupe.New(), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
