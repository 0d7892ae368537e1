// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	n := cfg.Normalizer

	// ------------------------------------------------------------
	// PATHS
	// ------------------------------------------------------------

	if n.Synonyms == "" {
		return errors.New("normalizer: synonyms path is required")
	}
	if n.Root == "" {
		return errors.New("normalizer: root is required")
	}

	// ------------------------------------------------------------
	// DISCOVERY FILTERS
	// ------------------------------------------------------------

	if len(n.Extensions) == 0 {
		return errors.New("normalizer: at least one extension is required")
	}
	for _, e := range n.Extensions {
		if strings.Trim(e, ". ") == "" {
			return fmt.Errorf("normalizer: invalid extension %q", e)
		}
	}
	for _, d := range n.ExcludeDirs {
		if d == "" || strings.ContainsAny(d, `/\`) {
			return fmt.Errorf("normalizer: exclude_dirs entry %q must be a plain directory name", d)
		}
	}

	// ------------------------------------------------------------
	// FIELD SELECTION
	// ------------------------------------------------------------

	if n.Field == "" || n.TypeField == "" || n.Marker == "" {
		return errors.New("normalizer: field, type_field and marker are required")
	}
	if n.Field == n.TypeField {
		return fmt.Errorf("normalizer: field and type_field must differ (both %q)", n.Field)
	}

	// ------------------------------------------------------------
	// OUTPUT
	// ------------------------------------------------------------

	if n.Indent < 1 || n.Indent > 8 {
		return fmt.Errorf("normalizer: indent must be 1..8, got %d", n.Indent)
	}

	return nil
}
