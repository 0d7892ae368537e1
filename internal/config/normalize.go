// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	n := &cfg.Normalizer

	// Extensions: lowercase, leading dot, no duplicates
	seen := make(map[string]struct{}, len(n.Extensions))
	exts := make([]string, 0, len(n.Extensions))
	for _, e := range n.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		exts = append(exts, e)
	}
	n.Extensions = exts
}
