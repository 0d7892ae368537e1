// internal/scanner/builder.go
package scanner

import (
	"fmt"
	"os"

	cfg "github.com/tamzrod/material-normalizer/internal/config"
)

// Build constructs a Scanner over the configured root directory.
// A missing or unreadable root is the one discovery error that stops a run.
func Build(c cfg.NormalizerConfig) (*Scanner, error) {
	info, err := os.Stat(c.Root)
	if err != nil {
		return nil, fmt.Errorf("scanner: root %s: %w", c.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanner: root %s is not a directory", c.Root)
	}

	return New(
		Config{
			Root:        c.Root,
			ExcludeDirs: c.ExcludeDirs,
			Extensions:  c.Extensions,
		},
		os.DirFS(c.Root),
	)
}
