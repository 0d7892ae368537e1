// internal/scanner/scanner.go
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Config is the minimal runtime config the scanner needs.
type Config struct {
	Root        string
	ExcludeDirs []string
	Extensions  []string
}

// Scanner finds candidate documents below a root directory.
type Scanner struct {
	cfg     Config
	fsys    fs.FS
	exclude map[string]struct{}
}

// New creates a scanner with immutable config.
// fsys is rooted at cfg.Root; returned paths are joined back onto it.
func New(cfg Config, fsys fs.FS) (*Scanner, error) {
	if cfg.Root == "" {
		return nil, errors.New("scanner: root required")
	}
	if len(cfg.Extensions) == 0 {
		return nil, errors.New("scanner: at least one extension required")
	}
	if fsys == nil {
		return nil, errors.New("scanner: filesystem required")
	}

	exclude := make(map[string]struct{}, len(cfg.ExcludeDirs))
	for _, d := range cfg.ExcludeDirs {
		exclude[d] = struct{}{}
	}

	return &Scanner{cfg: cfg, fsys: fsys, exclude: exclude}, nil
}

// ScanOnce walks the tree in lexical order and returns every matching file.
// Excluded directories are pruned with everything below them. Entries
// below the root that cannot be read are skipped and returned in skipped;
// only an unreadable root fails the scan.
func (s *Scanner) ScanOnce() (paths []string, skipped []error, err error) {
	err = fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			skipped = append(skipped, fmt.Errorf("scanner: skip %s: %w", s.join(p), err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if p != "." && s.excluded(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if !s.matches(d.Name()) {
			return nil
		}

		regular := d.Type().IsRegular()
		if d.Type()&fs.ModeSymlink != 0 {
			// symlinked files count; symlinked directories are not descended
			info, serr := fs.Stat(s.fsys, p)
			if serr != nil {
				skipped = append(skipped, fmt.Errorf("scanner: skip %s: %w", s.join(p), serr))
				return nil
			}
			regular = info.Mode().IsRegular()
		}

		if regular {
			paths = append(paths, s.join(p))
		}
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("scanner: walk %s: %w", s.cfg.Root, err)
	}

	return paths, skipped, nil
}

func (s *Scanner) join(p string) string {
	return filepath.Join(s.cfg.Root, filepath.FromSlash(p))
}

func (s *Scanner) excluded(name string) bool {
	_, ok := s.exclude[name]
	return ok
}

func (s *Scanner) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range s.cfg.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
