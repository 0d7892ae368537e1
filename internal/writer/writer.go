// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// fileSystem is the exact contract the writer uses.
type fileSystem interface {
	EvalSymlinks(path string) (string, error)
	Stat(name string) (os.FileInfo, error)
	OpenFile(name string, flag int, perm os.FileMode) (file, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

type file interface {
	Write(p []byte) (int, error)
	Chmod(mode os.FileMode) error
	Sync() error
	Close() error
}

type osFS struct{}

func (osFS) EvalSymlinks(path string) (string, error) { return filepath.EvalSymlinks(path) }
func (osFS) Stat(name string) (os.FileInfo, error)     { return os.Stat(name) }
func (osFS) Rename(oldpath, newpath string) error      { return os.Rename(oldpath, newpath) }
func (osFS) Remove(name string) error                  { return os.Remove(name) }

func (osFS) OpenFile(name string, flag int, perm os.FileMode) (file, error) {
	return os.OpenFile(name, flag, perm)
}

type fileWriter struct {
	fs fileSystem
}

type dryRunWriter struct{}

// New builds the writer for plan.
func New(plan Plan) Writer {
	if plan.DryRun {
		return dryRunWriter{}
	}
	return &fileWriter{fs: osFS{}}
}

func (dryRunWriter) Write(path string, data []byte) error {
	return nil
}

// Write replaces path atomically.
// Data goes to a uniquely named temp file next to path, which is synced
// and renamed over it. The original file mode is kept regardless of umask.
// When path is a symlink the file it points to is replaced and the link
// stays in place.
func (w *fileWriter) Write(path string, data []byte) error {
	resolved, err := w.fs.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("writer: resolve %s: %w", path, err)
	}
	path = resolved

	info, err := w.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("writer: stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("writer: %s is not a regular file", path)
	}

	tmp := filepath.Join(
		filepath.Dir(path),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()),
	)

	f, err := w.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("writer: create temp for %s: %w", path, err)
	}

	if err := writeAll(f, data, info.Mode().Perm()); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("writer: write %s: %w", path, err)
	}

	if err := w.fs.Rename(tmp, path); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("writer: replace %s: %w", path, err)
	}

	return nil
}

// writeAll always closes f. OpenFile's perm is filtered by the umask,
// so the mode is set again explicitly.
func writeAll(f file, data []byte, perm os.FileMode) error {
	_, werr := f.Write(data)
	merr := f.Chmod(perm)
	serr := f.Sync()
	cerr := f.Close()
	return errors.Join(werr, merr, serr, cerr)
}
