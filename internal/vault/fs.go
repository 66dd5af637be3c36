// Package vault provides read access to the source Markdown vault.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FS is the source side of the export: a vault directory tree holding
// Markdown notes and an assets subdirectory with referenced images.
type FS struct {
	root      string // absolute path to the vault directory
	assetsDir string // assets subdirectory, relative to root
}

// NewFS creates an FS rooted at the given directory, which must exist.
func NewFS(root, assetsDir string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("vault: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("vault: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault: root is not a directory: %s", abs)
	}
	if assetsDir == "" {
		assetsDir = "assets"
	}
	return &FS{root: abs, assetsDir: assetsDir}, nil
}

// Root returns the absolute vault root.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a relative path against the vault root and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("vault: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("vault: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("vault: path escapes vault root: %s", rel)
	}
	return abs, nil
}

// errStopWalk aborts a walk after the consumer stops taking values.
var errStopWalk = errors.New("vault: stop walk")

// Notes returns a depth-first sequence of relative paths of every .md
// file under the root. Dot-prefixed files and directories are skipped.
// A traversal error is yielded once with an empty path, then the
// sequence ends. The sequence is lazy and can be restarted by calling
// Notes again.
func (f *FS) Notes() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(f.root, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				yield("", walkErr)
				return errStopWalk
			}
			if p != f.root && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
				return nil
			}
			rel, relErr := filepath.Rel(f.root, p)
			if relErr != nil {
				yield("", relErr)
				return errStopWalk
			}
			if !yield(rel, nil) {
				return errStopWalk
			}
			return nil
		})
	}
}

// Read returns the raw bytes of a vault file.
func (f *FS) Read(rel string) ([]byte, error) {
	abs, err := f.safePath(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("vault: read %s: %w", rel, err)
	}
	return data, nil
}

// ModTime returns the last-modified timestamp of a vault file.
func (f *FS) ModTime(rel string) (time.Time, error) {
	abs, err := f.safePath(rel)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return time.Time{}, fmt.Errorf("vault: stat %s: %w", rel, err)
	}
	return info.ModTime(), nil
}

// AssetPath resolves a referenced asset name inside the vault's assets
// directory.
func (f *FS) AssetPath(name string) (string, error) {
	return f.safePath(filepath.Join(f.assetsDir, name))
}

// Rel converts an absolute path (for example from a watcher event) to a
// vault-relative path. It reports false when the path lies outside the
// root.
func (f *FS) Rel(abs string) (string, bool) {
	rel, err := filepath.Rel(f.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", false
	}
	return rel, true
}
