// Package site manages the destination tree of the static-site generator.
package site

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Site is the destination side of the export: a flat posts directory and
// a flat assets directory under the site root. Both are wiped and
// recreated by Reset before a run, so everything in them is owned by the
// exporter.
type Site struct {
	postsRoot  string
	assetsRoot string
}

// New creates a Site under root. The root must exist; the posts and
// assets subdirectories are created by Reset.
func New(root, postsDir, assetsDir string) (*Site, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("site: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("site: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site: root is not a directory: %s", abs)
	}
	return &Site{
		postsRoot:  filepath.Join(abs, postsDir),
		assetsRoot: filepath.Join(abs, assetsDir),
	}, nil
}

// Reset wipes and recreates the posts and assets roots, establishing a
// known-empty baseline.
func (s *Site) Reset() error {
	for _, dir := range []string{s.postsRoot, s.assetsRoot} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("site: remove %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("site: create %s: %w", dir, err)
		}
	}
	return nil
}

// PostPath returns the absolute destination path for a post slug.
func (s *Site) PostPath(slug string) string {
	return filepath.Join(s.postsRoot, slug)
}

// AssetPath returns the absolute destination path for an asset slug.
func (s *Site) AssetPath(slug string) string {
	return filepath.Join(s.assetsRoot, slug)
}

// PostModTime returns the last-modified timestamp of an exported post.
// exists is false when the post has not been exported yet.
func (s *Site) PostModTime(slug string) (mtime time.Time, exists bool, err error) {
	info, err := os.Stat(s.PostPath(slug))
	if os.IsNotExist(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("site: stat post %s: %w", slug, err)
	}
	return info.ModTime(), true, nil
}

// WritePost atomically replaces the post for slug: tmp file, fsync,
// rename. The previous artifact, if any, is fully overwritten.
func (s *Site) WritePost(slug string, content []byte) error {
	tmp, err := os.CreateTemp(s.postsRoot, ".ehwaz-tmp-*")
	if err != nil {
		return fmt.Errorf("site: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("site: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("site: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("site: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.PostPath(slug)); err != nil {
		return fmt.Errorf("site: rename: %w", err)
	}
	success = true
	return nil
}

// CopyAsset copies the file at src into the assets root under slug.
// Repeated copies of the same asset are idempotent.
func (s *Site) CopyAsset(src, slug string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("site: open asset %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(s.AssetPath(slug))
	if err != nil {
		return fmt.Errorf("site: create asset %s: %w", slug, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("site: copy asset %s: %w", slug, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("site: close asset %s: %w", slug, err)
	}
	return nil
}
