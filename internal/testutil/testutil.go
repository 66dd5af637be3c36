// Package testutil provides shared test helpers for setting up vaults,
// sites, and journals.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/ehwaz/internal/journal"
	"github.com/starford/ehwaz/internal/site"
	"github.com/starford/ehwaz/internal/vault"
)

// TestJournal creates a temporary SQLite journal that is automatically
// cleaned up.
func TestJournal(t *testing.T) *journal.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "ehwaz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := journal.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary vault directory with a vault.FS.
func TestVault(t *testing.T) (string, *vault.FS) {
	t.Helper()
	dir := t.TempDir()
	v, err := vault.NewFS(dir, "assets")
	if err != nil {
		t.Fatal(err)
	}
	return dir, v
}

// TestSite creates a temporary site with posts and assets roots already
// reset.
func TestSite(t *testing.T) *site.Site {
	t.Helper()
	s, err := site.New(t.TempDir(), "content/posts", "content/assets")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	return s
}

// WriteFile writes content under dir, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
