package site

import (
	"os"
	"path/filepath"
	"testing"
)

func tempSite(t *testing.T) *Site {
	t.Helper()
	s, err := New(t.TempDir(), "content/posts", "content/assets")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return s
}

func TestReset_WipesExistingPosts(t *testing.T) {
	s := tempSite(t)
	if err := s.WritePost("stale.md", []byte("old")); err != nil {
		t.Fatalf("WritePost: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, exists, err := s.PostModTime("stale.md"); err != nil || exists {
		t.Errorf("post survived reset (exists=%v, err=%v)", exists, err)
	}
}

func TestWritePost_Overwrites(t *testing.T) {
	s := tempSite(t)
	if err := s.WritePost("note.md", []byte("v1")); err != nil {
		t.Fatalf("WritePost: %v", err)
	}
	if err := s.WritePost("note.md", []byte("v2")); err != nil {
		t.Fatalf("WritePost overwrite: %v", err)
	}
	data, err := os.ReadFile(s.PostPath("note.md"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("content = %q, want v2", data)
	}
}

func TestWritePost_LeavesNoTempFiles(t *testing.T) {
	s := tempSite(t)
	if err := s.WritePost("note.md", []byte("x")); err != nil {
		t.Fatalf("WritePost: %v", err)
	}
	entries, err := os.ReadDir(s.postsRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("posts dir has %d entries, want 1", len(entries))
	}
}

func TestPostModTime_Missing(t *testing.T) {
	s := tempSite(t)
	_, exists, err := s.PostModTime("never.md")
	if err != nil {
		t.Fatalf("PostModTime: %v", err)
	}
	if exists {
		t.Error("missing post reported as existing")
	}
}

func TestCopyAsset(t *testing.T) {
	s := tempSite(t)
	src := filepath.Join(t.TempDir(), "Pic One.png")
	if err := os.WriteFile(src, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.CopyAsset(src, "pic-one.png"); err != nil {
		t.Fatalf("CopyAsset: %v", err)
	}
	data, err := os.ReadFile(s.AssetPath("pic-one.png"))
	if err != nil {
		t.Fatalf("read asset: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("asset content = %q", data)
	}

	// Idempotent when copied again.
	if err := s.CopyAsset(src, "pic-one.png"); err != nil {
		t.Errorf("second CopyAsset: %v", err)
	}
}

func TestCopyAsset_MissingSource(t *testing.T) {
	s := tempSite(t)
	if err := s.CopyAsset("/no/such/file.png", "file.png"); err == nil {
		t.Error("expected error for missing asset source")
	}
}
