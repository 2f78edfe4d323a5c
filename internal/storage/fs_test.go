package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFSStorePutCreatesDirectories(t *testing.T) {
	base := filepath.Join(t.TempDir(), "out")
	s, err := NewFSStore(base)
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	key, err := s.Put("nested/dir/data.json", strings.NewReader(`{"ok":true}`))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if key != "nested/dir/data.json" {
		t.Fatalf("canonical key = %q", key)
	}

	b, err := os.ReadFile(filepath.Join(base, "nested", "dir", "data.json"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != `{"ok":true}` {
		t.Fatalf("content = %q", b)
	}

	rc, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != `{"ok":true}` {
		t.Fatalf("Get content = %q", got)
	}

	entries, _ := os.ReadDir(filepath.Join(base, "nested", "dir"))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestFSStoreKeysStayInsideBase(t *testing.T) {
	base := t.TempDir()
	s, _ := NewFSStore(base)

	key, err := s.Put("../../escape.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if key != "escape.txt" {
		t.Fatalf("key = %q, want escape.txt", key)
	}
	if _, err := os.Stat(filepath.Join(base, "escape.txt")); err != nil {
		t.Fatalf("blob not under base: %v", err)
	}

	if _, err := s.Put("  ", strings.NewReader("x")); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("empty key err = %v", err)
	}
}

func TestFSStoreSignedURL(t *testing.T) {
	s, _ := NewFSStore(t.TempDir())
	u, err := s.SignedURL("a/b.json")
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	if !strings.HasPrefix(u, "file://") || !strings.HasSuffix(u, "/a/b.json") {
		t.Fatalf("url = %q", u)
	}
}
