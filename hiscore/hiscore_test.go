package hiscore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "none.json"))
	high, err := s.Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0, got %d", high)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake_highscore.json")
	s := NewStore(path)
	if err := s.Save(230); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "230" {
		t.Errorf("Expected file content 230, got %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("Expected mode 0644, got %#o", perm)
	}

	high, err := NewStore(path).Load()
	if err != nil || high != 230 {
		t.Errorf("Expected 230, got %d (%v)", high, err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path).Load(); err == nil {
		t.Error("Expected an error for a corrupt file")
	}
}
