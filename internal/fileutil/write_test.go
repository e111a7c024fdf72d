package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.py")

	wrote, err := WriteIfChanged(path, []byte("print(1)\n"))
	if err != nil || !wrote {
		t.Fatalf("first write: wrote=%v err=%v", wrote, err)
	}
	wrote, err = WriteIfChanged(path, []byte("print(1)\n"))
	if err != nil || wrote {
		t.Fatalf("identical write: wrote=%v err=%v", wrote, err)
	}
	wrote, err = WriteIfChanged(path, []byte("print(2)\n"))
	if err != nil || !wrote {
		t.Fatalf("changed write: wrote=%v err=%v", wrote, err)
	}
}

func TestWriteIfChangedPreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.py")
	if err := os.WriteFile(path, []byte("old\n"), 0755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if _, err := WriteIfChanged(path, []byte("new\n")); err != nil {
		t.Fatalf("WriteIfChanged failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Fatalf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestEnsureExecutable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.py")
	if err := os.WriteFile(path, []byte("print(1)\n"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := EnsureExecutable(path); err != nil {
		t.Fatalf("EnsureExecutable failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Fatalf("mode = %v, want 0755", info.Mode().Perm())
	}

	// Already executable files keep their exact mode.
	if err := os.Chmod(path, 0700); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	if err := EnsureExecutable(path); err != nil {
		t.Fatalf("EnsureExecutable failed: %v", err)
	}
	info, err = os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Fatalf("mode = %v, want 0700", info.Mode().Perm())
	}
}

func TestEnsureTrailingNewline(t *testing.T) {
	if got := EnsureTrailingNewline("x"); got != "x\n" {
		t.Fatalf("got %q", got)
	}
	if got := EnsureTrailingNewline("x\n"); got != "x\n" {
		t.Fatalf("got %q", got)
	}
	if got := EnsureTrailingNewline(""); got != "\n" {
		t.Fatalf("got %q", got)
	}
}
