package debpatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindBuildRoot(t *testing.T) {
	srcRoot := t.TempDir()
	if err := os.Mkdir(filepath.Join(srcRoot, "kate-22.04.0"), 0o755); err != nil {
		t.Fatal(err)
	}
	// Files matching the pattern must be ignored.
	if err := os.WriteFile(filepath.Join(srcRoot, "kate-22.04.0.tar.xz"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Unrelated directories too.
	if err := os.Mkdir(filepath.Join(srcRoot, "other-1.0"), 0o755); err != nil {
		t.Fatal(err)
	}

	root, err := findBuildRoot(srcRoot, "kate")
	if err != nil {
		t.Fatalf("findBuildRoot: %v", err)
	}
	if root != filepath.Join(srcRoot, "kate-22.04.0") {
		t.Errorf("root = %q", root)
	}
}

func TestFindBuildRootNone(t *testing.T) {
	srcRoot := t.TempDir()
	_, err := findBuildRoot(srcRoot, "kate")
	var nbErr *NoBuildRootError
	if !errors.As(err, &nbErr) {
		t.Fatalf("err = %v, want *NoBuildRootError", err)
	}
	if nbErr.Package != "kate" {
		t.Errorf("package = %q", nbErr.Package)
	}
}

func TestFindBuildRootDeterministicTieBreak(t *testing.T) {
	srcRoot := t.TempDir()
	for _, dir := range []string{"kate-9.0", "kate-22.04.0"} {
		if err := os.Mkdir(filepath.Join(srcRoot, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	root, err := findBuildRoot(srcRoot, "kate")
	if err != nil {
		t.Fatalf("findBuildRoot: %v", err)
	}
	// Lexicographically smallest wins, independent of listing order.
	if root != filepath.Join(srcRoot, "kate-22.04.0") {
		t.Errorf("root = %q, want the lexicographically smallest candidate", root)
	}
}
