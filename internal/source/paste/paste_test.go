package paste

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestFromString(t *testing.T) {
	tr := FromString("one\ntwo\nthree")
	lines, err := tr.Lines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(lines, []string{"one", "two", "three"}) {
		t.Fatalf("lines = %v", lines)
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.txt")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tr, err := New(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, err := tr.Lines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(lines, []string{"a", "b"}) {
		t.Fatalf("lines = %v", lines)
	}
}

func TestNewRequiresPath(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestMissingFile(t *testing.T) {
	tr, err := New(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tr.Lines(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
