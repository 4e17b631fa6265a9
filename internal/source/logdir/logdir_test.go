package logdir

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLinesFilenameOrder(t *testing.T) {
	dir := t.TempDir()
	// Written out of order; reads must follow filename order.
	writeFile(t, dir, "Chat_2016-05-07.log", "line3\nline4\n")
	writeFile(t, dir, "Chat_2016-05-06.log", "line1\nline2\n")
	writeFile(t, dir, "notes.txt", "ignored\n")

	d, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, err := d.Lines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"line1", "line2", "line3", "line4"}
	if !slices.Equal(lines, want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
}

func TestLinesEmptyDir(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, err := d.Lines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("lines = %v, want none", lines)
	}
}

func TestNewRequiresDir(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestLinesCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.log", "x\n")

	d, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Lines(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestWithPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.log", "skipped\n")
	writeFile(t, dir, "a.txt", "kept\n")

	d, err := New(dir, WithPattern("*.txt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, err := d.Lines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(lines, []string{"kept"}) {
		t.Fatalf("lines = %v", lines)
	}
}
