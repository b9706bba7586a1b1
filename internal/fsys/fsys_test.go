package fsys

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStatKinds(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "a.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := OS()
	ctx := context.Background()

	info, err := fs.Stat(ctx, filePath)
	if err != nil {
		t.Fatalf("Stat file: %v", err)
	}
	if info.Kind != KindFile {
		t.Errorf("file kind: got %v, want KindFile", info.Kind)
	}
	if info.Size != 1 {
		t.Errorf("file size: got %d, want 1", info.Size)
	}

	info, err = fs.Stat(ctx, tmpDir)
	if err != nil {
		t.Fatalf("Stat dir: %v", err)
	}
	if info.Kind != KindDir {
		t.Errorf("dir kind: got %v, want KindDir", info.Kind)
	}
}

func TestStatMissingIsNotFound(t *testing.T) {
	fs := OS()
	_, err := fs.Stat(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing path")
	}
	if !IsNotFound(err) {
		t.Errorf("expected ErrNotFound classification, got %v", err)
	}
}

func TestReadFileText(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "f")
	if err := os.WriteFile(path, []byte("hello\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := OS().ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != "hello\n" {
		t.Errorf("content: got %q, want %q", got, "hello\n")
	}
}

func TestReadDirEntries(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "f"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := OS().ReadDir(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	byName := make(map[string]bool)
	for _, e := range entries {
		byName[e.Name] = e.IsDir
	}
	if !byName["sub"] {
		t.Error("expected sub to be a directory")
	}
	if byName["f"] {
		t.Error("expected f to be a file")
	}
}

func TestMkdirAll(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "a", "b", "c")

	if err := OS().MkdirAll(context.Background(), target); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		t.Errorf("expected created directory at %s", target)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := OS().Stat(ctx, "."); !errors.Is(err, context.Canceled) {
		t.Errorf("Stat with cancelled ctx: got %v, want context.Canceled", err)
	}
	if _, err := OS().ReadDir(ctx, "."); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadDir with cancelled ctx: got %v, want context.Canceled", err)
	}
}
