package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
)

func writeAll(t *testing.T, fsys FileSystem, name, data string) {
	t.Helper()
	w, err := fsys.Create(name)
	if err != nil {
		t.Fatalf("Create(%q): %v", name, err)
	}
	if _, err := io.WriteString(w, data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOSFileSystem(t *testing.T) {
	var fsys FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	name := filepath.Join(dir, "out.txt")
	writeAll(t, fsys, name, "hello")

	got, err := fsys.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("ReadFile = %q, want %q", got, "hello")
	}
}

func TestMemoryFileSystem(t *testing.T) {
	fsys := NewMemoryFileSystem()

	if _, err := fsys.Create("plots/x.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Create without parent dir: err = %v, want ErrNotExist", err)
	}

	if err := fsys.MkdirAll("out/plots", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writeAll(t, fsys, "out/plots/b.png", "bb")
	writeAll(t, fsys, "out/a.html", "aa")
	writeAll(t, fsys, "root.txt", "r")

	got, err := fsys.ReadFile("out/plots/../plots/b.png")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "bb" {
		t.Errorf("ReadFile = %q, want %q", got, "bb")
	}

	want := []string{"out/a.html", "out/plots/b.png", "root.txt"}
	files := fsys.Files()
	if len(files) != len(want) {
		t.Fatalf("Files() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("Files()[%d] = %q, want %q", i, files[i], want[i])
		}
	}

	if _, err := fsys.ReadFile("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing): err = %v, want ErrNotExist", err)
	}
}

func TestMemoryFileSystemUnclosedWriter(t *testing.T) {
	fsys := NewMemoryFileSystem()
	w, err := fsys.Create("pending.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	io.WriteString(w, "data")
	if _, err := fsys.ReadFile("pending.txt"); err == nil {
		t.Error("file should not be visible before Close")
	}
	w.Close()
	if _, err := fsys.ReadFile("pending.txt"); err != nil {
		t.Errorf("file should be visible after Close: %v", err)
	}
}
