package scenespec

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDebouncesAndCloses(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("name: a\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(path, []byte("name: b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Ignored: not a scene, script or image.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != path {
			t.Fatalf("event for %q, want %q", name, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the scene file")
	}
	select {
	case name := <-w.Events:
		t.Fatalf("second write inside the debounce window produced %q", name)
	case <-time.After(debounce / 2):
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Events was not closed after Close")
		}
	}
}

func TestSpecFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("name: a\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f := NewSpecFilter(path)

	if f.Changed(path) {
		t.Fatal("unmodified scene should not trigger a reload")
	}
	if f.Changed(filepath.Join(dir, "other.yaml")) {
		t.Fatal("another scene file should not trigger a reload while ours is unchanged")
	}
	if !f.Changed(filepath.Join(dir, "walls.tengo")) || !f.Changed(filepath.Join(dir, "man-ne.png")) {
		t.Fatal("scripts and images always trigger a reload")
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if !f.Changed(path) {
		t.Fatal("modified scene should trigger a reload")
	}
	f.Mark()
	if f.Changed(path) {
		t.Fatal("Mark should record the new modification time")
	}

	missing := NewSpecFilter(filepath.Join(dir, "missing.yaml"))
	if !missing.Changed(path) {
		t.Fatal("a scene with no file on disk cannot be compared and should reload")
	}
}
