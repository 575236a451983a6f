package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestFileWatcher_Relevant(t *testing.T) {
	target := filepath.Join("/project", "colormap.json")
	fw := &FileWatcher{target: target}

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"create", target, fsnotify.Create, true},
		{"write", target, fsnotify.Write, true},
		{"remove", target, fsnotify.Remove, true},
		{"rename", target, fsnotify.Rename, true},
		{"chmod only", target, fsnotify.Chmod, false},
		{"sibling file", "/project/other.json", fsnotify.Write, false},
		{"nested file", "/project/sub/colormap.json", fsnotify.Write, false},
		{"temp file from atomic save", "/project/.swatch-123.json", fsnotify.Create, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fw.relevant(fsnotify.Event{Name: tt.path, Op: tt.op}); got != tt.want {
				t.Errorf("relevant(%s %s) = %v, want %v", tt.op, tt.path, got, tt.want)
			}
		})
	}
}

func TestFileWatcher_Snapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colormap.json")
	fw := &FileWatcher{target: path}

	if got := fw.snapshot(); got.Op != ChangeRemoved || got.Path != "colormap.json" {
		t.Errorf("snapshot of missing file = %+v", got)
	}

	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	if got := fw.snapshot(); got.Op != ChangeWritten {
		t.Errorf("snapshot of existing file = %+v", got)
	}
}

func TestFileWatcher_OnChange(t *testing.T) {
	fw := &FileWatcher{}

	fw.OnChange(func(FileChange) {})
	fw.OnChange(func(FileChange) {})

	if len(fw.handlers) != 2 {
		t.Errorf("Expected 2 handlers, got %d", len(fw.handlers))
	}
}

func TestFileWatcher_StoppedPreventsRestart(t *testing.T) {
	fw := &FileWatcher{state: watcherStopped}

	if err := fw.Start(); err == nil {
		t.Error("Expected error when starting stopped watcher")
	}
}

func TestFileWatcher_StopIdle(t *testing.T) {
	fw, err := NewFileWatcher(filepath.Join(t.TempDir(), "colormap.json"))
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	if err := fw.Stop(); err != nil {
		t.Errorf("Stop on idle watcher failed: %v", err)
	}
	if err := fw.Stop(); err != nil {
		t.Errorf("Second Stop failed: %v", err)
	}
}

func startWatcher(t *testing.T, path string) <-chan FileChange {
	t.Helper()
	fw, err := NewFileWatcher(path)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	changes := make(chan FileChange, 10)
	fw.OnChange(func(c FileChange) { changes <- c })
	if err := fw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { fw.Stop() })
	return changes
}

func waitChange(t *testing.T, changes <-chan FileChange) FileChange {
	t.Helper()
	select {
	case change := <-changes:
		return change
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
	return FileChange{}
}

func TestFileWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colormap.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	changes := startWatcher(t, path)

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"stone": "#7d7d7d"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if change := waitChange(t, changes); change.Op != ChangeWritten {
		t.Errorf("Op = %q, want %q", change.Op, ChangeWritten)
	}
}

func TestFileWatcher_AtomicReplaceIsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colormap.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	changes := startWatcher(t, path)

	tmp := filepath.Join(dir, ".swatch-tmp.json")
	if err := os.WriteFile(tmp, []byte(`{"stone": "#7d7d7d"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	if change := waitChange(t, changes); change.Op != ChangeWritten {
		t.Errorf("Op = %q, want %q", change.Op, ChangeWritten)
	}
}

func TestFileWatcher_DetectsRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colormap.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	changes := startWatcher(t, path)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	if change := waitChange(t, changes); change.Op != ChangeRemoved {
		t.Errorf("Op = %q, want %q", change.Op, ChangeRemoved)
	}
}

func TestFileWatcher_StartMissingDir(t *testing.T) {
	fw, err := NewFileWatcher(filepath.Join(t.TempDir(), "missing", "colormap.json"))
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Stop()
	if err := fw.Start(); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
