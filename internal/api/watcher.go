package api

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long the watched file must be quiet before a
// change is reported.
const DebounceInterval = 100 * time.Millisecond

// ChangeOp is the state of the watched file once a burst of events settles.
type ChangeOp string

const (
	ChangeWritten ChangeOp = "written"
	ChangeRemoved ChangeOp = "removed"
)

// FileChange is a settled change to the watched file.
type FileChange struct {
	Op   ChangeOp `json:"op"`
	Path string   `json:"path"`
}

// ChangeHandler is called once per settled change.
type ChangeHandler func(FileChange)

type watcherState int

const (
	watcherIdle watcherState = iota
	watcherRunning
	watcherStopped // Once stopped, cannot restart
)

// FileWatcher reports changes to a single file. The parent directory is
// watched so replace-by-rename saves are seen; the file's state is read
// when events settle, so a remove followed by a create reports a write.
type FileWatcher struct {
	fsw    *fsnotify.Watcher
	target string // Cleaned absolute path
	done   chan struct{}

	mu       sync.Mutex
	handlers []ChangeHandler
	timer    *time.Timer
	state    watcherState
}

// NewFileWatcher creates a watcher for path. Nothing is watched until Start.
func NewFileWatcher(path string) (*FileWatcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		fsw:    fsw,
		target: filepath.Clean(target),
		done:   make(chan struct{}),
	}, nil
}

// OnChange registers a handler. Handlers run on the debounce timer's
// goroutine, in registration order.
func (fw *FileWatcher) OnChange(h ChangeHandler) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.handlers = append(fw.handlers, h)
}

// Start begins watching. Calling Start on a running watcher is a no-op.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	switch fw.state {
	case watcherRunning:
		fw.mu.Unlock()
		return nil
	case watcherStopped:
		fw.mu.Unlock()
		return fmt.Errorf("file watcher cannot be restarted after stop")
	}
	fw.mu.Unlock()

	dir := filepath.Dir(fw.target)
	if err := fw.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fw.mu.Lock()
	fw.state = watcherRunning
	fw.mu.Unlock()

	go fw.loop()
	return nil
}

// Stop stops watching. Pending changes are dropped.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if fw.state == watcherStopped {
		fw.mu.Unlock()
		return nil
	}
	wasRunning := fw.state == watcherRunning
	fw.state = watcherStopped
	if fw.timer != nil {
		fw.timer.Stop()
		fw.timer = nil
	}
	fw.mu.Unlock()

	if wasRunning {
		close(fw.done)
	}
	if fw.fsw == nil {
		return nil
	}
	return fw.fsw.Close()
}

// Target returns the watched file path.
func (fw *FileWatcher) Target() string {
	return fw.target
}

func (fw *FileWatcher) loop() {
	for {
		select {
		case event, ok := <-fw.fsw.Events:
			if !ok {
				return
			}
			if fw.relevant(event) {
				fw.schedule()
			}

		case err, ok := <-fw.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-fw.done:
			return
		}
	}
}

// relevant reports whether event touches the target's content or existence.
func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.target {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// schedule (re)arms the debounce timer.
func (fw *FileWatcher) schedule() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.state != watcherRunning {
		return
	}
	if fw.timer != nil {
		fw.timer.Reset(DebounceInterval)
		return
	}
	fw.timer = time.AfterFunc(DebounceInterval, fw.settle)
}

func (fw *FileWatcher) settle() {
	fw.mu.Lock()
	if fw.state != watcherRunning {
		fw.mu.Unlock()
		return
	}
	fw.timer = nil
	handlers := make([]ChangeHandler, len(fw.handlers))
	copy(handlers, fw.handlers)
	fw.mu.Unlock()

	change := fw.snapshot()
	for _, h := range handlers {
		h(change)
	}
}

// snapshot reads the target's current state.
func (fw *FileWatcher) snapshot() FileChange {
	change := FileChange{Op: ChangeRemoved, Path: filepath.Base(fw.target)}
	if info, err := os.Stat(fw.target); err == nil && !info.IsDir() {
		change.Op = ChangeWritten
	}
	return change
}
