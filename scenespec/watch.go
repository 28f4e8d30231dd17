package scenespec

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changed scene files, scripts and images. Bursts of events
// on one file within the debounce window are reported once.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

const debounce = 100 * time.Millisecond

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once the run loop
// exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Events)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !Watched(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Watched reports whether a change to path should trigger a reload.
func Watched(path string) bool {
	return isSpecFile(path) || isScriptFile(path) || isImageFile(path)
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

func isImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return true
	}
	return false
}

// SpecFilter drops watcher events for scene files when the scene being shown
// has not actually been modified since it was last loaded.
type SpecFilter struct {
	name  string
	mod   time.Time
	known bool
}

// NewSpecFilter records the current modification time of the named scene.
func NewSpecFilter(name string) *SpecFilter {
	f := &SpecFilter{name: name}
	f.Mark()
	return f
}

// Changed reports whether a change to path should rebuild the scene.
// Scripts and images always do. A scene file only does when the loaded
// scene's modification time moved.
func (f *SpecFilter) Changed(path string) bool {
	if !isSpecFile(path) {
		return true
	}
	mod, ok := ModTime(f.name)
	if !ok || !f.known {
		return true
	}
	return !mod.Equal(f.mod)
}

// Mark records the scene's current modification time.
func (f *SpecFilter) Mark() {
	f.mod, f.known = ModTime(f.name)
}
