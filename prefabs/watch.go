package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Reload is the outcome of one settled burst of file changes: the tuning
// loaded and validated afresh, or the error that rejected it.
type Reload struct {
	Trigger string
	Tuning  Tuning
	Err     error
}

// Watcher reloads tuning whenever a tuning file or wave script changes on
// disk. Loading waits until the files have been quiet for the debounce
// window, so an editor's write-rename-chmod burst yields one Reload.
type Watcher struct {
	watcher *fsnotify.Watcher
	load    func() (Tuning, error)
	seen    map[string]time.Time

	Reloads chan Reload
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// WatchTuning watches the directory holding the tuning at path, or the
// prefabs directory when path is empty, plus the wave scripts. Every reload
// goes through OpenTuning(path).
func WatchTuning(path string) (*Watcher, error) {
	dirs := []string{Builtin.Dir, Builtin.DiskPath("scripts")}
	if path != "" {
		dirs = []string{filepath.Dir(path), Builtin.DiskPath("scripts")}
	}
	return NewWatcher(func() (Tuning, error) { return OpenTuning(path) }, dirs...)
}

// NewWatcher watches dirs and calls load after each settled change. Missing
// directories are skipped; it fails only if none can be watched.
func NewWatcher(load func() (Tuning, error), dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	var firstErr error
	watched := 0
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		watched++
	}
	if watched == 0 && firstErr != nil {
		_ = w.Close()
		return nil, firstErr
	}

	watcher := &Watcher{
		watcher: w,
		load:    load,
		seen:    make(map[string]time.Time),
		Reloads: make(chan Reload, 4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run owns the output channels and closes them on exit.
func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Reloads)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	var trigger string
	var settle <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.changed(event) {
				continue
			}
			trigger = event.Name
			timer.Reset(debounce)
			settle = timer.C
		case <-settle:
			settle = nil
			reload := Reload{Trigger: trigger}
			reload.Tuning, reload.Err = w.load()
			select {
			case w.Reloads <- reload:
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

// changed filters out events for other files and writes that left the
// modification time where the last one did.
func (w *Watcher) changed(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	if !IsTuningFile(event.Name) && !IsScriptFile(event.Name) {
		return false
	}
	mod, ok := modTime(event.Name)
	if !ok {
		delete(w.seen, event.Name)
		return true
	}
	if prev, ok := w.seen[event.Name]; ok && prev.Equal(mod) {
		return false
	}
	w.seen[event.Name] = mod
	return true
}

func modTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func IsTuningFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func IsScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
