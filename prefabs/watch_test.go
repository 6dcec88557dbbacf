package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func nextReload(t *testing.T, w *Watcher) Reload {
	t.Helper()
	select {
	case r, ok := <-w.Reloads:
		if !ok {
			t.Fatal("reloads channel closed")
		}
		return r
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a reload")
	}
	return Reload{}
}

func writeTuning(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatchTuningReloadsValidatedTuning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeTuning(t, path, "wave:\n  base: 2\n")

	w, err := WatchTuning(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	writeTuning(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeTuning(t, path, "wave:\n  base: 5\n")

	r := nextReload(t, w)
	if r.Err != nil {
		t.Fatalf("reload rejected: %v", r.Err)
	}
	if r.Trigger != path {
		t.Fatalf("got trigger %q, want %q", r.Trigger, path)
	}
	if r.Tuning.Wave.Base != 5 {
		t.Fatalf("got wave base %v, want 5", r.Tuning.Wave.Base)
	}
}

func TestWatchTuningReportsInvalidTuning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeTuning(t, path, "wave:\n  base: 2\n")

	w, err := WatchTuning(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	writeTuning(t, path, "player:\n  health: -1\n")

	r := nextReload(t, w)
	if r.Err == nil {
		t.Fatalf("negative health accepted: %+v", r.Tuning)
	}
	if !strings.Contains(r.Err.Error(), "player.health") {
		t.Fatalf("error does not name the bad key: %v", r.Err)
	}
}

func TestWatcherCollapsesBursts(t *testing.T) {
	dir := t.TempDir()
	var loads atomic.Int32
	w, err := NewWatcher(func() (Tuning, error) {
		loads.Add(1)
		return DefaultTuning(), nil
	}, dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "arena.yaml")
	for i := 0; i < 5; i++ {
		writeTuning(t, path, strings.Repeat("#", i+1)+"\n")
	}
	nextReload(t, w)

	select {
	case r := <-w.Reloads:
		t.Fatalf("burst produced a second reload: %+v", r)
	case <-time.After(4 * debounce):
	}
	if n := loads.Load(); n != 1 {
		t.Fatalf("got %d loads, want 1", n)
	}
}

func TestNewWatcherSkipsMissingDirs(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(func() (Tuning, error) { return DefaultTuning(), nil }, filepath.Join(dir, "missing"), dir)
	if err != nil {
		t.Fatalf("one good dir should be enough: %v", err)
	}
	w.Close()

	if _, err := NewWatcher(func() (Tuning, error) { return DefaultTuning(), nil }, filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected an error when nothing can be watched")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(func() (Tuning, error) { return DefaultTuning(), nil }, t.TempDir())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	select {
	case _, ok := <-w.Reloads:
		if ok {
			t.Fatal("expected reloads channel to close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reloads channel never closed")
	}
}
