package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Events:
		return c
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("no change reported")
	}
	return Change{}
}

func TestWatcherReportsSpecAndScriptEdits(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	w, err := newWatcher(dir)
	if err != nil {
		t.Fatalf("newWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, SphereFile), []byte("name: a\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if c := waitChange(t, w); c.Kind != SpecChanged || c.Name != SphereFile {
		t.Fatalf("change = %+v, want spec %s", c, SphereFile)
	}

	if err := os.WriteFile(filepath.Join(dir, "scripts", "bot.tengo"), []byte("jump = true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if c := waitChange(t, w); c.Kind != ScriptChanged || c.Name != "scripts/bot.tengo" {
		t.Fatalf("change = %+v, want script scripts/bot.tengo", c)
	}
}

func TestWatcherCoalescesBurstOfWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := newWatcher(dir)
	if err != nil {
		t.Fatalf("newWatcher: %v", err)
	}
	defer w.Close()

	target := filepath.Join(dir, CourseFile)
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(target, []byte("name: burst\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if c := waitChange(t, w); c.Name != CourseFile {
		t.Fatalf("change = %+v, want %s", c, CourseFile)
	}
	select {
	case c := <-w.Events:
		t.Fatalf("extra change reported: %+v", c)
	case <-time.After(3 * reloadDebounce):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := newWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("newWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("event after close")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel not closed")
	}
}
