package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, files ...string) (*Watcher, <-chan Change) {
	t.Helper()
	w, err := New(Config{Files: files, Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	changes := make(chan Change, 16)
	w.OnChange(func(c Change) { changes <- c })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Start(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	deadline := time.Now().Add(time.Second)
	for !w.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	return w, changes
}

func waitChange(t *testing.T, changes <-chan Change) Change {
	t.Helper()
	select {
	case c := <-changes:
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func TestNewRequiresFiles(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error without files")
	}
}

func TestWriteIsReported(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "game.yaml")
	if err := os.WriteFile(file, []byte("a: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, changes := startWatcher(t, file)

	if err := os.WriteFile(file, []byte("a: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := waitChange(t, changes)
	abs, _ := filepath.Abs(file)
	if c.Path != abs {
		t.Errorf("Path = %q, want %q", c.Path, abs)
	}
	if c.Removed {
		t.Error("write should not be reported as removal")
	}
}

func TestBurstIsDebounced(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "game.yaml")
	_ = os.WriteFile(file, []byte("a: 0\n"), 0644)

	_, changes := startWatcher(t, file)

	for i := 0; i < 5; i++ {
		_ = os.WriteFile(file, []byte("a: 1\n"), 0644)
	}

	waitChange(t, changes)
	select {
	case c := <-changes:
		t.Errorf("burst should produce one change, got another: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestOtherFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "game.yaml")
	_ = os.WriteFile(file, []byte("a: 0\n"), 0644)

	_, changes := startWatcher(t, file)

	_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644)

	select {
	case c := <-changes:
		t.Errorf("unexpected change: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRemoveIsReported(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "game.yaml")
	_ = os.WriteFile(file, []byte("a: 0\n"), 0644)

	_, changes := startWatcher(t, file)

	if err := os.Remove(file); err != nil {
		t.Fatal(err)
	}
	if c := waitChange(t, changes); !c.Removed {
		t.Errorf("expected removal, got %+v", c)
	}
}

func TestStop(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "game.yaml")
	_ = os.WriteFile(file, nil, 0644)

	w, err := New(Config{Files: []string{file}})
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	deadline := time.Now().Add(time.Second)
	for !w.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	w.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v after Stop", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
	if w.IsRunning() {
		t.Error("watcher should not be running")
	}
}
