package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAddTreeMissingRoot(t *testing.T) {
	w, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.fsw.Close()

	if err := w.AddTree(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("AddTree of a missing root did not fail")
	}
}

func TestWatcherDeliversDebouncedEvent(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	w, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.AddTree(dir); err != nil {
		t.Fatalf("AddTree failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// A burst of writes should coalesce into a single notification.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(filepath.Join(dir, "sub", "mod.pbo"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case ev := <-w.Changes():
		if ev.Path == "" {
			t.Error("event has no path")
		}
	case <-time.After(DebounceInterval + 5*time.Second):
		t.Fatal("no change event delivered")
	}
}
