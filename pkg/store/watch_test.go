package store

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func waitForCount(t *testing.T, n *int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(n) >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d notifications, got %d", want, atomic.LoadInt32(n))
}

func TestChangeWatcherDropsSignalsWithinThrottle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	w := NewChangeWatcher(nil, time.Second, 10*time.Millisecond)
	w.now = clock.Now

	var count int32
	if err := w.Start("", func() { atomic.AddInt32(&count, 1) }); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	w.Signal()
	clock.Advance(200 * time.Millisecond)
	w.Signal()

	waitForCount(t, &count, 1)
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", got)
	}
}

func TestChangeWatcherAcceptsSignalsPastThrottle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	w := NewChangeWatcher(nil, time.Second, 10*time.Millisecond)
	w.now = clock.Now

	var count int32
	if err := w.Start("", func() { atomic.AddInt32(&count, 1) }); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	w.Signal()
	waitForCount(t, &count, 1)

	clock.Advance(1500 * time.Millisecond)
	w.Signal()
	waitForCount(t, &count, 2)
}

func TestChangeWatcherStopCancelsPending(t *testing.T) {
	w := NewChangeWatcher(nil, time.Second, 50*time.Millisecond)

	var count int32
	if err := w.Start("", func() { atomic.AddInt32(&count, 1) }); err != nil {
		t.Fatalf("start: %v", err)
	}
	w.Signal()
	if !w.Pending() {
		t.Fatalf("expected a pending notification")
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 0 {
		t.Fatalf("expected no notification after stop, got %d", got)
	}
}

func TestFSNotifySourceSignalsOnMarkdownWrites(t *testing.T) {
	root := t.TempDir()
	src := &FSNotifySource{}

	signals := make(chan struct{}, 16)
	if err := src.Start(root, func() {
		select {
		case signals <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer src.Stop()

	// Non-entry files are ignored.
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-signals:
		t.Fatal("expected no signal for a non-markdown file")
	case <-time.After(100 * time.Millisecond):
	}

	if err := os.WriteFile(filepath.Join(root, "entry.md"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-signals:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change signal")
	}
}
