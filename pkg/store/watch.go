package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"tableflip.dev/freewrite/pkg/entry"
)

// Source reports raw "something changed" signals for a root.
type Source interface {
	Start(root string, signal func()) error
	Stop() error
}

// FSNotifySource watches a root directory with fsnotify and signals on any
// change to a markdown file in it.
type FSNotifySource struct {
	Log zerolog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

func (s *FSNotifySource) Start(root string, signal func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		return errors.New("store: watcher already started")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(root); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("store: watch %s: %w", root, err)
	}
	s.watcher = watcher
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		for {
			select {
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// We cannot tell what changed, so treat it as a change.
				s.Log.Warn().Err(err).Str("root", root).Msg("watcher error")
				signal()
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(filepath.Base(evt.Name), entry.Extension) {
					continue
				}
				if evt.Op == fsnotify.Chmod {
					continue
				}
				s.Log.Debug().Str("file", evt.Name).Str("op", evt.Op.String()).Msg("file changed")
				signal()
			}
		}
	}(s.done)
	return nil
}

func (s *FSNotifySource) Stop() error {
	s.mu.Lock()
	watcher, done := s.watcher, s.done
	s.watcher, s.done = nil, nil
	s.mu.Unlock()

	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-done
	return err
}

// ChangeWatcher turns bursts of signals into paced notifications. A signal
// arriving within Throttle of the last accepted one is dropped; an accepted
// signal schedules a single notification Delay later. Notifications run on
// their own goroutine.
type ChangeWatcher struct {
	Throttle time.Duration
	Delay    time.Duration

	source Source
	now    func() time.Time

	mu      sync.Mutex
	last    time.Time
	pending bool
	timer   *time.Timer
	notify  func()
}

// NewChangeWatcher paces signals from src. src may be nil, in which case
// only explicit calls to Signal produce notifications.
func NewChangeWatcher(src Source, throttle, delay time.Duration) *ChangeWatcher {
	return &ChangeWatcher{
		Throttle: throttle,
		Delay:    delay,
		source:   src,
		now:      time.Now,
	}
}

// Start begins watching root and calls notify for each paced change.
func (w *ChangeWatcher) Start(root string, notify func()) error {
	w.mu.Lock()
	w.notify = notify
	w.mu.Unlock()
	if w.source == nil {
		return nil
	}
	return w.source.Start(root, w.Signal)
}

// Stop halts the source and cancels any pending notification.
func (w *ChangeWatcher) Stop() error {
	var err error
	if w.source != nil {
		err = w.source.Stop()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = false
	w.notify = nil
	return err
}

// Signal records that something changed.
func (w *ChangeWatcher) Signal() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if !w.last.IsZero() && now.Sub(w.last) < w.Throttle {
		return
	}
	w.last = now
	if w.pending {
		return
	}
	w.pending = true
	w.timer = time.AfterFunc(w.Delay, w.fire)
}

// Pending reports whether a notification is scheduled.
func (w *ChangeWatcher) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

func (w *ChangeWatcher) fire() {
	w.mu.Lock()
	notify := w.notify
	w.pending = false
	w.timer = nil
	w.mu.Unlock()

	if notify != nil {
		notify()
	}
}
