// Package app is the entry catalog: the in-memory list of entries, the
// current selection and its text, and the sync state, shared by the terminal
// UI, the CLI and the MCP server.
package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/store"
)

var (
	errNoStore = errors.New("app: no store configured")

	// ErrEntryNotFound is returned when a reference matches no entry.
	ErrEntryNotFound = errors.New("app: entry not found")

	// ErrAmbiguous is returned when an id prefix matches several entries.
	ErrAmbiguous = errors.New("app: entry reference is ambiguous")
)

// Placeholders are shown in an empty editor.
var Placeholders = []string{
	"Begin writing",
	"Pick a thought and go",
	"Start typing",
	"What's on your mind",
	"Just start",
	"Type your first thought",
	"Start with one sentence",
	"Just say it",
}

// Options configures a Service.
type Options struct {
	Store   *store.Store
	Watcher *store.ChangeWatcher

	// MigrateConcurrency bounds parallel copies during a sync toggle.
	MigrateConcurrency int

	Log zerolog.Logger

	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

// Service owns catalog state. State changes are serialized by a mutex; file
// I/O happens outside it.
type Service struct {
	store       *store.Store
	backend     *store.Backend
	watcher     *store.ChangeWatcher
	concurrency int
	log         zerolog.Logger
	now         func() time.Time

	mu          sync.Mutex
	entries     []entry.Entry
	selectedID  string
	text        string
	placeholder string
	syncing     bool
	lastSyncErr string
	generation  uint64
	watchStop   chan struct{}
	watchExited chan struct{}

	events broadcaster
}

// New builds a Service. Call Reload to populate it.
func New(opts Options) *Service {
	s := &Service{
		store:       opts.Store,
		watcher:     opts.Watcher,
		concurrency: opts.MigrateConcurrency,
		log:         opts.Log,
		now:         opts.Now,
		placeholder: Placeholders[0],
	}
	if s.store != nil {
		s.backend = s.store.Backend()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Entries returns the catalog, newest first.
func (s *Service) Entries() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Selected returns the selected entry.
func (s *Service) Selected() (entry.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(s.selectedID)
	if i < 0 {
		return entry.Entry{}, false
	}
	return s.entries[i], true
}

// Text is the content of the selected entry as last loaded or saved.
func (s *Service) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Placeholder is the prompt shown while the selected entry is empty.
func (s *Service) Placeholder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.placeholder
}

// Find resolves ref against the catalog: a full id, a filename, or a
// unique id prefix.
func (s *Service) Find(ref string) (entry.Entry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return entry.Entry{}, ErrEntryNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var match []entry.Entry
	for _, e := range s.entries {
		if e.ID == ref || e.Filename == ref {
			return e, nil
		}
		if strings.HasPrefix(e.ID, ref) {
			match = append(match, e)
		}
	}
	switch len(match) {
	case 0:
		return entry.Entry{}, ErrEntryNotFound
	case 1:
		return match[0], nil
	default:
		return entry.Entry{}, ErrAmbiguous
	}
}

// Load reads the content of an entry file from the active root.
func (s *Service) Load(ctx context.Context, filename string) (string, error) {
	if s.store == nil {
		return "", errNoStore
	}
	return s.store.Load(ctx, filename)
}

// Select makes the entry with filename current and loads its text.
func (s *Service) Select(ctx context.Context, filename string) (string, error) {
	if s.store == nil {
		return "", errNoStore
	}
	content, err := s.store.Load(ctx, filename)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	i := s.indexByFilenameLocked(filename)
	if i < 0 {
		s.mu.Unlock()
		return "", ErrEntryNotFound
	}
	s.selectedID = s.entries[i].ID
	s.text = content
	s.mu.Unlock()

	s.events.publish(Event{Type: EventSelectionChanged})
	return content, nil
}

// Save writes content to filename in the active root and refreshes that
// entry's preview. A failed save leaves the catalog untouched.
func (s *Service) Save(ctx context.Context, filename, content string) error {
	if s.store == nil {
		return errNoStore
	}
	if err := s.store.Save(ctx, filename, content); err != nil {
		s.log.Error().Err(err).Str("file", filename).Msg("failed to save entry")
		return err
	}

	s.mu.Lock()
	if i := s.indexByFilenameLocked(filename); i >= 0 {
		s.entries[i] = s.entries[i].WithContent(content)
		if s.entries[i].ID == s.selectedID {
			s.text = content
		}
	}
	s.mu.Unlock()

	s.events.publish(Event{Type: EventEntriesChanged})
	return nil
}

// NewEntry creates, saves and selects a fresh empty entry.
func (s *Service) NewEntry(ctx context.Context) (entry.Entry, error) {
	if s.store == nil {
		return entry.Entry{}, errNoStore
	}
	e, err := s.create(ctx, s.store.Active(), false)
	s.events.publish(Event{Type: EventEntriesChanged})
	return e, err
}

// Delete removes filename. If it was selected, the newest remaining entry is
// selected instead, or a new entry is created when none remain.
func (s *Service) Delete(ctx context.Context, filename string) error {
	if s.store == nil {
		return errNoStore
	}
	if err := s.store.Delete(ctx, filename); err != nil {
		s.log.Error().Err(err).Str("file", filename).Msg("failed to delete entry")
		return err
	}

	s.mu.Lock()
	i := s.indexByFilenameLocked(filename)
	if i < 0 {
		s.mu.Unlock()
		s.events.publish(Event{Type: EventEntriesChanged})
		return nil
	}
	wasSelected := s.entries[i].ID == s.selectedID
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	var next string
	remaining := len(s.entries)
	if wasSelected {
		s.selectedID = ""
		s.text = ""
		if remaining > 0 {
			next = s.entries[0].Filename
		}
	}
	s.mu.Unlock()

	switch {
	case wasSelected && remaining == 0:
		_, _ = s.create(ctx, s.store.Active(), false)
	case next != "":
		if _, err := s.Select(ctx, next); err != nil {
			s.log.Warn().Err(err).Str("file", next).Msg("failed to load entry after delete")
		}
	}
	s.events.publish(Event{Type: EventEntriesChanged})
	return nil
}

// create inserts a new entry at the head of the catalog, selects it and
// writes it to dir. The very first entry of an empty catalog carries the
// welcome text; every other new entry starts empty with a fresh placeholder.
func (s *Service) create(ctx context.Context, dir *store.Dir, welcome bool) (entry.Entry, error) {
	e := entry.New(s.now())
	content := ""
	if welcome {
		content = entry.Welcome
	}
	e = e.WithContent(content)

	s.mu.Lock()
	s.entries = append([]entry.Entry{e}, s.entries...)
	s.selectedID = e.ID
	s.text = content
	if !welcome {
		s.placeholder = Placeholders[rand.IntN(len(Placeholders))]
	}
	s.mu.Unlock()

	if err := dir.Save(ctx, e.Filename, content); err != nil {
		s.log.Error().Err(err).Str("file", e.Filename).Msg("failed to save new entry")
		return e, err
	}
	return e, nil
}

func (s *Service) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) indexByFilenameLocked(filename string) int {
	for i, e := range s.entries {
		if e.Filename == filename {
			return i
		}
	}
	return -1
}
