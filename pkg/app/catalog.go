package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/store"
)

// scanned is an entry read from disk along with its content.
type scanned struct {
	entry   entry.Entry
	content string
}

// Reload rebuilds the catalog from the active root and then applies the
// creation policy:
//
//   - no entries: create the welcome entry;
//   - no empty entry dated today, and the catalog is not just the welcome
//     entry: create a new empty entry;
//   - otherwise keep the previous selection if it still exists, else select
//     the newest entry.
//
// Files that do not follow the naming grammar or cannot be read are skipped.
// A listing failure is treated as an empty root. When a newer Reload starts
// before this one finishes, this one's results are discarded.
func (s *Service) Reload(ctx context.Context) ([]entry.Entry, error) {
	return s.reload(ctx, true)
}

// Scan rebuilds the catalog like Reload but never creates entries. The
// previous selection is kept if it still exists, else the newest entry is
// selected; an empty root leaves nothing selected.
func (s *Service) Scan(ctx context.Context) ([]entry.Entry, error) {
	return s.reload(ctx, false)
}

func (s *Service) reload(ctx context.Context, policy bool) ([]entry.Entry, error) {
	if s.store == nil {
		return nil, errNoStore
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	dir := s.store.Active()
	found := s.scan(ctx, dir)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.log.Debug().Msg("discarding stale reload")
		return s.Entries(), nil
	}
	entries := make([]entry.Entry, len(found))
	for i, f := range found {
		entries[i] = f.entry
	}
	s.entries = entries
	prev := s.selectedID
	s.mu.Unlock()

	now := s.now()
	switch {
	case !policy && len(found) == 0:
		s.mu.Lock()
		s.selectedID = ""
		s.text = ""
		s.mu.Unlock()
	case policy && len(found) == 0:
		_, _ = s.create(ctx, dir, true)
	case policy && !hasEmptyToday(entries, now) && !onlyWelcome(found):
		_, _ = s.create(ctx, dir, false)
	default:
		target := found[0]
		for _, f := range found {
			if f.entry.ID == prev {
				target = f
				break
			}
		}
		s.mu.Lock()
		s.selectedID = target.entry.ID
		s.text = target.content
		s.mu.Unlock()
	}

	s.log.Debug().Int("entries", len(found)).Str("root", dir.Root().Path).Msg("catalog reloaded")
	s.events.publish(Event{Type: EventEntriesChanged})
	return s.Entries(), nil
}

// scan lists dir and reads every entry in it, newest first.
func (s *Service) scan(ctx context.Context, dir *store.Dir) []scanned {
	refs, err := dir.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("root", dir.Root().Path).Msg("failed to list entries")
		return nil
	}

	found := make([]scanned, 0, len(refs))
	for _, ref := range refs {
		e, err := entry.FromFilename(ref.Name)
		if err != nil {
			s.log.Debug().Err(err).Str("file", ref.Name).Msg("skipping file")
			continue
		}
		content, err := dir.Load(ctx, ref.Name)
		if err != nil {
			s.log.Warn().Err(err).Str("file", ref.Name).Msg("skipping unreadable entry")
			continue
		}
		found = append(found, scanned{entry: e.WithContent(content), content: content})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].entry.Created.After(found[j].entry.Created)
	})
	return found
}

func hasEmptyToday(entries []entry.Entry, now time.Time) bool {
	for _, e := range entries {
		if e.EmptyOn(now) {
			return true
		}
	}
	return false
}

func onlyWelcome(found []scanned) bool {
	return len(found) == 1 && entry.IsWelcome(found[0].content)
}
