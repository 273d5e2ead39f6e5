package app

import (
	"context"
	"fmt"

	"tableflip.dev/freewrite/pkg/store"
)

// SyncState is a snapshot of cloud sync status.
type SyncState struct {
	CloudAvailable bool   `json:"cloudAvailable"`
	UsingCloud     bool   `json:"usingCloud"`
	Syncing        bool   `json:"syncing"`
	LastError      string `json:"lastError,omitempty"`
	ActiveRoot     string `json:"activeRoot"`
	CloudRoot      string `json:"cloudRoot,omitempty"`
	LocalRoot      string `json:"localRoot"`
}

// SyncState returns the current sync status.
func (s *Service) SyncState() SyncState {
	s.mu.Lock()
	st := SyncState{Syncing: s.syncing, LastError: s.lastSyncErr}
	s.mu.Unlock()

	if s.backend != nil {
		st.CloudAvailable = s.backend.CloudAvailable()
		st.UsingCloud = s.backend.UsingCloud()
		st.ActiveRoot = s.backend.Active().Path
		st.LocalRoot = s.backend.LocalRoot().Path
		if cloud, ok := s.backend.CloudRoot(); ok {
			st.CloudRoot = cloud.Path
		}
	}
	return st
}

// RecordSyncError keeps err as the last sync error. A nil err clears it.
func (s *Service) RecordSyncError(err error) {
	s.mu.Lock()
	if err == nil {
		s.lastSyncErr = ""
	} else {
		s.lastSyncErr = err.Error()
	}
	s.mu.Unlock()
	s.events.publish(Event{Type: EventSyncStateChanged})
}

// SetCloudSync moves entries to (enable) or from the cloud root and then
// makes that root active. The active root flips even when some files failed
// to copy; those failures are kept as the last sync error and returned as a
// *store.MigrationError. When the source root cannot be listed nothing is
// copied and the active root stays put. The catalog is reloaded afterwards.
func (s *Service) SetCloudSync(ctx context.Context, enable bool) (store.Report, error) {
	if s.store == nil || s.backend == nil {
		return store.Report{}, errNoStore
	}
	cloud, ok := s.backend.CloudRoot()
	if !ok {
		err := fmt.Errorf("cloud directory not set up: %w", store.ErrCloudUnavailable)
		s.RecordSyncError(err)
		return store.Report{}, err
	}

	from, to, target := s.backend.LocalRoot(), cloud, store.Cloud
	if !enable {
		from, to, target = cloud, s.backend.LocalRoot(), store.Local
	}

	s.setSyncing(true)
	report, err := store.Migrate(ctx, s.store.Dir(from), s.store.Dir(to), store.MigrateOptions{
		Concurrency: s.concurrency,
		Log:         s.log,
	})
	if err != nil {
		err = fmt.Errorf("accessing %s files: %w", from.Kind, err)
		s.mu.Lock()
		s.syncing = false
		s.lastSyncErr = err.Error()
		s.mu.Unlock()
		s.events.publish(Event{Type: EventSyncStateChanged})
		return report, err
	}

	flipErr := s.backend.SetActive(target)
	migErr := report.Err()

	s.mu.Lock()
	s.syncing = false
	switch {
	case migErr != nil:
		s.lastSyncErr = migErr.Error()
	case flipErr != nil:
		s.lastSyncErr = flipErr.Error()
	default:
		s.lastSyncErr = ""
	}
	s.mu.Unlock()
	s.events.publish(Event{Type: EventSyncStateChanged})

	s.log.Info().Stringer("root", target).Bool("enabled", enable).Msg("cloud sync toggled")
	if _, err := s.Reload(ctx); err != nil {
		return report, err
	}

	if migErr != nil {
		return report, migErr
	}
	return report, flipErr
}

func (s *Service) setSyncing(on bool) {
	s.mu.Lock()
	s.syncing = on
	s.mu.Unlock()
	s.events.publish(Event{Type: EventSyncStateChanged})
}
