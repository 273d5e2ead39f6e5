package app

import (
	"context"
)

// StartWatching reloads the catalog whenever the cloud root changes on disk,
// for instance when a sync daemon delivers an entry written elsewhere. It
// does nothing without a watcher or an available cloud root, and stops when
// ctx is done or StopWatching is called.
func (s *Service) StartWatching(ctx context.Context) error {
	if s.watcher == nil || s.backend == nil {
		return nil
	}
	cloud, ok := s.backend.CloudRoot()
	if !ok {
		return nil
	}

	err := s.watcher.Start(cloud.Path, func() {
		s.log.Debug().Str("root", cloud.Path).Msg("external change, reloading")
		if _, err := s.Reload(ctx); err != nil {
			s.log.Error().Err(err).Msg("reload after external change failed")
		}
	})
	if err != nil {
		return err
	}

	stop, exited := make(chan struct{}), make(chan struct{})
	s.mu.Lock()
	s.watchStop, s.watchExited = stop, exited
	s.mu.Unlock()

	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			_ = s.StopWatching()
		case <-stop:
		}
	}()
	return nil
}

// StopWatching stops the change watcher.
func (s *Service) StopWatching() error {
	if s.watcher == nil {
		return nil
	}
	s.mu.Lock()
	stop := s.watchStop
	s.watchStop = nil
	s.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	return s.watcher.Stop()
}
