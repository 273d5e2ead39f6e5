// Package store holds journal entries on disk. Entries live as flat markdown
// files in one of two roots, a local directory or a cloud-synced one, and the
// Backend decides which is active.
package store

import (
	"context"
	"sync"
)

// Store routes file operations to whichever root is active when each
// operation starts.
type Store struct {
	backend *Backend
	coord   Coordinator

	mu   sync.Mutex
	dirs map[Root]*Dir
}

// New returns a Store over backend. coord brackets access to the cloud root;
// when nil a LockCoordinator is used.
func New(backend *Backend, coord Coordinator) *Store {
	if coord == nil {
		coord = NewLockCoordinator()
	}
	return &Store{
		backend: backend,
		coord:   coord,
		dirs:    make(map[Root]*Dir),
	}
}

func (s *Store) Backend() *Backend {
	return s.backend
}

// Dir returns the file store for root. Only the cloud root is coordinated.
func (s *Store) Dir(root Root) *Dir {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.dirs[root]; ok {
		return d
	}
	var coord Coordinator
	if root.Kind == Cloud {
		coord = s.coord
	}
	d := OpenDir(root, coord)
	s.dirs[root] = d
	return d
}

// Active returns the file store for the active root.
func (s *Store) Active() *Dir {
	return s.Dir(s.backend.Active())
}

func (s *Store) Save(ctx context.Context, name, content string) error {
	return s.Active().Save(ctx, name, content)
}

func (s *Store) Load(ctx context.Context, name string) (string, error) {
	return s.Active().Load(ctx, name)
}

func (s *Store) List(ctx context.Context) ([]FileRef, error) {
	return s.Active().List(ctx)
}

func (s *Store) Delete(ctx context.Context, name string) error {
	return s.Active().Delete(ctx, name)
}
