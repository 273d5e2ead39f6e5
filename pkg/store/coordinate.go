package store

import (
	"context"
	"sync"
)

// Coordinator brackets file access on a root that another process (a sync
// daemon, say) may touch at the same time. Reads may run alongside each
// other; a write excludes everything else on the same path.
type Coordinator interface {
	CoordinateRead(ctx context.Context, path string, fn func() error) error
	CoordinateWrite(ctx context.Context, path string, fn func() error) error
}

// LockCoordinator coordinates access within this process using one
// read/write lock per path.
type LockCoordinator struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	sync.RWMutex
	refs int
}

// NewLockCoordinator returns an empty LockCoordinator.
func NewLockCoordinator() *LockCoordinator {
	return &LockCoordinator{locks: make(map[string]*pathLock)}
}

func (c *LockCoordinator) CoordinateRead(ctx context.Context, path string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := c.acquire(path)
	defer c.release(path)
	l.RLock()
	defer l.RUnlock()
	return fn()
}

func (c *LockCoordinator) CoordinateWrite(ctx context.Context, path string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := c.acquire(path)
	defer c.release(path)
	l.Lock()
	defer l.Unlock()
	return fn()
}

func (c *LockCoordinator) acquire(path string) *pathLock {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[path]
	if !ok {
		l = &pathLock{}
		c.locks[path] = l
	}
	l.refs++
	return l
}

func (c *LockCoordinator) release(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l := c.locks[path]
	l.refs--
	if l.refs == 0 {
		delete(c.locks, path)
	}
}
