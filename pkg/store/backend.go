package store

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
)

// Kind names a storage root.
type Kind int

const (
	Local Kind = iota
	Cloud
)

func (k Kind) String() string {
	switch k {
	case Cloud:
		return "cloud"
	default:
		return "local"
	}
}

// Root is a directory that holds entry files.
type Root struct {
	Kind Kind   `json:"kind"`
	Path string `json:"path"`
}

// CloudLocator finds the cloud container, the directory a sync daemon keeps
// mirrored. It returns ErrCloudUnavailable when there is none.
type CloudLocator interface {
	Container() (string, error)
}

// DirLocator treats an existing directory as the cloud container. With an
// empty Path it probes the platform default.
type DirLocator struct {
	Path string
}

func (l DirLocator) Container() (string, error) {
	path := l.Path
	if path == "" {
		path = defaultContainer()
	}
	if path == "" {
		return "", ErrCloudUnavailable
	}
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return "", ErrCloudUnavailable
	}
	return path, nil
}

func defaultContainer() string {
	if runtime.GOOS != "darwin" {
		return ""
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Mobile Documents", "com~apple~CloudDocs")
}

// Backend decides which root is active. It reads the cloud-sync preference
// once at construction and falls back to Local whenever the cloud root cannot
// be resolved.
type Backend struct {
	mu             sync.RWMutex
	local          Root
	cloud          Root
	cloudAvailable bool
	useCloud       bool

	subdir  string
	locator CloudLocator
	prefs   *Preferences
	log     zerolog.Logger
}

// NewBackend ensures the local root exists and resolves the cloud root. A
// cloud resolution problem is not fatal: it is logged and returned through
// Resolve so callers can surface it as the last sync error.
func NewBackend(cfg Config, locator CloudLocator, prefs *Preferences, log zerolog.Logger) (*Backend, error) {
	local := cfg.LocalPath()
	if err := os.MkdirAll(local, 0o755); err != nil {
		return nil, &IOError{Op: "create local root", Filename: local, Kind: ErrWriteFailure, Err: err}
	}
	if locator == nil {
		locator = DirLocator{Path: cfg.CloudContainer()}
	}
	b := &Backend{
		local:   Root{Kind: Local, Path: local},
		subdir:  cfg.CloudSubdir(),
		locator: locator,
		prefs:   prefs,
		log:     log,
	}
	if prefs != nil {
		b.useCloud = prefs.UseCloudSync()
	}
	return b, nil
}

// Resolve (re)checks the cloud container and creates the entry directory
// inside it. On any failure the cloud is marked unavailable and the
// preference is forced off.
func (b *Backend) Resolve() error {
	container, err := b.locator.Container()
	var root Root
	if err == nil {
		root = Root{Kind: Cloud, Path: filepath.Join(container, b.subdir)}
		if mkErr := os.MkdirAll(root.Path, 0o755); mkErr != nil {
			err = &IOError{Op: "create cloud root", Filename: root.Path, Kind: ErrCloudUnavailable, Err: mkErr}
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.cloud = Root{}
		b.cloudAvailable = false
		if b.useCloud {
			b.log.Warn().Err(err).Msg("cloud storage unavailable, using local storage")
			b.useCloud = false
			b.persistLocked()
		}
		return err
	}
	b.cloud = root
	b.cloudAvailable = true
	b.log.Debug().Str("path", root.Path).Msg("cloud storage resolved")
	return nil
}

// Active returns a snapshot of the root operations should use.
func (b *Backend) Active() Root {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.useCloud && b.cloudAvailable {
		return b.cloud
	}
	return b.local
}

func (b *Backend) LocalRoot() Root {
	return b.local
}

// CloudRoot returns the cloud root and whether it is available.
func (b *Backend) CloudRoot() (Root, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cloud, b.cloudAvailable
}

func (b *Backend) CloudAvailable() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cloudAvailable
}

// UsingCloud reports whether Cloud is the active root.
func (b *Backend) UsingCloud() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.useCloud && b.cloudAvailable
}

// SetActive switches the active root and persists the choice.
func (b *Backend) SetActive(k Kind) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if k == Cloud && !b.cloudAvailable {
		return ErrCloudUnavailable
	}
	b.useCloud = k == Cloud
	return b.persistLocked()
}

func (b *Backend) persistLocked() error {
	if b.prefs == nil {
		return nil
	}
	if err := b.prefs.SetUseCloudSync(b.useCloud); err != nil {
		b.log.Error().Err(err).Msg("failed to persist cloud sync preference")
		return err
	}
	return nil
}
