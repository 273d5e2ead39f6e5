package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/freewrite/pkg/entry"
)

// tempDirName holds in-flight writes before they are renamed into place.
const tempDirName = ".tmp"

var errBadFilename = errors.New("filename must be a plain file name")

// FileRef is one file found by Dir.List.
type FileRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Dir is the file store for a single root. Every write lands in a temp file
// first and is renamed into place, so readers never see a partial file. When
// a Coordinator is set every access is bracketed by it.
type Dir struct {
	root  Root
	d     *diskv.Diskv
	coord Coordinator
}

// OpenDir opens a file store over root. coord may be nil.
func OpenDir(root Root, coord Coordinator) *Dir {
	return &Dir{
		root: root,
		d: diskv.New(diskv.Options{
			BasePath:          root.Path,
			AdvancedTransform: flatTransform,
			InverseTransform:  flatInverseTransform,
			TempDir:           filepath.Join(root.Path, tempDirName),
			// Files change underneath us when a sync daemon delivers them,
			// so nothing is cached.
			CacheSizeMax: 0,
			FilePerm:     0o644,
			PathPerm:     0o755,
		}),
		coord: coord,
	}
}

func (d *Dir) Root() Root {
	return d.root
}

// Path returns the absolute path of name inside the root.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.root.Path, name)
}

// Save atomically replaces name with content.
func (d *Dir) Save(ctx context.Context, name, content string) error {
	if err := checkName(name); err != nil {
		return &IOError{Op: "save", Filename: name, Kind: ErrWriteFailure, Err: err}
	}
	err := d.write(ctx, name, func() error {
		return d.d.WriteString(name, content)
	})
	if err != nil {
		return &IOError{Op: "save", Filename: name, Kind: ErrWriteFailure, Err: err}
	}
	return nil
}

// Load returns the content of name.
func (d *Dir) Load(ctx context.Context, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", &IOError{Op: "load", Filename: name, Kind: ErrReadFailure, Err: err}
	}
	var b []byte
	err := d.read(ctx, name, func() error {
		var err error
		b, err = d.d.Read(name)
		return err
	})
	if err != nil {
		kind := ErrReadFailure
		if errors.Is(err, fs.ErrNotExist) {
			kind = ErrNotFound
		}
		return "", &IOError{Op: "load", Filename: name, Kind: kind, Err: err}
	}
	return string(b), nil
}

// Delete removes name.
func (d *Dir) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return &IOError{Op: "delete", Filename: name, Kind: ErrWriteFailure, Err: err}
	}
	err := d.write(ctx, name, func() error {
		return d.d.Erase(name)
	})
	if err != nil {
		kind := ErrWriteFailure
		if errors.Is(err, fs.ErrNotExist) {
			kind = ErrNotFound
		}
		return &IOError{Op: "delete", Filename: name, Kind: kind, Err: err}
	}
	return nil
}

// Has reports whether name exists in the root.
func (d *Dir) Has(name string) bool {
	return checkName(name) == nil && d.d.Has(name)
}

// List returns every top-level markdown file in the root, sorted by name.
// Subdirectories and other files are ignored.
func (d *Dir) List(ctx context.Context) ([]FileRef, error) {
	var refs []FileRef
	err := d.read(ctx, d.root.Path, func() error {
		// Keys swallows walk errors, so check the root ourselves.
		fi, err := os.Stat(d.root.Path)
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return fmt.Errorf("%s is not a directory", d.root.Path)
		}

		cancel := make(chan struct{})
		defer close(cancel)
		for key := range d.d.Keys(cancel) {
			if strings.Contains(key, "/") || !strings.HasSuffix(key, entry.Extension) {
				continue
			}
			refs = append(refs, FileRef{Name: key, Path: d.Path(key)})
		}
		return ctx.Err()
	})
	if err != nil {
		return nil, &IOError{Op: "list", Filename: d.root.Path, Kind: ErrReadFailure, Err: err}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// copyFrom copies name from src into d without touching the source.
func (d *Dir) copyFrom(ctx context.Context, src *Dir, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	return src.read(ctx, name, func() error {
		return d.write(ctx, name, func() error {
			return d.d.Import(src.Path(name), name, false)
		})
	})
}

func (d *Dir) read(ctx context.Context, name string, fn func() error) error {
	if d.coord == nil {
		return fn()
	}
	return d.coord.CoordinateRead(ctx, d.coordPath(name), fn)
}

func (d *Dir) write(ctx context.Context, name string, fn func() error) error {
	if d.coord == nil {
		return fn()
	}
	return d.coord.CoordinateWrite(ctx, d.coordPath(name), fn)
}

func (d *Dir) coordPath(name string) string {
	if name == d.root.Path {
		return name
	}
	return d.Path(name)
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errBadFilename
	}
	return nil
}

// Entry files live flat in the root, so keys map directly to file names.
func flatTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func flatInverseTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}
