package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/muesli/termenv"
	"github.com/peterbourgon/diskv/v3"
)

// Preference keys.
const (
	PrefUseCloudSync = "useCloudSync"
	PrefColorScheme  = "colorScheme"
	PrefSelectedFont = "selectedFont"
	PrefFontSize     = "fontSize"
)

const (
	SchemeLight = "light"
	SchemeDark  = "dark"

	DefaultFont     = "Lato-Regular"
	DefaultFontSize = 18
)

// FontSizes is the cycle followed by CycleFontSize.
var FontSizes = []int{16, 18, 20, 22, 24, 26}

// PrefKeys lists every known preference in display order.
var PrefKeys = []string{PrefUseCloudSync, PrefColorScheme, PrefSelectedFont, PrefFontSize}

// Preferences is a small persistent key/value store, one file per key.
type Preferences struct {
	d *diskv.Diskv

	// DefaultScheme supplies the colour scheme until one has been chosen.
	DefaultScheme func() string
}

// OpenPreferences opens (creating if needed) the preferences directory.
func OpenPreferences(path string) (*Preferences, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, &IOError{Op: "open preferences", Filename: path, Kind: ErrWriteFailure, Err: err}
	}
	return &Preferences{
		d: diskv.New(diskv.Options{
			BasePath:          path,
			AdvancedTransform: flatTransform,
			InverseTransform:  flatInverseTransform,
			TempDir:           filepath.Join(path, tempDirName),
			CacheSizeMax:      64 * 1024,
			FilePerm:          0o644,
			PathPerm:          0o755,
		}),
		DefaultScheme: terminalScheme,
	}, nil
}

func terminalScheme() string {
	if termenv.HasDarkBackground() {
		return SchemeDark
	}
	return SchemeLight
}

// Get returns the stored value for key.
func (p *Preferences) Get(key string) (string, bool) {
	b, err := p.d.Read(key)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Set stores value under key.
func (p *Preferences) Set(key, value string) error {
	if err := p.d.WriteString(key, value); err != nil {
		return &IOError{Op: "write preference", Filename: key, Kind: ErrWriteFailure, Err: err}
	}
	return nil
}

// Unset removes key. Removing a missing key is not an error.
func (p *Preferences) Unset(key string) error {
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "erase preference", Filename: key, Kind: ErrWriteFailure, Err: err}
	}
	return nil
}

// All returns every known preference with defaults filled in.
func (p *Preferences) All() map[string]string {
	return map[string]string{
		PrefUseCloudSync: strconv.FormatBool(p.UseCloudSync()),
		PrefColorScheme:  p.ColorScheme(),
		PrefSelectedFont: p.SelectedFont(),
		PrefFontSize:     strconv.Itoa(p.FontSize()),
	}
}

func (p *Preferences) UseCloudSync() bool {
	v, ok := p.Get(PrefUseCloudSync)
	if !ok {
		return false
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func (p *Preferences) SetUseCloudSync(on bool) error {
	return p.Set(PrefUseCloudSync, strconv.FormatBool(on))
}

func (p *Preferences) ColorScheme() string {
	if v, ok := p.Get(PrefColorScheme); ok && (v == SchemeLight || v == SchemeDark) {
		return v
	}
	if p.DefaultScheme != nil {
		return p.DefaultScheme()
	}
	return SchemeLight
}

// ToggleTheme flips between light and dark and returns the new scheme.
func (p *Preferences) ToggleTheme() (string, error) {
	next := SchemeDark
	if p.ColorScheme() == SchemeDark {
		next = SchemeLight
	}
	return next, p.Set(PrefColorScheme, next)
}

func (p *Preferences) SelectedFont() string {
	if v, ok := p.Get(PrefSelectedFont); ok && v != "" {
		return v
	}
	return DefaultFont
}

func (p *Preferences) FontSize() int {
	v, ok := p.Get(PrefFontSize)
	if !ok {
		return DefaultFontSize
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return DefaultFontSize
	}
	return n
}

// CycleFontSize advances to the next size in FontSizes, wrapping around. A
// size outside the cycle is left alone.
func (p *Preferences) CycleFontSize() (int, error) {
	cur := p.FontSize()
	for i, s := range FontSizes {
		if s == cur {
			next := FontSizes[(i+1)%len(FontSizes)]
			return next, p.Set(PrefFontSize, strconv.Itoa(next))
		}
	}
	return cur, nil
}
