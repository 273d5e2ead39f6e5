package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the storage roots and tunes sync behaviour.
type Config interface {
	LocalPath() string
	CloudContainer() string
	CloudSubdir() string
	PrefsPath() string
	MigrateConcurrency() int
	WatchThrottle() time.Duration
	WatchDelay() time.Duration
}

// ConfigPathEnv overrides where the config file is searched for.
const ConfigPathEnv = "FREEWRITE_CONFIG_PATH"

// LoadConfig reads .freewrite.yaml (if any) layered under FREEWRITE_*
// environment variables and the built-in defaults.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("local.path", "~/Documents/Freewrite")
	v.SetDefault("cloud.container", "")
	v.SetDefault("cloud.subdir", filepath.Join("Documents", "Freewrite"))
	v.SetDefault("prefs.path", "~/.config/freewrite/prefs")
	v.SetDefault("migrate.concurrency", 8)
	v.SetDefault("watch.throttle", time.Second)
	v.SetDefault("watch.delay", 500*time.Millisecond)

	v.SetConfigName(".freewrite") // .yaml is implicit
	v.SetEnvPrefix("FREEWRITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "freewrite"))
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	s := Settings{
		Local:       v.GetString("local.path"),
		Container:   v.GetString("cloud.container"),
		Subdir:      v.GetString("cloud.subdir"),
		Prefs:       v.GetString("prefs.path"),
		Concurrency: v.GetInt("migrate.concurrency"),
		Throttle:    v.GetDuration("watch.throttle"),
		Delay:       v.GetDuration("watch.delay"),
		File:        v.ConfigFileUsed(),
	}
	s, err := s.expand()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Settings is the concrete Config. Tests build one directly.
type Settings struct {
	Local       string        `json:"local"`
	Container   string        `json:"cloudContainer,omitempty"`
	Subdir      string        `json:"cloudSubdir"`
	Prefs       string        `json:"prefs"`
	Concurrency int           `json:"migrateConcurrency"`
	Throttle    time.Duration `json:"watchThrottle"`
	Delay       time.Duration `json:"watchDelay"`

	// File is the config file that was read, if any.
	File string `json:"file,omitempty"`
}

func (s Settings) expand() (Settings, error) {
	var err error
	for _, p := range []*string{&s.Local, &s.Container, &s.Prefs} {
		if *p == "" {
			continue
		}
		if *p, err = homedir.Expand(*p); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (s Settings) LocalPath() string { return s.Local }
func (s Settings) CloudContainer() string { return s.Container }
func (s Settings) CloudSubdir() string { return s.Subdir }
func (s Settings) PrefsPath() string { return s.Prefs }

func (s Settings) MigrateConcurrency() int {
	if s.Concurrency <= 0 {
		return 1
	}
	return s.Concurrency
}

func (s Settings) WatchThrottle() time.Duration { return s.Throttle }
func (s Settings) WatchDelay() time.Duration { return s.Delay }
