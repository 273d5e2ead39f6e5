package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/store"
)

// Info reports where configuration, preferences and entries live.
type Info struct {
	Config  store.Config
	Prefs   *store.Preferences
	Catalog *app.Service

	Out io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	file := "none (defaults)"
	if s, ok := n.Config.(store.Settings); ok && s.File != "" {
		file = s.File
	}

	pp := printers.PrettyPrint{Out: out}
	pp.KeyValues("Config", map[string]string{
		"file":                file,
		"local.path":          n.Config.LocalPath(),
		"cloud.container":     n.Config.CloudContainer(),
		"cloud.subdir":        n.Config.CloudSubdir(),
		"prefs.path":          n.Config.PrefsPath(),
		"migrate.concurrency": strconv.Itoa(n.Config.MigrateConcurrency()),
		"watch.throttle":      n.Config.WatchThrottle().String(),
		"watch.delay":         n.Config.WatchDelay().String(),
	})

	if n.Prefs != nil {
		pp.KeyValues("Preferences", n.Prefs.All())
	}

	if n.Catalog == nil {
		return fmt.Errorf("failed to open the entry catalog")
	}
	pp.SyncState(n.Catalog.SyncState())
	pp.TitleWithCount("Catalog", len(n.Catalog.Entries()))
	return nil
}
