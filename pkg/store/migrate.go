package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Report summarises one migration.
type Report struct {
	From      Root     `json:"from"`
	To        Root     `json:"to"`
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
	Skipped   []string `json:"skipped"`
}

// Err returns a *MigrationError when any file failed.
func (r Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return &MigrationError{From: r.From.Kind, To: r.To.Kind, Failed: r.Failed}
}

// MigrateOptions tunes Migrate.
type MigrateOptions struct {
	// Concurrency bounds the number of copies in flight. Zero means one.
	Concurrency int
	Log         zerolog.Logger
}

// Migrate copies every entry file from one root to another. Files already
// present at the destination are skipped and never overwritten; the source
// is never modified. Per-file failures are collected in the report rather
// than stopping the batch. The returned error is non-nil only when the
// source could not be listed, in which case nothing was attempted.
func Migrate(ctx context.Context, from, to *Dir, opts MigrateOptions) (Report, error) {
	report := Report{From: from.Root(), To: to.Root()}

	refs, err := from.List(ctx)
	if err != nil {
		return report, err
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 1
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(limit)

	for _, ref := range refs {
		name := ref.Name
		if to.Has(name) {
			report.Skipped = append(report.Skipped, name)
			continue
		}
		g.Go(func() error {
			err := to.copyFrom(ctx, from, name)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				opts.Log.Error().Err(err).Str("file", name).
					Stringer("from", from.Root().Kind).Stringer("to", to.Root().Kind).
					Msg("failed to migrate file")
				report.Failed = append(report.Failed, name)
				return nil
			}
			report.Succeeded = append(report.Succeeded, name)
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(report.Succeeded)
	sort.Strings(report.Failed)

	opts.Log.Info().
		Int("succeeded", len(report.Succeeded)).
		Int("failed", len(report.Failed)).
		Int("skipped", len(report.Skipped)).
		Stringer("from", from.Root().Kind).Stringer("to", to.Root().Kind).
		Msg("migration finished")
	return report, nil
}
