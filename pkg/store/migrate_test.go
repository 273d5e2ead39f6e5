package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestMigrateCopiesAndSkips(t *testing.T) {
	ctx := context.Background()
	from := OpenDir(Root{Kind: Local, Path: t.TempDir()}, nil)
	to := OpenDir(Root{Kind: Cloud, Path: t.TempDir()}, NewLockCoordinator())

	for name, content := range map[string]string{"a.md": "alpha", "b.md": "bravo", "c.md": "charlie"} {
		if err := from.Save(ctx, name, content); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	// Already present at the destination: must be left alone.
	if err := to.Save(ctx, "b.md", "remote"); err != nil {
		t.Fatal(err)
	}

	report, err := Migrate(ctx, from, to, MigrateOptions{Concurrency: 2, Log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if report.Err() != nil {
		t.Fatalf("unexpected failures: %v", report.Err())
	}
	if len(report.Succeeded) != 2 || report.Succeeded[0] != "a.md" || report.Succeeded[1] != "c.md" {
		t.Fatalf("unexpected succeeded %v", report.Succeeded)
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != "b.md" {
		t.Fatalf("unexpected skipped %v", report.Skipped)
	}

	if got, _ := to.Load(ctx, "b.md"); got != "remote" {
		t.Fatalf("expected existing destination file preserved, got %q", got)
	}
	if got, _ := to.Load(ctx, "a.md"); got != "alpha" {
		t.Fatalf("expected copied content, got %q", got)
	}
	// Source untouched.
	if got, _ := from.Load(ctx, "a.md"); got != "alpha" {
		t.Fatalf("expected source preserved, got %q", got)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	ctx := context.Background()
	from := OpenDir(Root{Kind: Local, Path: t.TempDir()}, nil)
	to := OpenDir(Root{Kind: Cloud, Path: t.TempDir()}, NewLockCoordinator())

	for name, content := range map[string]string{"a.md": "alpha", "b.md": ""} {
		if err := from.Save(ctx, name, content); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	opts := MigrateOptions{Concurrency: 2, Log: zerolog.Nop()}

	if _, err := Migrate(ctx, from, to, opts); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	before, err := to.List(ctx)
	if err != nil {
		t.Fatal(err)
	}

	report, err := Migrate(ctx, from, to, opts)
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if len(report.Succeeded) != 0 || len(report.Failed) != 0 {
		t.Fatalf("expected nothing copied on second run, got %+v", report)
	}
	if len(report.Skipped) != 2 {
		t.Fatalf("expected both files skipped, got %v", report.Skipped)
	}

	after, err := to.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Fatalf("expected destination unchanged, had %v now %v", before, after)
	}
	for i := range after {
		if after[i] != before[i] {
			t.Fatalf("expected destination unchanged, had %v now %v", before, after)
		}
	}
	if got, _ := to.Load(ctx, "a.md"); got != "alpha" {
		t.Fatalf("expected content preserved, got %q", got)
	}
}

func TestMigrateCollectsFailures(t *testing.T) {
	ctx := context.Background()
	from := OpenDir(Root{Kind: Local, Path: t.TempDir()}, nil)
	toPath := t.TempDir()
	to := OpenDir(Root{Kind: Cloud, Path: toPath}, nil)

	for _, name := range []string{"a.md", "b.md"} {
		if err := from.Save(ctx, name, name); err != nil {
			t.Fatal(err)
		}
	}
	// A plain file squatting on the temp dir path makes every write fail.
	if err := os.WriteFile(filepath.Join(toPath, tempDirName), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := Migrate(ctx, from, to, MigrateOptions{Concurrency: 4})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if len(report.Failed) != 2 {
		t.Fatalf("expected both files to fail, got %+v", report)
	}
	if !errors.Is(report.Err(), ErrPartialMigration) {
		t.Fatalf("expected ErrPartialMigration, got %v", report.Err())
	}
}

func TestMigrateListFailure(t *testing.T) {
	from := OpenDir(Root{Kind: Local, Path: filepath.Join(t.TempDir(), "missing")}, nil)
	to := OpenDir(Root{Kind: Cloud, Path: t.TempDir()}, nil)

	report, err := Migrate(context.Background(), from, to, MigrateOptions{})
	if !errors.Is(err, ErrReadFailure) {
		t.Fatalf("expected ErrReadFailure, got %v", err)
	}
	if len(report.Succeeded)+len(report.Failed)+len(report.Skipped) != 0 {
		t.Fatalf("expected nothing attempted, got %+v", report)
	}
}
