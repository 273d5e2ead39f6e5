package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a named entry file does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrReadFailure covers any failure to list or read a root.
	ErrReadFailure = errors.New("store: read failure")

	// ErrWriteFailure covers any failure to write or delete a file.
	ErrWriteFailure = errors.New("store: write failure")

	// ErrCloudUnavailable is returned when the cloud root cannot be resolved.
	ErrCloudUnavailable = errors.New("store: cloud storage unavailable")

	// ErrPartialMigration is matched by a MigrationError.
	ErrPartialMigration = errors.New("store: some files failed to migrate")
)

// IOError describes a failed file operation. It matches both its Kind (one of
// the sentinels above) and the underlying cause with errors.Is.
type IOError struct {
	Op       string
	Filename string
	Kind     error
	Err      error
}

func (e *IOError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Filename, e.Err)
}

func (e *IOError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// MigrationError reports the files a migration could not copy.
type MigrationError struct {
	From   Kind
	To     Kind
	Failed []string
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("store: failed to migrate %d files from %s to %s", len(e.Failed), e.From, e.To)
}

func (e *MigrationError) Is(target error) bool {
	return target == ErrPartialMigration
}
