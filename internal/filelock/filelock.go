// Package filelock serializes access to the history database across
// concurrent duscan invocations using an advisory file lock.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock is an advisory exclusive lock on a file path.
type Lock struct {
	fl   *flock.Flock
	path string
}

// New creates a lock for the given path, creating the parent directory if
// needed. The lock file itself is created on first acquisition.
func New(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	return &Lock{fl: flock.New(path), path: path}, nil
}

// Acquire blocks until the exclusive lock is held.
func (l *Lock) Acquire() error {
	if err := l.fl.Lock(); err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	return nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}

// WithLock runs fn while holding the exclusive lock on path.
func WithLock(path string, fn func() error) error {
	l, err := New(path)
	if err != nil {
		return err
	}
	if err := l.Acquire(); err != nil {
		return err
	}
	defer l.Release()
	return fn()
}
