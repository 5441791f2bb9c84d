// Package runlock enforces single-instance scrape execution with a
// filesystem lock, so overlapping cron invocations cannot race on the feed
// database.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld reports that another podium process already holds the lock.
var ErrHeld = errors.New("another podium instance is already running")

// Lock guards a single scrape run.
type Lock struct {
	path  string
	flock *flock.Flock
}

// New prepares a lock at path without acquiring it.
func New(path string) *Lock {
	return &Lock{path: path, flock: flock.New(path)}
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock, failing immediately with ErrHeld when another
// process owns it.
func (l *Lock) Acquire() error {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create lock directory: %w", err)
		}
	}
	ok, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrHeld
	}
	return nil
}

// Release gives the lock back. Safe to call when not held.
func (l *Lock) Release() error {
	return l.flock.Unlock()
}
