package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"podium/internal/runlock"
)

func TestAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "podium.lock")

	lock := runlock.New(path)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	second := runlock.New(path)
	if err := second.Acquire(); !errors.Is(err, runlock.ErrHeld) {
		t.Fatalf("expected ErrHeld, got %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := second.Acquire(); err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	_ = second.Release()
}

func TestAcquireCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "podium.lock")
	lock := runlock.New(path)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	_ = lock.Release()
}
