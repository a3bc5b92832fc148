package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockTimeout   = 3 * time.Second
	lockRetryWait = 100 * time.Millisecond
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileArea stores each key as <dir>/<key>.json.
// Access to a key is guarded by a <key>.json.lock file so that several
// processes sharing the directory do not interleave writes.
type FileArea struct {
	dir string
}

// NewFileArea creates the directory if needed
func NewFileArea(dir string) (*FileArea, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create area directory: %w", err)
	}
	return &FileArea{dir: dir}, nil
}

func (a *FileArea) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("kv: invalid key %q", key)
	}
	return filepath.Join(a.dir, key+".json"), nil
}

func (a *FileArea) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := a.path(key)
	if err != nil {
		return nil, err
	}

	lock := flock.New(path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := lock.TryRLockContext(lockCtx, lockRetryWait)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire file lock")
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (a *FileArea) Put(ctx context.Context, key string, value []byte) error {
	path, err := a.path(key)
	if err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, lockRetryWait)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire file lock")
	}
	defer func() { _ = lock.Unlock() }()

	// Write to a temp file and rename so readers never see a partial value
	tmp, err := os.CreateTemp(a.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}
