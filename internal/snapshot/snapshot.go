// Package snapshot copies live artifacts into disposable temporary
// files so extraction never touches a store that another process may
// hold locked or be writing to.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is a temporary copy of a source file. The caller owns the
// copy and must call Release when done with it.
type Snapshot struct {
	Path      string
	Origin    string
	CreatedAt time.Time

	released bool
}

// Acquire copies the regular file at path into a fresh temporary file,
// keeping the origin's extension so drivers that sniff suffixes still
// work. Any failure leaves no temp file behind.
func Acquire(path string) (*Snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("snapshot %s: not a regular file", path)
	}

	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "lastseen-*"+filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("copy %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close snapshot: %w", err)
	}

	return &Snapshot{
		Path:      tmp.Name(),
		Origin:    path,
		CreatedAt: time.Now(),
	}, nil
}

// Release removes the temporary copy. Safe to call more than once.
// Removal errors are swallowed; the copy is disposable and sits in the
// system temp directory.
func (s *Snapshot) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	os.Remove(s.Path)
}

// With acquires a snapshot of path, passes it to fn and releases it
// afterwards, whether or not fn succeeds.
func With(path string, fn func(*Snapshot) error) error {
	s, err := Acquire(path)
	if err != nil {
		return err
	}
	defer s.Release()
	return fn(s)
}
