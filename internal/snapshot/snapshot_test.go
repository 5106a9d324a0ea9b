package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestAcquireCopiesContent(t *testing.T) {
	origin := writeTempFile(t, "History.db", "sqlite payload")

	snap, err := Acquire(origin)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer snap.Release()

	if snap.Path == origin {
		t.Fatal("expected snapshot path to differ from origin")
	}
	if snap.Origin != origin {
		t.Errorf("expected Origin %s, got %s", origin, snap.Origin)
	}
	if snap.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if filepath.Ext(snap.Path) != ".db" {
		t.Errorf("expected snapshot to keep .db extension, got %s", snap.Path)
	}

	data, err := os.ReadFile(snap.Path)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if string(data) != "sqlite payload" {
		t.Errorf("expected copied content %q, got %q", "sqlite payload", string(data))
	}
}

func TestAcquireMissingFile(t *testing.T) {
	_, err := Acquire(filepath.Join(t.TempDir(), "nope.db"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAcquireDirectory(t *testing.T) {
	_, err := Acquire(t.TempDir())
	if err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestReleaseRemovesCopy(t *testing.T) {
	origin := writeTempFile(t, "wtmp", "records")

	snap, err := Acquire(origin)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	snap.Release()
	if _, err := os.Stat(snap.Path); !os.IsNotExist(err) {
		t.Errorf("expected snapshot to be removed, stat returned %v", err)
	}

	// Second release must be a no-op.
	snap.Release()

	if _, err := os.Stat(origin); err != nil {
		t.Errorf("expected origin to survive release, stat returned %v", err)
	}
}

func TestSnapshotIsolatedFromOrigin(t *testing.T) {
	origin := writeTempFile(t, "places.sqlite", "before")

	snap, err := Acquire(origin)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer snap.Release()

	if err := os.WriteFile(origin, []byte("after"), 0644); err != nil {
		t.Fatalf("failed to rewrite origin: %v", err)
	}

	data, err := os.ReadFile(snap.Path)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if string(data) != "before" {
		t.Errorf("expected snapshot content %q, got %q", "before", string(data))
	}
}

func TestWithReleasesOnError(t *testing.T) {
	origin := writeTempFile(t, "History", "payload")
	boom := errors.New("consumer failed")

	var copied string
	err := With(origin, func(s *Snapshot) error {
		copied = s.Path
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected consumer error, got %v", err)
	}
	if _, err := os.Stat(copied); !os.IsNotExist(err) {
		t.Errorf("expected snapshot removed after failing consumer, stat returned %v", err)
	}
}

func TestWithMissingSource(t *testing.T) {
	called := false
	err := With(filepath.Join(t.TempDir(), "gone"), func(s *Snapshot) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if called {
		t.Error("expected consumer not to run when acquire fails")
	}
}
