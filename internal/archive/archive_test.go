package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cdtdelta/lastseen/internal/model"
)

func tempArchivePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "archive.db")
}

func createTestArchive(t *testing.T) Store {
	t.Helper()
	s, err := CreateSQLite(tempArchivePath(t))
	if err != nil {
		t.Fatalf("failed to create test archive: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []model.Record {
	return []model.Record{
		{
			Timestamp: time.Unix(1700000000, 0),
			Category:  model.Login,
			Primary:   "2023-11-14 22:13:20 Login: alice",
			Secondary: "pts/0",
			Origin:    "/var/log/wtmp",
		},
		{
			Category: model.RecentFile,
			Primary:  "notes.odt",
			Origin:   "/home/alice/.local/share/RecentDocuments",
		},
		{
			Timestamp: time.Unix(1700000100, 0),
			Category:  model.BrowserVisit("chromium"),
			Primary:   "Example",
			Secondary: "https://example.com",
			Origin:    "/home/alice/.config/google-chrome/Default/History",
		},
	}
}

func TestCreateAndOpen(t *testing.T) {
	path := tempArchivePath(t)

	s, err := CreateSQLite(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("archive file was not created")
	}

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s2.Close()

	if s2.Path() != path {
		t.Errorf("expected path %s, got %s", path, s2.Path())
	}
}

func TestOpenMissingArchive(t *testing.T) {
	path := tempArchivePath(t)

	if _, err := OpenSQLite(path); err == nil {
		t.Fatal("expected error opening a missing archive")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("open of a missing archive must not create the file")
	}
}

func TestCreateIsIdempotent(t *testing.T) {
	path := tempArchivePath(t)

	s, err := CreateSQLite(path)
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	run := NewRun("summary")
	if err := s.SaveRun(run, sampleRecords()); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	s.Close()

	s2, err := CreateSQLite(path)
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	defer s2.Close()

	runs, err := s2.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected existing run to survive re-create, got %d runs", len(runs))
	}
}

func TestCreateBuildsParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "archive.db")

	s, err := CreateSQLite(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected archive file, stat returned %v", err)
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	s := createTestArchive(t)

	run := NewRun("full")
	records := sampleRecords()
	if err := s.SaveRun(run, records); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if run.RecordCount != len(records) {
		t.Errorf("expected RecordCount %d, got %d", len(records), run.RecordCount)
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != run.ID {
		t.Errorf("expected run ID %s, got %s", run.ID, got.ID)
	}
	if got.View != "full" {
		t.Errorf("expected view full, got %s", got.View)
	}
	if got.RecordCount != len(records) {
		t.Errorf("expected record count %d, got %d", len(records), got.RecordCount)
	}
	if got.CollectedAt.IsZero() {
		t.Error("expected collected_at to survive the round trip")
	}

	stored, err := s.Records(run.ID)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(stored) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(stored))
	}

	for i, rec := range stored {
		if rec.Category != records[i].Category {
			t.Errorf("record %d: expected category %s, got %s", i, records[i].Category, rec.Category)
		}
		if rec.Primary != records[i].Primary {
			t.Errorf("record %d: expected label %q, got %q", i, records[i].Primary, rec.Primary)
		}
		if rec.Origin != records[i].Origin {
			t.Errorf("record %d: expected origin %q, got %q", i, records[i].Origin, rec.Origin)
		}
	}

	// The login record keeps its timestamp, the recent file has none
	// and must come back with none.
	if stored[0].Timestamp.Unix() != 1700000000 {
		t.Errorf("expected timestamp 1700000000, got %d", stored[0].Timestamp.Unix())
	}
	if !stored[1].Timestamp.IsZero() {
		t.Errorf("expected zero timestamp, got %v", stored[1].Timestamp)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := createTestArchive(t)

	older := NewRun("summary")
	older.CollectedAt = time.Unix(1700000000, 0)
	newer := NewRun("full")
	newer.CollectedAt = time.Unix(1700003600, 0)

	if err := s.SaveRun(older, nil); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := s.SaveRun(newer, nil); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != newer.ID {
		t.Errorf("expected newest run first, got %s", runs[0].ID)
	}
}

func TestDeleteRun(t *testing.T) {
	s := createTestArchive(t)

	keep := NewRun("summary")
	drop := NewRun("summary")
	if err := s.SaveRun(keep, sampleRecords()); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := s.SaveRun(drop, sampleRecords()); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	if err := s.DeleteRun(drop.ID); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != keep.ID {
		t.Fatalf("expected only the kept run, got %+v", runs)
	}

	gone, err := s.Records(drop.ID)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(gone) != 0 {
		t.Errorf("expected deleted run's records gone, got %d", len(gone))
	}

	kept, err := s.Records(keep.ID)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(kept) != len(sampleRecords()) {
		t.Errorf("expected kept run's records intact, got %d", len(kept))
	}
}

func TestSaveRunStripsNulBytes(t *testing.T) {
	s := createTestArchive(t)

	run := NewRun("full")
	records := []model.Record{{
		Category: model.Login,
		Primary:  "login: ali\x00ce",
		Origin:   "/var/log/wtmp",
	}}
	if err := s.SaveRun(run, records); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	stored, err := s.Records(run.ID)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if stored[0].Primary != "login: alice" {
		t.Errorf("expected NUL bytes stripped, got %q", stored[0].Primary)
	}
}

func TestNewRunFields(t *testing.T) {
	a := NewRun("summary")
	b := NewRun("summary")

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected run IDs to be set")
	}
	if a.ID == b.ID {
		t.Error("expected distinct run IDs")
	}
	if a.View != "summary" {
		t.Errorf("expected view summary, got %s", a.View)
	}
	if a.CollectedAt.IsZero() {
		t.Error("expected CollectedAt to be set")
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	if _, err := OpenStore("oracle", "whatever"); err == nil {
		t.Error("expected error for unsupported driver")
	}
	if _, err := CreateStore("oracle", "whatever"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
