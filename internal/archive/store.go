// Package archive persists collection runs so evidence can be
// reviewed or handed off later.
package archive

import (
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cdtdelta/lastseen/internal/model"
)

// Run identifies one archived collection pass.
type Run struct {
	ID          string    `json:"id"`
	CollectedAt time.Time `json:"collected_at"`
	Host        string    `json:"host"`
	View        string    `json:"view"`
	RecordCount int       `json:"record_count"`
}

// NewRun stamps a fresh run for the given view name.
func NewRun(view string) *Run {
	host, _ := os.Hostname()
	return &Run{
		ID:          uuid.NewString(),
		CollectedAt: time.Now(),
		Host:        host,
		View:        view,
	}
}

// Store defines the archive operations the application needs, so that
// callers depend on the interface rather than a concrete backend.
type Store interface {
	// SaveRun persists a run and its records in one transaction and
	// fills in the run's RecordCount.
	SaveRun(run *Run, records []model.Record) error

	// ListRuns returns all archived runs, newest first.
	ListRuns() ([]Run, error)

	// Records returns one run's records in their archived order.
	Records(runID string) ([]model.Record, error)

	// DeleteRun removes a run and its records.
	DeleteRun(runID string) error

	// Lifecycle
	Close() error
	Path() string
}
