package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cdtdelta/lastseen/internal/model"
)

// timeFormat is how timestamps are archived. RFC 3339 text sorts the
// same way it reads, so ORDER BY works directly on the column.
const timeFormat = time.RFC3339

// dbStore implements Store on top of database/sql with a Dialect.
type dbStore struct {
	path    string
	conn    *sql.DB
	dialect Dialect
}

// OpenSQLite opens an existing SQLite archive. The driver would
// happily create an empty file here, so a missing archive is checked
// for up front.
func OpenSQLite(path string) (Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	d := &SQLiteDialect{}

	conn, err := sql.Open(d.DriverName(), d.DSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to archive: %w", err)
	}

	return &dbStore{path: path, conn: conn, dialect: d}, nil
}

// CreateSQLite opens an SQLite archive, creating the file and schema
// when they do not exist yet.
func CreateSQLite(path string) (Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	d := &SQLiteDialect{}
	conn, err := sql.Open(d.DriverName(), d.DSN(path))
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}

	s := &dbStore{path: path, conn: conn, dialect: d}
	if err := s.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// createSchema builds the runs and records tables. The DDL is
// idempotent, so an existing archive passes through unchanged.
func (s *dbStore) createSchema() error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(s.dialect.CreateRunsTableSQL()); err != nil {
		return fmt.Errorf("creating runs table: %w", err)
	}
	if _, err := tx.Exec(s.dialect.CreateRecordsTableSQL()); err != nil {
		return fmt.Errorf("creating records table: %w", err)
	}
	if _, err := tx.Exec(s.dialect.CreateRecordsIndexSQL()); err != nil {
		return fmt.Errorf("creating records index: %w", err)
	}
	return tx.Commit()
}

// Close closes the archive connection.
func (s *dbStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Path returns the path or connection string the archive was opened
// with.
func (s *dbStore) Path() string {
	return s.path
}

// SaveRun inserts the run and its records inside a single transaction.
func (s *dbStore) SaveRun(run *Run, records []model.Record) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(s.dialect.InsertRunSQL(),
		run.ID, run.CollectedAt.UTC().Format(timeFormat),
		sanitizeText(run.Host), run.View, len(records))
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.Prepare(s.dialect.InsertRecordSQL())
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		_, err := stmt.Exec(run.ID, string(rec.Category), tsValue(rec.Timestamp),
			sanitizeText(rec.Primary), sanitizeText(rec.Secondary), sanitizeText(rec.Origin))
		if err != nil {
			return fmt.Errorf("inserting record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	run.RecordCount = len(records)
	return nil
}

// ListRuns returns every archived run, newest first.
func (s *dbStore) ListRuns() ([]Run, error) {
	rows, err := s.conn.Query(
		"SELECT id, collected_at, host, view, record_count FROM runs ORDER BY collected_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			collected  sql.NullString
			host, view sql.NullString
			count      sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &collected, &host, &view, &count); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CollectedAt = parseTime(collected)
		r.Host = host.String
		r.View = view.String
		r.RecordCount = int(count.Int64)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Records returns one run's records in their archived order.
func (s *dbStore) Records(runID string) ([]model.Record, error) {
	query := "SELECT category, occurred_at, label, detail, origin FROM records WHERE run_id = " +
		s.dialect.Placeholder(1) + " ORDER BY " + s.dialect.IDColumn()

	rows, err := s.conn.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var category, occurred, label, detail, origin sql.NullString
		if err := rows.Scan(&category, &occurred, &label, &detail, &origin); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, model.Record{
			Timestamp: parseTime(occurred),
			Category:  model.Category(category.String),
			Primary:   label.String,
			Secondary: detail.String,
			Origin:    origin.String,
		})
	}
	return records, rows.Err()
}

// DeleteRun removes a run and its records.
func (s *dbStore) DeleteRun(runID string) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM records WHERE run_id = "+s.dialect.Placeholder(1), runID); err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}
	if _, err := tx.Exec(
		"DELETE FROM runs WHERE id = "+s.dialect.Placeholder(1), runID); err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	return tx.Commit()
}

// tsValue archives a timestamp as RFC 3339 text, or NULL when the
// record carries none. The zero-year sentinel would be rejected by
// PostgreSQL and would sort wrongly everywhere.
func tsValue(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeFormat)
}

func parseTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeFormat, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// sanitizeText strips NUL bytes. Fixed-width channel fields can carry
// them and PostgreSQL rejects them in UTF8 text columns.
func sanitizeText(v string) string {
	if strings.ContainsRune(v, '\x00') {
		return strings.ReplaceAll(v, "\x00", "")
	}
	return v
}
