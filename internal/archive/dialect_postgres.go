package archive

import "fmt"

// PostgresDialect implements the Dialect interface for PostgreSQL
// archives.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string              { return "pgx" }
func (d *PostgresDialect) DSN(pathOrConnStr string) string { return pathOrConnStr }
func (d *PostgresDialect) Placeholder(index int) string    { return fmt.Sprintf("$%d", index) }
func (d *PostgresDialect) IDColumn() string                { return "id" }

func (d *PostgresDialect) CreateRunsTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		collected_at TEXT,
		host TEXT,
		view TEXT,
		record_count INT DEFAULT 0
	)`
}

func (d *PostgresDialect) CreateRecordsTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS records (
		id SERIAL PRIMARY KEY,
		run_id TEXT,
		category TEXT,
		occurred_at TEXT,
		label TEXT,
		detail TEXT,
		origin TEXT
	)`
}

func (d *PostgresDialect) CreateRecordsIndexSQL() string {
	return "CREATE INDEX IF NOT EXISTS records_run_idx ON records (run_id)"
}

func (d *PostgresDialect) InsertRunSQL() string {
	return "INSERT INTO runs (id, collected_at, host, view, record_count) VALUES ($1, $2, $3, $4, $5)"
}

func (d *PostgresDialect) InsertRecordSQL() string {
	return "INSERT INTO records (run_id, category, occurred_at, label, detail, origin) VALUES ($1, $2, $3, $4, $5, $6)"
}
