package archive

// SQLiteDialect implements the Dialect interface for SQLite archives.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string              { return "sqlite" }
func (d *SQLiteDialect) DSN(pathOrConnStr string) string { return pathOrConnStr }
func (d *SQLiteDialect) Placeholder(index int) string    { return "?" }
func (d *SQLiteDialect) IDColumn() string                { return "rowid" }

func (d *SQLiteDialect) CreateRunsTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		collected_at TEXT,
		host TEXT,
		view TEXT,
		record_count INT DEFAULT 0
	)`
}

func (d *SQLiteDialect) CreateRecordsTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS records (
		run_id TEXT,
		category TEXT,
		occurred_at TEXT,
		label TEXT,
		detail TEXT,
		origin TEXT
	)`
}

func (d *SQLiteDialect) CreateRecordsIndexSQL() string {
	return "CREATE INDEX IF NOT EXISTS records_run_idx ON records (run_id)"
}

func (d *SQLiteDialect) InsertRunSQL() string {
	return "INSERT INTO runs (id, collected_at, host, view, record_count) VALUES (?, ?, ?, ?, ?)"
}

func (d *SQLiteDialect) InsertRecordSQL() string {
	return "INSERT INTO records (run_id, category, occurred_at, label, detail, origin) VALUES (?, ?, ?, ?, ?, ?)"
}
