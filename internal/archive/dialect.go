package archive

// Dialect abstracts the database-specific SQL of the archive schema.
// Each backend (SQLite, PostgreSQL) implements this interface.
type Dialect interface {
	// DriverName returns the database/sql driver name.
	DriverName() string

	// DSN returns the data source name for opening a connection.
	// For SQLite this is the file path; for PostgreSQL a connection
	// string.
	DSN(pathOrConnStr string) string

	// Placeholder returns the parameter placeholder for the given
	// 1-based index. SQLite: "?" (ignoring index), PostgreSQL: "$1",
	// "$2", etc.
	Placeholder(index int) string

	// IDColumn returns the records row identifier used to preserve
	// insertion order. SQLite: implicit "rowid", PostgreSQL: explicit
	// serial "id".
	IDColumn() string

	// CreateRunsTableSQL returns the DDL for the runs table.
	CreateRunsTableSQL() string

	// CreateRecordsTableSQL returns the DDL for the records table.
	CreateRecordsTableSQL() string

	// CreateRecordsIndexSQL returns DDL for the run_id lookup index.
	CreateRecordsIndexSQL() string

	// InsertRunSQL returns the parameterized INSERT for one run.
	InsertRunSQL() string

	// InsertRecordSQL returns the parameterized INSERT for one record.
	InsertRecordSQL() string
}
