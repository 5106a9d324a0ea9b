package archive

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres opens an existing PostgreSQL archive.
func OpenPostgres(connStr string) (Store, error) {
	d := &PostgresDialect{}

	conn, err := sql.Open(d.DriverName(), d.DSN(connStr))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to archive: %w", err)
	}

	return &dbStore{path: connStr, conn: conn, dialect: d}, nil
}

// CreatePostgres opens a PostgreSQL archive and sets up the schema.
// The database itself must already exist.
func CreatePostgres(connStr string) (Store, error) {
	d := &PostgresDialect{}

	conn, err := sql.Open(d.DriverName(), d.DSN(connStr))
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to archive: %w", err)
	}

	s := &dbStore{path: connStr, conn: conn, dialect: d}
	if err := s.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}
