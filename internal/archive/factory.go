package archive

import "fmt"

// OpenStore opens an existing archive using the specified driver.
// For SQLite, pathOrConnStr is the file path to the .db file.
// For PostgreSQL, it is a connection string.
func OpenStore(driver, pathOrConnStr string) (Store, error) {
	switch driver {
	case "sqlite":
		return OpenSQLite(pathOrConnStr)
	case "postgres":
		return OpenPostgres(pathOrConnStr)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}

// CreateStore opens an archive with the specified driver, creating
// the schema when it is not there yet.
func CreateStore(driver, pathOrConnStr string) (Store, error) {
	switch driver {
	case "sqlite":
		return CreateSQLite(pathOrConnStr)
	case "postgres":
		return CreatePostgres(pathOrConnStr)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}
