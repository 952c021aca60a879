package repository

import (
	"database/sql"
	"testing"
)

// ContainerDB hands the migrated test database to external test packages
// with every table emptied.
func ContainerDB(t *testing.T) *sql.DB {
	t.Helper()
	resetTables(t)
	return testDB
}
