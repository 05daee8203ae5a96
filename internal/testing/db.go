// Package testing provides testing utilities and helpers for the pulse project.
package testing

import (
	"fmt"
	"os"
	"testing"

	"github.com/aristath/pulse/internal/database"
)

// NewTestDB creates a temporary SQLite database for testing with automatic schema migration.
// Returns the database instance and a cleanup function that closes the connection.
//
// Supported schema names:
//   - "health" - applies health_schema.sql
//   - Unknown names - creates empty database (no schema applied)
func NewTestDB(t *testing.T, name string) (*database.DB, func()) {
	t.Helper()

	db, cleanup := newTempDB(t, name)

	if err := db.Migrate(); err != nil {
		cleanup()
		t.Fatalf("Failed to migrate test database %s: %v", name, err)
	}

	return db, cleanup
}

// NewTestDBWithSchema creates a temporary SQLite database for testing with a custom schema.
// The schema SQL is executed directly on the database.
func NewTestDBWithSchema(t *testing.T, name string, schema string) (*database.DB, func()) {
	t.Helper()

	db, cleanup := newTempDB(t, name)

	if schema != "" {
		if _, err := db.Conn().Exec(schema); err != nil {
			cleanup()
			t.Fatalf("Failed to execute custom schema for test database %s: %v", name, err)
		}
	}

	return db, cleanup
}

func newTempDB(t *testing.T, name string) (*database.DB, func()) {
	t.Helper()

	// Each test gets its own file so WAL and read-only profiles behave as in production
	tmpFile, err := os.CreateTemp("", fmt.Sprintf("test_%s_*.db", name))
	if err != nil {
		t.Fatalf("Failed to create temporary database file: %v", err)
	}
	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()

	db, err := database.New(database.Config{
		Path:    tmpPath,
		Profile: database.ProfileStandard,
		Name:    name,
	})
	if err != nil {
		_ = os.Remove(tmpPath)
		t.Fatalf("Failed to create test database %s: %v", name, err)
	}

	closed := false
	return db, func() {
		if closed {
			return
		}
		closed = true
		if err := db.Close(); err != nil {
			t.Logf("Warning: Failed to close test database %s: %v", name, err)
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(tmpPath + suffix); err != nil && !os.IsNotExist(err) {
				t.Logf("Warning: Failed to remove temporary database file %s: %v", tmpPath+suffix, err)
			}
		}
	}
}
