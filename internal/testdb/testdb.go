// Package testdb provides an in-memory database for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/targetlink/targetlink/infrastructure/persistence"
	"github.com/targetlink/targetlink/internal/database"
)

// New creates a migrated in-memory SQLite database that is closed when the
// test finishes.
func New(t *testing.T) database.Database {
	t.Helper()

	db, err := database.NewDatabase(context.Background(), "sqlite://:memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := persistence.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
