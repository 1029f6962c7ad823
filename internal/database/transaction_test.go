package database

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newTransactionTestDB(t *testing.T) Database {
	t.Helper()
	ctx := context.Background()

	db, err := NewDatabase(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Session(ctx).Exec("CREATE TABLE entries (id INTEGER PRIMARY KEY, name TEXT)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func countEntries(t *testing.T, db Database) int64 {
	t.Helper()
	var count int64
	if err := db.Session(context.Background()).Table("entries").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestWithTransaction_Commit(t *testing.T) {
	db := newTransactionTestDB(t)
	ctx := context.Background()

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO entries (name) VALUES (?)", "kept").Error
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}

	if got := countEntries(t, db); got != 1 {
		t.Errorf("expected 1 committed row, got %d", got)
	}
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	db := newTransactionTestDB(t)
	ctx := context.Background()
	boom := errors.New("batch write failed")

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO entries (name) VALUES (?)", "discarded").Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped callback error, got %v", err)
	}

	if got := countEntries(t, db); got != 0 {
		t.Errorf("expected rollback to leave no rows, got %d", got)
	}
}

func TestTransaction_RollbackAfterCommit(t *testing.T) {
	db := newTransactionTestDB(t)
	ctx := context.Background()

	txn, err := NewTransaction(ctx, db)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	if err := txn.Session().Exec("INSERT INTO entries (name) VALUES (?)", "kept").Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := txn.Rollback(); err != nil {
		t.Errorf("Rollback after Commit should be a no-op, got %v", err)
	}

	if got := countEntries(t, db); got != 1 {
		t.Errorf("expected committed row to survive, got %d", got)
	}
}
