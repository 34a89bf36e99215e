package shared

import (
	"testing"
)

func TestMigrations(t *testing.T) {
	t.Run("RunMigrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='videos'").Scan(&name)
		if err != nil {
			t.Fatalf("videos table should exist: %v", err)
		}
	})

	t.Run("RunMigrations is idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run should be a no-op: %v", err)
		}
	})

	t.Run("RollbackMigration", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='videos'").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query sqlite_master: %v", err)
		}
		if count != 0 {
			t.Error("videos table should be dropped after rollback")
		}
	})

	t.Run("RollbackMigration with no migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := createMigrationsTable(db); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing to rollback")
		}
	})
}
