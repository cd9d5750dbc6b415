package database

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func TestOpen_CreatesDatabase(t *testing.T) {
	db := openTestDB(t)

	if db.Path() == "" {
		t.Error("Path() returned empty string")
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	db, err := Open(Config{Path: path, BusyTimeout: 1})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()
}

func TestHealthCheck(t *testing.T) {
	db := openTestDB(t)

	if err := db.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestHealthCheck_ClosedDatabase(t *testing.T) {
	db, err := Open(Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 1,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	db.Close()

	if err := db.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() on closed database expected error, got nil")
	}
}

func TestClose_Twice(t *testing.T) {
	db, err := Open(Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 1,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	// database/sql tolerates double-close
	if err := db.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
