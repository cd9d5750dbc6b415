// Package database provides SQLite persistence for chopperd.
//
// It wraps database/sql with the mattn/go-sqlite3 driver and provides:
//
//   - Connection management with WAL mode and busy-timeout pragmas
//   - Embedded schema migrations (applied at startup, one transaction each)
//   - Health checks for supervision
//
// SQLite holds the persisted actuator settings so that a restarted daemon
// re-applies the operator's last configuration to the chopper.
//
// # Usage
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path, WALMode: true, BusyTimeout: 5})
//	if err != nil { ... }
//	defer db.Close()
//	if err := db.Migrate(ctx); err != nil { ... }
package database
