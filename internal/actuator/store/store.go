package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/photonbench/chopperd/internal/infrastructure/database"
)

// ErrNotFound is returned when a requested setting has no persisted value.
var ErrNotFound = errors.New("setting not found")

// Store persists actuator settings in SQLite.
//
// Values are serialised as JSON, so a load returns the same dynamic
// types the settings table produces from a decoded command: string,
// float64, bool. Integer settings come back as float64 and are coerced
// by the settings table on restore.
type Store struct {
	db *database.DB
}

// New creates a settings store backed by an open database.
func New(db *database.DB) *Store {
	return &Store{db: db}
}

// Save upserts the persisted value of one setting.
func (s *Store) Save(ctx context.Context, name string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding setting %q: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, name, string(encoded))
	if err != nil {
		return fmt.Errorf("saving setting %q: %w", name, err)
	}

	return nil
}

// Load returns the persisted value of one setting.
func (s *Store) Load(ctx context.Context, name string) (any, error) {
	var encoded string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE name = ?`, name,
	).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading setting %q: %w", name, err)
	}

	return decode(name, encoded)
}

// LoadAll returns every persisted setting value keyed by name.
// An empty database yields an empty map, not an error.
func (s *Store) LoadAll(ctx context.Context) (map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]any)
	for rows.Next() {
		var name, encoded string
		if err := rows.Scan(&name, &encoded); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}
		value, err := decode(name, encoded)
		if err != nil {
			return nil, err
		}
		values[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}

	return values, nil
}

// Delete removes the persisted value of one setting. Deleting a setting
// that was never saved is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting setting %q: %w", name, err)
	}
	return nil
}

func decode(name, encoded string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(encoded), &value); err != nil {
		return nil, fmt.Errorf("decoding setting %q: %w", name, err)
	}
	return value, nil
}
