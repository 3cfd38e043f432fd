// Package store persists regolith profiles, the filament inventory and
// evaluation history in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/marsloop/internal/balance"
	"github.com/Simplici0/marsloop/internal/regolith"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the application database.
type Store struct {
	db *sql.DB
}

// New returns a Store over an already migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Profile implements regolith.Source.
func (s *Store) Profile(ctx context.Context, site string) (balance.RegolithProfile, error) {
	key, err := regolith.NormalizeSite(site)
	if err != nil {
		return balance.RegolithProfile{}, err
	}

	var raw string
	err = s.db.QueryRowContext(ctx, `SELECT profile_json FROM regolith_profiles WHERE site = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return balance.RegolithProfile{}, regolith.ErrNotFound
	}
	if err != nil {
		return balance.RegolithProfile{}, fmt.Errorf("query regolith profile: %w", err)
	}

	var p balance.RegolithProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return balance.RegolithProfile{}, fmt.Errorf("decode regolith profile %q: %w", key, err)
	}
	return p, nil
}

// UpsertProfile stores p under site, replacing any previous record.
func (s *Store) UpsertProfile(ctx context.Context, site string, p balance.RegolithProfile) error {
	key, err := regolith.NormalizeSite(site)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode regolith profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO regolith_profiles (site, profile_json)
		VALUES (?, ?)
		ON CONFLICT(site) DO UPDATE SET
			profile_json = excluded.profile_json,
			updated_at = CURRENT_TIMESTAMP
	`, key, string(raw))
	if err != nil {
		return fmt.Errorf("upsert regolith profile: %w", err)
	}
	return nil
}

// Sites lists stored site keys alphabetically.
func (s *Store) Sites(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT site FROM regolith_profiles ORDER BY site`)
	if err != nil {
		return nil, fmt.Errorf("query regolith sites: %w", err)
	}
	defer rows.Close()

	sites := make([]string, 0)
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("scan regolith site: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regolith sites: %w", err)
	}
	return sites, nil
}

// Filament returns the inventory singleton, or the default inventory if it
// has not been written yet.
func (s *Store) Filament(ctx context.Context) (balance.FilamentStore, error) {
	var f balance.FilamentStore
	err := s.db.QueryRowContext(ctx, `
		SELECT current_kg, capacity_kg
		FROM filament_store
		WHERE id = 1
	`).Scan(&f.CurrentKg, &f.CapacityKg)
	if errors.Is(err, sql.ErrNoRows) {
		return balance.DefaultFilamentStore(), nil
	}
	if err != nil {
		return balance.FilamentStore{}, fmt.Errorf("query filament store: %w", err)
	}
	return f, nil
}

// SetFilament writes the inventory, clamped to its capacity, and returns
// the stored value.
func (s *Store) SetFilament(ctx context.Context, f balance.FilamentStore) (balance.FilamentStore, error) {
	f = f.Clamp()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO filament_store (id, current_kg, capacity_kg)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_kg = excluded.current_kg,
			capacity_kg = excluded.capacity_kg,
			updated_at = CURRENT_TIMESTAMP
	`, f.CurrentKg, f.CapacityKg)
	if err != nil {
		return balance.FilamentStore{}, fmt.Errorf("update filament store: %w", err)
	}
	return f, nil
}
