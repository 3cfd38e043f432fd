package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Simplici0/marsloop/internal/auth"
	"github.com/Simplici0/marsloop/internal/balance"
	"github.com/Simplici0/marsloop/internal/regolith"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	// RegolithDataDir holds optional regolith_<site>.json files that take
	// precedence over the built-in profiles on first seed.
	RegolithDataDir string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Skipped int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	profiles, err := collectProfiles(ctx, cfg.RegolithDataDir)
	if err != nil {
		return Stats{}, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	inserted, err := auth.EnsureAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	stats.count(inserted)

	sites := make([]string, 0, len(profiles))
	for site := range profiles {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	for _, site := range sites {
		inserted, err := ensureProfile(ctx, tx, site, profiles[site])
		if err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
		stats.count(inserted)
	}

	inserted, err = ensureFilament(ctx, tx)
	if err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	stats.count(inserted)

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func (s *Stats) count(inserted bool) {
	if inserted {
		s.Inserts++
	} else {
		s.Skipped++
	}
}

func collectProfiles(ctx context.Context, dir string) (map[string]balance.RegolithProfile, error) {
	profiles := regolith.Builtin()
	if dir == "" {
		return profiles, nil
	}

	files := regolith.FileSource{Dir: dir}
	sites, err := files.Sites()
	if err != nil {
		return nil, err
	}
	for _, site := range sites {
		p, err := files.Profile(ctx, site)
		if err != nil {
			return nil, fmt.Errorf("load seed profile %q: %w", site, err)
		}
		profiles[site] = p
	}
	return profiles, nil
}

func ensureProfile(ctx context.Context, tx *sql.Tx, site string, p balance.RegolithProfile) (bool, error) {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM regolith_profiles WHERE site = ? LIMIT 1)`, site).Scan(&exists); err != nil {
		return false, fmt.Errorf("check regolith profile existence: %w", err)
	}
	if exists {
		return false, nil
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("encode regolith profile %q: %w", site, err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO regolith_profiles (site, profile_json)
		VALUES (?, ?)
	`, site, string(raw)); err != nil {
		return false, fmt.Errorf("insert regolith profile %q: %w", site, err)
	}
	return true, nil
}

func ensureFilament(ctx context.Context, tx *sql.Tx) (bool, error) {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM filament_store WHERE id = 1)`).Scan(&exists); err != nil {
		return false, fmt.Errorf("check filament store existence: %w", err)
	}
	if exists {
		return false, nil
	}

	f := balance.DefaultFilamentStore()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO filament_store (id, current_kg, capacity_kg)
		VALUES (1, ?, ?)
	`, f.CurrentKg, f.CapacityKg); err != nil {
		return false, fmt.Errorf("insert filament store singleton: %w", err)
	}
	return true, nil
}
