package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Simplici0/marsloop/internal/auth"
	"github.com/Simplici0/marsloop/internal/db"
	"github.com/Simplici0/marsloop/internal/migrations"
	"github.com/Simplici0/marsloop/internal/regolith"
)

func TestRunIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	dataDir := t.TempDir()
	utopia := regolith.Jezero()
	utopia.Site = "Utopia Planitia"
	raw, err := json.Marshal(utopia)
	if err != nil {
		t.Fatalf("encode profile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "regolith_utopia.json"), raw, 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	cfg := Config{
		AdminEmail:      "admin@habitat.mars",
		AdminPassword:   "12345",
		RegolithDataDir: dataDir,
	}

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, database, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			// admin + jezero + gale + utopia + filament
			if stats.Inserts != 5 {
				t.Fatalf("expected 5 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Skipped != 5 {
			t.Fatalf("expected 0 inserts and 5 skips in iteration %d, got %+v", i, stats)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM users WHERE email = ?`, "admin@habitat.mars", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM regolith_profiles`, nil, 3)
	assertCount(t, database, `SELECT COUNT(*) FROM regolith_profiles WHERE site = ?`, "utopia", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM filament_store WHERE id = 1`, nil, 1)

	var hash string
	if err := database.QueryRow(`SELECT password_hash FROM users WHERE email = ?`, "admin@habitat.mars").Scan(&hash); err != nil {
		t.Fatalf("query admin hash: %v", err)
	}
	if hash != auth.HashPassword("12345") {
		t.Fatalf("expected admin hash to match password")
	}
}

func TestRunWithoutAdminCredentials(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "seed-noadmin.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	stats, err := Run(context.Background(), database, Config{})
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	// jezero + gale + filament
	if stats.Inserts != 3 {
		t.Fatalf("expected 3 inserts, got %+v", stats)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM users`, nil, 0)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
