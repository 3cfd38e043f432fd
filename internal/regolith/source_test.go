package regolith

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Simplici0/marsloop/internal/balance"
)

func writeProfile(t *testing.T, dir, site string, p balance.RegolithProfile) {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName(site)), data, 0o600))
}

func TestFileSource_ReadsSiteFile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "gale", Gale())

	src := FileSource{Dir: dir}
	got, err := src.Profile(context.Background(), "Gale")
	require.NoError(t, err)
	require.Equal(t, Gale(), got)

	_, err = src.Profile(context.Background(), "utopia")
	require.ErrorIs(t, err, ErrNotFound)

	sites, err := src.Sites()
	require.NoError(t, err)
	require.Equal(t, []string{"gale"}, sites)
}

func TestFileSource_RejectsPathLikeSites(t *testing.T) {
	_, err := FileSource{Dir: t.TempDir()}.Profile(context.Background(), "../etc/passwd")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestFileSource_DecodesSnakeCaseSchema(t *testing.T) {
	dir := t.TempDir()
	raw := `{
		"site": "Utopia Planitia",
		"bulk_density_kg_m3": 1500,
		"mineral_wt_percent": {"SiO2": 46.1, "Fe2O3": 12.0},
		"glass_content_pct": 7.5,
		"perchlorate_ppm": 700
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regolith_utopia.json"), []byte(raw), 0o600))

	got, err := FileSource{Dir: dir}.Profile(context.Background(), "utopia")
	require.NoError(t, err)
	require.Equal(t, 46.1, got.MineralWtPercent.SiO2)
	require.Equal(t, 7.5, got.GlassContentPct)
	require.Equal(t, 1500.0, got.BulkDensityKgM3)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/regolith", r.URL.Path)
		assert.Equal(t, "jezero", r.URL.Query().Get("site"))
		_ = json.NewEncoder(w).Encode(Jezero())
	}))
	defer srv.Close()

	got, err := HTTPSource{BaseURL: srv.URL + "/"}.Profile(context.Background(), "jezero")
	require.NoError(t, err)
	require.Equal(t, Jezero(), got)
}

func TestChain_FirstHitWins(t *testing.T) {
	chain := Chain{Catalog{}, Catalog{"gale": Gale()}, Catalog{"gale": Jezero()}}

	got, err := chain.Profile(context.Background(), "gale")
	require.NoError(t, err)
	require.Equal(t, "Gale Crater", got.Site)

	_, err = chain.Profile(context.Background(), "elysium")
	require.ErrorIs(t, err, ErrNotFound)
}

type slowSource struct{ delay time.Duration }

func (s slowSource) Profile(ctx context.Context, site string) (balance.RegolithProfile, error) {
	select {
	case <-time.After(s.delay):
		return Jezero(), nil
	case <-ctx.Done():
		return balance.RegolithProfile{}, ctx.Err()
	}
}

type failingSource struct{}

func (failingSource) Profile(context.Context, string) (balance.RegolithProfile, error) {
	return balance.RegolithProfile{}, errors.New("disk on fire")
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	got := Lookup(ctx, Catalog(Builtin()), balance.SilicaRich, time.Second, log)
	require.NotNil(t, got)
	require.Equal(t, "Gale Crater", got.Site)

	require.Nil(t, Lookup(ctx, Catalog(Builtin()), balance.SulfateRich, time.Second, log))
	require.Nil(t, Lookup(ctx, failingSource{}, balance.Basaltic, time.Second, log))
	require.Nil(t, Lookup(ctx, nil, balance.Basaltic, time.Second, nil))

	start := time.Now()
	require.Nil(t, Lookup(ctx, slowSource{delay: time.Minute}, balance.Basaltic, 20*time.Millisecond, log))
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestFallbackMarksNotes(t *testing.T) {
	fb := Fallback()
	require.NotEmpty(t, fb.Notes)
	require.Contains(t, fb.Site, "Fallback")
	require.Equal(t, Jezero().MineralWtPercent, fb.MineralWtPercent)
}
