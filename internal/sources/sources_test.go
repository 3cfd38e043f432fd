package sources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/marsloop/internal/balance"
	"github.com/Simplici0/marsloop/internal/regional"
	"github.com/Simplici0/marsloop/internal/regolith"
	"github.com/Simplici0/marsloop/internal/solar"
)

type fixedFilament struct {
	f   balance.FilamentStore
	err error
}

func (s fixedFilament) Filament(context.Context) (balance.FilamentStore, error) {
	return s.f, s.err
}

type brokenRegolith struct{}

func (brokenRegolith) Profile(context.Context, string) (balance.RegolithProfile, error) {
	return balance.RegolithProfile{}, errors.New("archive offline")
}

type failingSolar struct{}

func (failingSolar) Irradiance(context.Context, float64, float64) (float64, error) {
	return 0, errors.New("upstream 503")
}

func TestResolveFillsProfileAndFilament(t *testing.T) {
	g := Gatherer{
		Regolith: regolith.Catalog(regolith.Builtin()),
		Filament: fixedFilament{f: balance.FilamentStore{CurrentKg: 4.8, CapacityKg: 5}},
		Timeout:  time.Second,
	}

	in := balance.DefaultInputs()
	in.RegolithType = balance.SilicaRich

	out, err := g.Resolve(context.Background(), in, Request{Profile: true, Filament: true})
	require.NoError(t, err)
	require.NotNil(t, out.Profile)
	require.Equal(t, regolith.Gale().Site, out.Profile.Site)
	require.Equal(t, 4.8, out.Filament.CurrentKg)
}

func TestResolveKeepsCallerValues(t *testing.T) {
	g := Gatherer{
		Regolith: regolith.Catalog(regolith.Builtin()),
		Filament: fixedFilament{f: balance.FilamentStore{CurrentKg: 4.8, CapacityKg: 5}},
	}

	in := balance.DefaultInputs()
	custom := regolith.Fallback()
	in.Profile = &custom

	out, err := g.Resolve(context.Background(), in, Request{Profile: true})
	require.NoError(t, err)
	require.Equal(t, custom.Site, out.Profile.Site)
	require.Equal(t, balance.DefaultFilamentStore(), out.Filament)
}

func TestResolveDegradesOnRegolithFailure(t *testing.T) {
	g := Gatherer{Regolith: brokenRegolith{}}

	out, err := g.Resolve(context.Background(), balance.DefaultInputs(), Request{Profile: true})
	require.NoError(t, err)
	require.Nil(t, out.Profile)
}

func TestResolveReturnsFilamentStorageError(t *testing.T) {
	g := Gatherer{
		Regolith: regolith.Catalog(regolith.Builtin()),
		Filament: fixedFilament{err: errors.New("database is locked")},
	}

	_, err := g.Resolve(context.Background(), balance.DefaultInputs(), Request{Profile: true, Filament: true})
	require.Error(t, err)
}

func TestIrradianceFallsBack(t *testing.T) {
	v, ok := Gatherer{}.Irradiance(context.Background(), 23.8, 90.4)
	require.False(t, ok)
	require.Equal(t, regional.DefaultIrradiance, v)

	v, ok = Gatherer{Solar: failingSolar{}}.Irradiance(context.Background(), 23.8, 90.4)
	require.False(t, ok)
	require.Equal(t, regional.DefaultIrradiance, v)

	v, ok = Gatherer{Solar: solar.Static(4.1)}.Irradiance(context.Background(), 23.8, 90.4)
	require.True(t, ok)
	require.Equal(t, 4.1, v)
}
