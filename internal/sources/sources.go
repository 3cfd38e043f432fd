// Package sources resolves the external inputs of an evaluation concurrently:
// the site regolith profile, the filament store level and solar irradiance.
// External lookups degrade to defaults; only local storage errors are fatal.
package sources

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/marsloop/internal/balance"
	"github.com/Simplici0/marsloop/internal/regional"
	"github.com/Simplici0/marsloop/internal/regolith"
	"github.com/Simplici0/marsloop/internal/solar"
)

// FilamentReader returns the current filament store level.
type FilamentReader interface {
	Filament(ctx context.Context) (balance.FilamentStore, error)
}

// Gatherer fans out lookups. Any field may be nil.
type Gatherer struct {
	Regolith regolith.Source
	Filament FilamentReader
	Solar    solar.Provider
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Request selects which inputs Resolve fills. Inputs the caller already
// provided are left untouched.
type Request struct {
	Profile  bool
	Filament bool
}

// Resolve fills the requested parts of in.
func (g Gatherer) Resolve(ctx context.Context, in balance.Inputs, req Request) (balance.Inputs, error) {
	logger := g.logger()

	var (
		profile  *balance.RegolithProfile
		filament balance.FilamentStore
	)

	eg, egCtx := errgroup.WithContext(ctx)

	if req.Profile && in.Profile == nil && g.Regolith != nil {
		eg.Go(func() error {
			profile = regolith.Lookup(egCtx, g.Regolith, in.RegolithType, g.Timeout, logger)
			return nil
		})
	}

	if req.Filament && g.Filament != nil {
		eg.Go(func() error {
			f, err := g.Filament.Filament(egCtx)
			if err != nil {
				return fmt.Errorf("read filament store: %w", err)
			}
			filament = f
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return balance.Inputs{}, err
	}

	if profile != nil {
		in.Profile = profile
	}
	if req.Filament && g.Filament != nil {
		in.Filament = filament
	}
	return in, nil
}

// Irradiance returns the mean daily irradiance for a location, or
// regional.DefaultIrradiance when the provider is missing, slow or failing.
func (g Gatherer) Irradiance(ctx context.Context, lat, lon float64) (float64, bool) {
	if g.Solar == nil {
		return regional.DefaultIrradiance, false
	}
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	v, err := g.Solar.Irradiance(ctx, lat, lon)
	if err != nil || v <= 0 {
		g.logger().Warn("solar irradiance unavailable, using default",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err),
		)
		return regional.DefaultIrradiance, false
	}
	return v, true
}

func (g Gatherer) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}
