package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/marsloop/internal/balance"
	"github.com/Simplici0/marsloop/internal/regional"
	"github.com/Simplici0/marsloop/internal/regolith"
	"github.com/Simplici0/marsloop/internal/report"
	"github.com/Simplici0/marsloop/internal/scenario"
	"github.com/Simplici0/marsloop/internal/solar"
	"github.com/Simplici0/marsloop/internal/sources"
)

// profileSource tries the data directory, then a remote server, then the
// built-in landing site profiles.
func profileSource(f profileFlags) regolith.Source {
	var chain regolith.Chain
	if f.dir != "" {
		chain = append(chain, regolith.FileSource{Dir: f.dir})
	}
	if f.url != "" {
		chain = append(chain, regolith.HTTPSource{BaseURL: f.url})
	}
	return append(chain, regolith.Catalog(regolith.Builtin()))
}

func loadInputs(ctx context.Context, path string, f profileFlags) (balance.Inputs, error) {
	s, err := scenario.Load(path)
	if err != nil {
		return balance.Inputs{}, err
	}
	in, err := s.Inputs()
	if err != nil {
		return balance.Inputs{}, err
	}
	logger.Debug("scenario loaded", zap.String("name", s.Name), zap.String("regolith_type", string(in.RegolithType)))

	g := sources.Gatherer{
		Regolith: profileSource(f),
		Timeout:  f.timeout,
		Logger:   logger,
	}
	return g.Resolve(ctx, in, sources.Request{Profile: true})
}

func runEvaluate(ctx context.Context, w io.Writer, path string, f profileFlags, asJSON bool) error {
	in, err := loadInputs(ctx, path, f)
	if err != nil {
		return err
	}
	res := balance.Evaluate(in)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Inputs balance.Inputs `json:"inputs"`
			Result balance.Result `json:"result"`
		}{in, res})
	}
	return printResult(w, res)
}

type sweepOptions struct {
	scenario string
	profiles profileFlags
	field    string
	from     float64
	to       float64
	step     float64
	out      string
}

func runSweep(ctx context.Context, w io.Writer, opts sweepOptions) error {
	values, err := report.Steps(opts.from, opts.to, opts.step)
	if err != nil {
		return err
	}
	base, err := loadInputs(ctx, opts.scenario, opts.profiles)
	if err != nil {
		return err
	}

	rows := make([]report.SweepRow, 0, len(values))
	for _, v := range values {
		in := base
		if err := scenario.SetField(&in, opts.field, v); err != nil {
			return fmt.Errorf("%w (known fields: %v)", err, scenario.Fields())
		}
		rows = append(rows, report.Row(opts.field, v, balance.Evaluate(in)))
	}
	logger.Debug("sweep evaluated", zap.String("field", opts.field), zap.Int("rows", len(rows)))

	if opts.out == "" {
		return report.WriteCSV(w, rows)
	}
	file, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("create sweep output: %w", err)
	}
	if err := report.WriteCSV(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

type regionalOptions struct {
	lat      float64
	lon      float64
	intake   float64
	days     int
	offline  bool
	solarURL string
	timeout  time.Duration
}

func runRegional(ctx context.Context, w io.Writer, opts regionalOptions) error {
	if opts.days < 1 {
		return fmt.Errorf("days must be positive, got %d", opts.days)
	}
	if opts.intake < 0 {
		return fmt.Errorf("intake must be >= 0, got %v", opts.intake)
	}

	g := sources.Gatherer{Timeout: opts.timeout, Logger: logger}
	if !opts.offline {
		g.Solar = solar.NewPowerClient(opts.solarURL)
	}
	irradiance, measured := g.Irradiance(ctx, opts.lat, opts.lon)

	m := regional.Calculate(regional.Inputs{
		WasteIntakeKgDay:   opts.intake,
		ProjectionDays:     opts.days,
		IrradianceKWhM2Day: irradiance,
	})
	return printRegional(w, irradiance, measured, m)
}
