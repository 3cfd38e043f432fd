// Package report flattens evaluation results into CSV rows.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/gocarina/gocsv"

	"github.com/Simplici0/marsloop/internal/balance"
)

// SweepRow is one evaluation of a parameter sweep.
type SweepRow struct {
	Field              string  `csv:"field"`
	Value              float64 `csv:"value"`
	PyroFeedKg         float64 `csv:"pyro_feed_kg"`
	ElectricKWh        float64 `csv:"electric_kwh"`
	ArcThermalKWh      float64 `csv:"arc_thermal_kwh"`
	GeneratedKWh       float64 `csv:"generated_kwh"`
	NeededKWh          float64 `csv:"needed_kwh"`
	SelfSufficiencyPct int     `csv:"self_sufficiency_pct"`
	Status             string  `csv:"status"`
	ExternalNeededKWh  float64 `csv:"external_needed_kwh"`
	BrickCount         int     `csv:"brick_count"`
	StrengthMPa        float64 `csv:"strength_mpa"`
	Grade              string  `csv:"grade"`
	PrinterKg          float64 `csv:"printer_kg"`
	PyrolyzerKg        float64 `csv:"pyrolyzer_kg"`
	PrintedItemsPerDay float64 `csv:"printed_items_per_day"`
	RoutingDiscrepant  bool    `csv:"routing_discrepant"`
}

// Row builds the sweep row for one result.
func Row(field string, value float64, res balance.Result) SweepRow {
	return SweepRow{
		Field:              field,
		Value:              value,
		PyroFeedKg:         res.PyroFeedKg,
		ElectricKWh:        res.Energy.ElectricKWh,
		ArcThermalKWh:      res.ArcThermalKWh,
		GeneratedKWh:       res.Balance.GeneratedKWh,
		NeededKWh:          res.Balance.NeededKWh,
		SelfSufficiencyPct: res.Balance.SelfSufficiencyPct,
		Status:             string(res.Status),
		ExternalNeededKWh:  res.Balance.ExternalNeededKWh,
		BrickCount:         res.Bricks.Batch.Count,
		StrengthMPa:        res.Bricks.StrengthMPa,
		Grade:              string(res.Bricks.Grade),
		PrinterKg:          res.Routing.Policy.ToPrinterKg,
		PyrolyzerKg:        res.Routing.Policy.ToPyrolyzerKg,
		PrintedItemsPerDay: res.Routing.Output.ItemsPerDay,
		RoutingDiscrepant:  res.Routing.Discrepant,
	}
}

// MaxSteps bounds the number of rows a sweep may produce.
const MaxSteps = 10000

// Steps returns from, from+step, ... up to and including to. Non-finite
// bounds, a non-positive step, an inverted range or more than MaxSteps
// values are errors.
func Steps(from, to, step float64) ([]float64, error) {
	if !isFinite(from) || !isFinite(to) || !isFinite(step) {
		return nil, fmt.Errorf("sweep bounds must be finite, got from=%v to=%v step=%v", from, to, step)
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %v", step)
	}
	if to < from {
		return nil, fmt.Errorf("range end %v is below start %v", to, from)
	}
	span := (to-from)/step + 1e-9
	if !isFinite(span) || span >= MaxSteps {
		return nil, fmt.Errorf("sweep from %v to %v by %v exceeds %d rows", from, to, step, MaxSteps)
	}
	n := int(span) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = from + float64(i)*step
	}
	return values, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []SweepRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write sweep csv: %w", err)
	}
	return nil
}
