package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Simplici0/marsloop/internal/balance"
	"github.com/Simplici0/marsloop/internal/regional"
)

func printResult(w io.Writer, res balance.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "PYROLYSIS\t")
	fmt.Fprintf(tw, "  feed (default routing)\t%.2f kg/day\n", res.PyroFeedDefaultKg)
	fmt.Fprintf(tw, "  feed (applied)\t%.2f kg/day\n", res.PyroFeedKg)
	fmt.Fprintf(tw, "  thermal\t%.2f kWh\n", res.Energy.ThermalKWh)
	fmt.Fprintf(tw, "  electric (SOFC)\t%.2f kWh\n", res.Energy.ElectricKWh)
	fmt.Fprintf(tw, "  fuel oil\t%.3f L\n", res.Yields.OilLiters)
	fmt.Fprintf(tw, "  char\t%.2f kg\n", res.Yields.CharKg)
	fmt.Fprintf(tw, "  arc furnace thermal\t%.2f kWh\n", res.ArcThermalKWh)

	fmt.Fprintln(tw, "ENERGY\t")
	fmt.Fprintf(tw, "  generated\t%.2f kWh (SOFC %.2f + arc credit %.2f)\n",
		res.Balance.GeneratedKWh, res.Balance.SOFCKWh, res.Balance.ArcElectricKWh)
	fmt.Fprintf(tw, "  needed\t%.2f kWh\n", res.Balance.NeededKWh)
	fmt.Fprintf(tw, "  self-sufficiency\t%d%% (%s)\n", res.Balance.SelfSufficiencyPct, res.Status)
	fmt.Fprintf(tw, "  external supply\t%.2f kWh\n", res.Balance.ExternalNeededKWh)

	fmt.Fprintln(tw, "ROUTING (3D plastics)\t")
	p := res.Routing.Policy
	fmt.Fprintf(tw, "  printer\t%.2f kg (%.0f%%)\n", p.ToPrinterKg, p.PrinterPct())
	fmt.Fprintf(tw, "  pyrolyzer\t%.2f kg (%.0f%%)\n", p.ToPyrolyzerKg, p.PyrolyzerPct())
	fmt.Fprintf(tw, "  rules\tdeficit=%t saturated=%t override=%t\n",
		p.Trace.EnergyDeficit, p.Trace.StorageSaturated, p.Trace.ManualOverride)
	out := res.Routing.Output
	fmt.Fprintf(tw, "  volume\tprinter %.2f L, pyrolyzer %.2f L\n", out.PrinterLiters, out.PyrolyzerLiters)
	fmt.Fprintf(tw, "  printed items\t%.1f per day\n", out.ItemsPerDay)
	if res.Routing.Discrepant {
		fmt.Fprintf(tw, "  fraction routing differs by\t%.2f kg\n", res.Routing.DiscrepancyKg)
	}
	fmt.Fprintf(tw, "  filament headroom\t%.2f kg\n", res.FilamentHeadroomKg)

	fmt.Fprintln(tw, "BRICKS\t")
	b := res.Bricks
	fmt.Fprintf(tw, "  regolith type\t%s\n", res.RegolithType)
	if res.ProfileAvailable {
		fmt.Fprintf(tw, "  site profile\t%s\n", res.ProfileSite)
	}
	fmt.Fprintf(tw, "  count\t%d (%.1f kg left)\n", b.Batch.Count, b.Batch.RemainderKg)
	fmt.Fprintf(tw, "  strength\t%.2f MPa, %s (%s)\n", b.StrengthMPa, b.Grade, b.Use)
	fmt.Fprintf(tw, "  mix\t%s\n", b.Suggestion)
	if res.Composition.Overallocated {
		fmt.Fprintf(tw, "  note\tcomposition requested %.1f%%, normalized to 100%%\n", res.Composition.RequestedTotalPct)
	}

	fmt.Fprintln(tw, "WATER & OUTPUT\t")
	fmt.Fprintf(tw, "  wash water\t%.1f L/day, %.1f L reused (%d%%)\n",
		res.Water.UsageLiters, res.Water.ReusedLiters, res.Water.SavingsPct)
	fmt.Fprintf(tw, "  recycling batch\t%.1f kg per %.0f days\n", res.Projection.RecyclingBatchKg, res.Projection.IntervalDays)
	fmt.Fprintf(tw, "  output over %.0f sols\t%.1f kWh, %.2f L fuel oil\n",
		res.Projection.OutputIntervalSols, res.Projection.OutputElectricKWh, res.Projection.OutputFuelOilLiters)
	fmt.Fprintf(tw, "  residue available\t%.2f kg\n", res.AvailableResidueKg)

	return tw.Flush()
}

func printRegional(w io.Writer, irradiance float64, measured bool, m regional.Metrics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	source := "default"
	if measured {
		source = "measured"
	}
	fmt.Fprintf(tw, "irradiance\t%.2f kWh/m2/day (%s)\n", irradiance, source)
	fmt.Fprintf(tw, "waste\t%.1f kg/day, %.1f kg total\n", m.DailyWasteKg, m.TotalWasteKg)
	fmt.Fprintf(tw, "plastic processed\t%.1f kg/day\n", m.PlasticProcessedKg)
	fmt.Fprintf(tw, "energy\t%.1f kWh (SOFC %.1f, thermal %.1f, solar %.1f)\n",
		m.TotalEnergyKWh, m.SOFCEnergyKWh, m.ThermalEnergyKWh, m.SolarEnergyKWh)
	fmt.Fprintf(tw, "self-sufficiency\t%.1f%%\n", m.SelfSufficiencyPct)
	fmt.Fprintf(tw, "waste utilization\t%.1f%%\n", m.WasteUtilizationPct)
	fmt.Fprintf(tw, "water\t%.1f L recycled, %.1f L lost (%.0f%%)\n", m.WaterRecycledL, m.WaterWastedL, m.WaterRecyclingPct)
	fmt.Fprintln(tw, "\t")
	fmt.Fprintln(tw, "day\tenergy kWh\twaste kg\tefficiency %")
	for _, d := range m.Trend {
		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%.1f\n", d.Day, d.EnergyKWh, d.WasteKg, d.EfficiencyPct)
	}
	return tw.Flush()
}
