package balance

import "math"

// RoutingDecision splits the 3D-printable plastics stream. The two legs
// always add up to the input mass.
type RoutingDecision struct {
	ToPrinterKg   float64 `json:"to_printer_kg"`
	ToPyrolyzerKg float64 `json:"to_pyrolyzer_kg"`
}

// PrinterPct is the printer share of the stream, 0 for an empty stream.
func (d RoutingDecision) PrinterPct() float64 {
	total := d.ToPrinterKg + d.ToPyrolyzerKg
	if total == 0 {
		return 0
	}
	return 100 * d.ToPrinterKg / total
}

// PyrolyzerPct is the pyrolyzer share of the stream, 0 for an empty stream.
func (d RoutingDecision) PyrolyzerPct() float64 {
	total := d.ToPrinterKg + d.ToPyrolyzerKg
	if total == 0 {
		return 0
	}
	return 100 * d.ToPyrolyzerKg / total
}

// PolicyInput is everything the routing policy looks at.
type PolicyInput struct {
	Plastics3DKg float64
	NeededKWh    float64
	GeneratedKWh float64
	Filament     FilamentStore
	Override     bool
}

// PolicyTrace records which rules fired.
type PolicyTrace struct {
	EnergyDeficit    bool    `json:"energy_deficit"`
	DeficitFraction  float64 `json:"deficit_fraction"`
	StorageSaturated bool    `json:"storage_saturated"`
	ManualOverride   bool    `json:"manual_override"`
}

// PolicyDecision is a routing decision plus the rules behind it.
type PolicyDecision struct {
	RoutingDecision
	Trace PolicyTrace `json:"trace"`
}

// RouteByPolicy applies three ordered rules to the 3D plastics stream:
//
//  1. On an energy deficit, divert the deficit fraction to the pyrolyzer.
//  2. If filament storage is full, send the remaining printer share to the
//     pyrolyzer as well.
//  3. Manual override discards rules 1 and 2 and sends everything to the
//     pyrolyzer.
func RouteByPolicy(in PolicyInput) PolicyDecision {
	m := in.Plastics3DKg
	var out PolicyDecision
	out.ToPrinterKg = m

	if in.GeneratedKWh < in.NeededKWh {
		fraction := 1.0
		if in.NeededKWh > 0 {
			fraction = math.Min(1, (in.NeededKWh-in.GeneratedKWh)/in.NeededKWh)
		}
		out.ToPyrolyzerKg = m * fraction
		out.ToPrinterKg = m - out.ToPyrolyzerKg
		out.Trace.EnergyDeficit = true
		out.Trace.DeficitFraction = fraction
	}

	if in.Filament.Saturated() {
		out.ToPyrolyzerKg += out.ToPrinterKg
		out.ToPrinterKg = 0
		out.Trace.StorageSaturated = true
	}

	if in.Override {
		out.ToPyrolyzerKg = m
		out.ToPrinterKg = 0
		out.Trace.ManualOverride = true
	}

	return out
}

// RouteByOverrideFraction is the flat split that feeds the pyrolysis
// feed: half of the stream by default, all of it under override.
func RouteByOverrideFraction(plastics3DKg float64, override bool) RoutingDecision {
	toPyro := plastics3DKg * OverrideFraction(override)
	return RoutingDecision{
		ToPrinterKg:   plastics3DKg - toPyro,
		ToPyrolyzerKg: toPyro,
	}
}

// discrepancyToleranceKg absorbs rounding between the two strategies.
const discrepancyToleranceKg = 1e-9

// RoutingComparison reports both routing strategies side by side. The
// pyrolysis feed is built from the fraction strategy while the policy is
// what the control logic would choose; they are not reconciled.
type RoutingComparison struct {
	Policy        PolicyDecision  `json:"policy"`
	Fraction      RoutingDecision `json:"fraction"`
	Discrepant    bool            `json:"discrepant"`
	DiscrepancyKg float64         `json:"discrepancy_kg"`
	Output        PrintOutput     `json:"output"`
}

// PrintOutput is the volume of each routed stream and the printer's item
// rate, derived from the policy decision.
type PrintOutput struct {
	PrinterLiters   float64 `json:"printer_liters"`
	PrinterM3       float64 `json:"printer_m3"`
	PyrolyzerLiters float64 `json:"pyrolyzer_liters"`
	PyrolyzerM3     float64 `json:"pyrolyzer_m3"`
	ItemsPerDay     float64 `json:"items_per_day"`
}

// PrintOutputFor converts a routing decision to volumes and printed items.
func PrintOutputFor(d RoutingDecision) PrintOutput {
	printerL := d.ToPrinterKg / PlasticDensityKgPerL
	pyroL := d.ToPyrolyzerKg / PlasticDensityKgPerL
	return PrintOutput{
		PrinterLiters:   printerL,
		PrinterM3:       printerL / LitersPerM3,
		PyrolyzerLiters: pyroL,
		PyrolyzerM3:     pyroL / LitersPerM3,
		ItemsPerDay:     d.ToPrinterKg * PrintedItemsPerKg,
	}
}

// CompareRouting evaluates both strategies for the same stream.
func CompareRouting(in PolicyInput) RoutingComparison {
	policy := RouteByPolicy(in)
	fraction := RouteByOverrideFraction(in.Plastics3DKg, in.Override)
	diff := math.Abs(policy.ToPyrolyzerKg - fraction.ToPyrolyzerKg)

	return RoutingComparison{
		Policy:        policy,
		Fraction:      fraction,
		Discrepant:    diff > discrepancyToleranceKg,
		DiscrepancyKg: diff,
		Output:        PrintOutputFor(policy.RoutingDecision),
	}
}
