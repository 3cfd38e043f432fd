package balance

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// EnergyDemand is the daily draw of each subsystem. Every term is floored at
// its idle baseline.
type EnergyDemand struct {
	PyrolyzerKWh       float64 `json:"pyrolyzer_kwh"`
	ArcFurnaceKWh      float64 `json:"arc_furnace_kwh"`
	PrintingKWh        float64 `json:"printing_kwh"`
	BrickProductionKWh float64 `json:"brick_production_kwh"`
	LifeSupportKWh     float64 `json:"life_support_kwh"`
	TotalKWh           float64 `json:"total_kwh"`
}

// Demand computes subsystem and total energy needs.
func Demand(pyroFeedKg, arcThermalKWh, plastics3DKg float64, bricks int) EnergyDemand {
	d := EnergyDemand{
		PyrolyzerKWh:       math.Max(PyrolyzerBaseKWh, pyroFeedKg*PyrolyzerKWhPerKg),
		ArcFurnaceKWh:      math.Max(ArcFurnaceBaseKWh, arcThermalKWh*ArcFurnaceLoadFactor+ArcFurnaceBaseKWh),
		PrintingKWh:        math.Max(PrintingBaseKWh, plastics3DKg*PrintingKWhPerKg),
		BrickProductionKWh: math.Max(BrickProductionBaseKWh, float64(bricks)*BrickProductionPerUnit+BrickProductionBaseKWh),
		LifeSupportKWh:     LifeSupportKWh,
	}
	d.TotalKWh = floats.Sum([]float64{
		d.PyrolyzerKWh,
		d.ArcFurnaceKWh,
		d.PrintingKWh,
		d.BrickProductionKWh,
		d.LifeSupportKWh,
	})
	return d
}

// EnergyBalance compares on-site generation with total demand.
type EnergyBalance struct {
	SOFCKWh            float64 `json:"sofc_kwh"`
	ArcElectricKWh     float64 `json:"arc_electric_kwh"`
	GeneratedKWh       float64 `json:"generated_kwh"`
	NeededKWh          float64 `json:"needed_kwh"`
	SelfSufficiencyPct int     `json:"self_sufficiency_pct"`
	ExternalNeededKWh  float64 `json:"external_needed_kwh"`
}

// Balance credits fuel cell output plus a share of arc furnace heat against
// the total demand.
func Balance(electricKWh, arcThermalKWh float64, d EnergyDemand) EnergyBalance {
	arcElectric := ArcElectricCredit * arcThermalKWh
	generated := electricKWh + arcElectric
	needed := d.TotalKWh

	return EnergyBalance{
		SOFCKWh:            electricKWh,
		ArcElectricKWh:     arcElectric,
		GeneratedKWh:       generated,
		NeededKWh:          needed,
		SelfSufficiencyPct: selfSufficiency(generated, needed),
		ExternalNeededKWh:  math.Max(0, needed-generated),
	}
}

func selfSufficiency(generated, needed float64) int {
	if needed <= 0 {
		if generated > 0 {
			return 100
		}
		return 0
	}
	pct := math.Round(generated / needed * 100)
	if math.IsNaN(pct) {
		return 0
	}
	return int(math.Max(0, math.Min(100, pct)))
}

// SystemStatus is the habitat power status label.
type SystemStatus string

const (
	StatusAdequate SystemStatus = "Adequate"
	StatusWarning  SystemStatus = "Warning"
	StatusCritical SystemStatus = "Critical"
)

// StatusFor classifies a self-sufficiency percentage.
func StatusFor(selfSufficiencyPct int) SystemStatus {
	switch {
	case selfSufficiencyPct >= AdequateStatusPct:
		return StatusAdequate
	case selfSufficiencyPct >= WarningStatusPct:
		return StatusWarning
	default:
		return StatusCritical
	}
}
