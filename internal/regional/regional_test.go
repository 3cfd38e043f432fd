package regional

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCalculate_DhakaDefaults(t *testing.T) {
	m := Calculate(Inputs{WasteIntakeKgDay: 250, ProjectionDays: 7, IrradianceKWhM2Day: 5.2})

	washed := 250 * 0.95 * 0.98 * 0.92
	dried := washed * 0.96
	sofc := dried * 0.6 * 2.5
	thermal := sofc * 0.35 * 0.8
	solar := 50 * 5.2 * 0.18

	nearlyEqual(t, "processed", m.PlasticProcessedKg, dried, 1e-9)
	nearlyEqual(t, "sofc", m.SOFCEnergyKWh, sofc*7, 1e-9)
	nearlyEqual(t, "thermal", m.ThermalEnergyKWh, thermal*7, 1e-9)
	nearlyEqual(t, "solar", m.SolarEnergyKWh, solar*7, 1e-9)
	nearlyEqual(t, "total", m.TotalEnergyKWh, (sofc+thermal+solar)*7, 1e-9)
	nearlyEqual(t, "total waste", m.TotalWasteKg, 1750, 0)
	nearlyEqual(t, "water recycled", m.WaterRecycledL, washed*15*0.85, 1e-9)
	nearlyEqual(t, "water rate", m.WaterRecyclingPct, 85, 1e-9)
	nearlyEqual(t, "self sufficiency", m.SelfSufficiencyPct, (sofc+thermal+solar)/750*100, 1e-9)
	nearlyEqual(t, "utilization", m.WasteUtilizationPct, 0.95*0.98*0.92*0.96*100, 1e-9)

	if len(m.Trend) != 7 || m.Trend[6].Day != 7 {
		t.Fatalf("unexpected trend %+v", m.Trend)
	}
}

func TestCalculate_SelfSufficiencyCapped(t *testing.T) {
	m := Calculate(Inputs{WasteIntakeKgDay: 1, ProjectionDays: 1, IrradianceKWhM2Day: 8})

	nearlyEqual(t, "self sufficiency", m.SelfSufficiencyPct, 100, 0)
}

func TestCalculate_ZeroIntakeHasNoNaN(t *testing.T) {
	m := Calculate(Inputs{ProjectionDays: 3, IrradianceKWhM2Day: 5})

	for name, v := range map[string]float64{
		"utilization": m.WasteUtilizationPct,
		"water":       m.WaterRecyclingPct,
		"self":        m.SelfSufficiencyPct,
	} {
		if math.IsNaN(v) {
			t.Fatalf("%s is NaN", name)
		}
	}
	nearlyEqual(t, "self sufficiency", m.SelfSufficiencyPct, 100, 0)
}
