// Package regional models the terrestrial plastics-to-energy variant of the
// facility, which adds rooftop solar to the fuel cell and heat recovery chain.
package regional

import "math"

const (
	SortingEfficiency   = 0.95
	ShreddingEfficiency = 0.98
	WashingEfficiency   = 0.92
	DryingEfficiency    = 0.96

	SOFCShare         = 0.60 // of dried plastic
	SOFCKWhPerKg      = 2.5
	ThermalRecovery   = 0.35 // of SOFC output
	ThermalReuse      = 0.80
	PanelAreaM2       = 50.0
	PanelEfficiency   = 0.18
	WashWaterLPerKg   = 15.0
	WaterRecycleShare = 0.85
	DemandKWhPerKg    = 3.0 // site demand per kg of daily intake

	// DefaultIrradiance is used when no provider answers, kWh/m2/day.
	DefaultIrradiance = 5.2

	DefaultIntakeKgDay    = 250.0
	DefaultProjectionDays = 7
	DefaultLatitude       = 23.8103
	DefaultLongitude      = 90.4125
)

// Inputs drive one regional evaluation.
type Inputs struct {
	WasteIntakeKgDay   float64 `json:"waste_intake_kg_day"`
	ProjectionDays     int     `json:"projection_days"`
	IrradianceKWhM2Day float64 `json:"irradiance_kwh_m2_day"`
}

// DayTrend is one row of the projection chart.
type DayTrend struct {
	Day           int     `json:"day"`
	EnergyKWh     float64 `json:"energy_kwh"`
	WasteKg       float64 `json:"waste_kg"`
	EfficiencyPct float64 `json:"efficiency_pct"`
}

// Metrics are the derived regional figures. Energy totals cover the whole
// projection period; water figures are per day.
type Metrics struct {
	DailyWasteKg        float64    `json:"daily_waste_kg"`
	TotalWasteKg        float64    `json:"total_waste_kg"`
	PlasticProcessedKg  float64    `json:"plastic_processed_kg"`
	SOFCEnergyKWh       float64    `json:"sofc_energy_kwh"`
	ThermalEnergyKWh    float64    `json:"thermal_energy_kwh"`
	SolarEnergyKWh      float64    `json:"solar_energy_kwh"`
	TotalEnergyKWh      float64    `json:"total_energy_kwh"`
	WaterRecycledL      float64    `json:"water_recycled_l"`
	WaterWastedL        float64    `json:"water_wasted_l"`
	SelfSufficiencyPct  float64    `json:"self_sufficiency_pct"`
	WasteUtilizationPct float64    `json:"waste_utilization_pct"`
	WaterRecyclingPct   float64    `json:"water_recycling_pct"`
	Trend               []DayTrend `json:"trend"`
}

// Calculate derives the regional metrics. Zero intake yields zero rates
// instead of NaN.
func Calculate(in Inputs) Metrics {
	days := in.ProjectionDays
	if days < 0 {
		days = 0
	}
	intake := math.Max(0, in.WasteIntakeKgDay)
	irradiance := math.Max(0, in.IrradianceKWhM2Day)

	washed := intake * SortingEfficiency * ShreddingEfficiency * WashingEfficiency
	dried := washed * DryingEfficiency

	sofcDaily := dried * SOFCShare * SOFCKWhPerKg
	thermalDaily := sofcDaily * ThermalRecovery * ThermalReuse
	solarDaily := PanelAreaM2 * irradiance * PanelEfficiency
	totalDaily := sofcDaily + thermalDaily + solarDaily

	waterUsed := washed * WashWaterLPerKg
	waterRecycled := waterUsed * WaterRecycleShare

	m := Metrics{
		DailyWasteKg:       intake,
		TotalWasteKg:       intake * float64(days),
		PlasticProcessedKg: dried,
		SOFCEnergyKWh:      sofcDaily * float64(days),
		ThermalEnergyKWh:   thermalDaily * float64(days),
		SolarEnergyKWh:     solarDaily * float64(days),
		TotalEnergyKWh:     totalDaily * float64(days),
		WaterRecycledL:     waterRecycled,
		WaterWastedL:       waterUsed - waterRecycled,
	}

	if intake > 0 {
		m.SelfSufficiencyPct = math.Min(100, totalDaily/(intake*DemandKWhPerKg)*100)
		m.WasteUtilizationPct = dried / intake * 100
	} else if totalDaily > 0 {
		m.SelfSufficiencyPct = 100
	}
	if waterUsed > 0 {
		m.WaterRecyclingPct = waterRecycled / waterUsed * 100
	}

	m.Trend = make([]DayTrend, days)
	for i := range m.Trend {
		m.Trend[i] = DayTrend{
			Day:           i + 1,
			EnergyKWh:     totalDaily,
			WasteKg:       intake,
			EfficiencyPct: m.SelfSufficiencyPct,
		}
	}
	return m
}
