package balance

// PyrolysisYield is the daily energy recovered from the pyrolysis feed.
type PyrolysisYield struct {
	ThermalKWh  float64 `json:"thermal_kwh"`
	ElectricKWh float64 `json:"electric_kwh"`
}

// MaterialYield is the daily mass recovered from the pyrolysis feed.
type MaterialYield struct {
	OilLiters float64 `json:"oil_liters"`
	CharKg    float64 `json:"char_kg"`
}

// PyroToEnergy converts a feed mass into syngas heat and fuel cell electricity.
func PyroToEnergy(feedKg float64) PyrolysisYield {
	thermal := feedKg * PyrolysisEnergyMJPerKg / MJPerKWh
	return PyrolysisYield{
		ThermalKWh:  thermal,
		ElectricKWh: thermal * SOFCEfficiency,
	}
}

// PyroYields converts a feed mass into fuel oil and char.
func PyroYields(feedKg float64) MaterialYield {
	return MaterialYield{
		OilLiters: feedKg * OilMassYield / OilDensityKgPerL,
		CharKg:    feedKg * CharMassYield,
	}
}

// ArcThermal is the arc furnace heat output from melting metals and glass.
func ArcThermal(metalsKg, glassKg float64) float64 {
	return (metalsKg + glassKg) * ArcThermalKWhPerKg
}

// OverrideFraction is the share of 3D-printable plastics added to the
// pyrolysis feed for the given override state.
func OverrideFraction(override bool) float64 {
	if override {
		return OverrideExtruderDivert
	}
	return DefaultExtruderDivert
}

// DefaultPyroFeed is the feed before any 3D-printable plastics are diverted.
func DefaultPyroFeed(w WasteInputs) float64 {
	return w.PlasticsKgDay*PlasticsToPyrolysis + w.FabricsKgDay
}

// PyroFeed is the total daily pyrolyzer feed including the override-driven
// share of 3D-printable plastics.
func PyroFeed(w WasteInputs, override bool) float64 {
	return DefaultPyroFeed(w) + w.Plastics3DKgDay*OverrideFraction(override)
}
