package regolith

import "github.com/Simplici0/marsloop/internal/balance"

// DefaultSite is served when a request names no site.
const DefaultSite = "jezero"

// Jezero is the Perseverance-derived Jezero Crater profile.
func Jezero() balance.RegolithProfile {
	return balance.RegolithProfile{
		Site:            "Jezero Crater",
		Source:          "NASA PDS / Perseverance Rover PIXL-SHERLOC studies (2021-2023)",
		BulkDensityKgM3: 1420,
		GrainSizeMM:     balance.GrainSize{Median: 0.45, D10: 0.08, D90: 1.6},
		MineralWtPercent: balance.MineralComposition{
			SiO2: 44.8, Al2O3: 7.9, Fe2O3: 13.6, MgO: 7.5, CaO: 6.8,
			Na2O: 1.9, K2O: 0.4, TiO2: 1.0, SO3: 2.1, Cl: 0.6,
		},
		GlassContentPct: 9.0,
		CarbonatePct:    2.5,
		PerchloratePpm:  900,
	}
}

// Gale is the Curiosity-derived Gale Crater profile.
func Gale() balance.RegolithProfile {
	return balance.RegolithProfile{
		Site:            "Gale Crater",
		Source:          "NASA MSL Curiosity rover studies (2012-2023)",
		BulkDensityKgM3: 1580,
		GrainSizeMM:     balance.GrainSize{Median: 0.35, D10: 0.06, D90: 1.2},
		MineralWtPercent: balance.MineralComposition{
			SiO2: 52.3, Al2O3: 9.8, Fe2O3: 10.2, MgO: 6.1, CaO: 4.9,
			Na2O: 2.8, K2O: 0.6, TiO2: 0.8, SO3: 1.5, Cl: 0.4,
		},
		GlassContentPct: 12.5,
		CarbonatePct:    1.8,
		PerchloratePpm:  650,
	}
}

// Builtin returns the shipped profiles keyed by site.
func Builtin() map[string]balance.RegolithProfile {
	return map[string]balance.RegolithProfile{
		"jezero": Jezero(),
		"gale":   Gale(),
	}
}

// Fallback is the record served for sites without data.
func Fallback() balance.RegolithProfile {
	p := Jezero()
	p.Site = "Jezero Crater (Fallback)"
	p.Source = "Built-in fallback data"
	p.Notes = "Fallback composition; no data is stored for the requested site."
	return p
}
