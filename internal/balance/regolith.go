package balance

import (
	"fmt"
	"strings"
)

// RegolithType classifies the regolith feedstock used for bricks.
type RegolithType string

const (
	Basaltic      RegolithType = "Basaltic"
	SilicaRich    RegolithType = "Silica-rich"
	SulfateRich   RegolithType = "Sulfate-rich"
	CarbonateRich RegolithType = "Carbonate-rich"
)

// RegolithTypes lists every supported type in display order.
var RegolithTypes = []RegolithType{Basaltic, SilicaRich, SulfateRich, CarbonateRich}

var strengthMultipliers = map[RegolithType]float64{
	Basaltic:      1.1,
	SilicaRich:    1.3,
	SulfateRich:   0.9,
	CarbonateRich: 1.0,
}

// Only these types have a measured landing-site profile.
var regolithSites = map[RegolithType]string{
	Basaltic:   "jezero",
	SilicaRich: "gale",
}

// ParseRegolithType accepts the display name in any letter case.
func ParseRegolithType(s string) (RegolithType, error) {
	for _, t := range RegolithTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown regolith type %q", s)
}

// StrengthMultiplier returns the compressive strength factor for the type.
// Unknown types are neutral.
func (t RegolithType) StrengthMultiplier() float64 {
	if m, ok := strengthMultipliers[t]; ok {
		return m
	}
	return 1.0
}

// Site returns the landing site whose mineralogy describes this type.
func (t RegolithType) Site() (string, bool) {
	site, ok := regolithSites[t]
	return site, ok
}

// MineralComposition holds oxide weight percentages.
type MineralComposition struct {
	SiO2  float64 `json:"SiO2" yaml:"SiO2"`
	Al2O3 float64 `json:"Al2O3" yaml:"Al2O3"`
	Fe2O3 float64 `json:"Fe2O3" yaml:"Fe2O3"`
	MgO   float64 `json:"MgO" yaml:"MgO"`
	CaO   float64 `json:"CaO" yaml:"CaO"`
	Na2O  float64 `json:"Na2O" yaml:"Na2O"`
	K2O   float64 `json:"K2O" yaml:"K2O"`
	TiO2  float64 `json:"TiO2" yaml:"TiO2"`
	SO3   float64 `json:"SO3" yaml:"SO3"`
	Cl    float64 `json:"Cl" yaml:"Cl"`
}

// GrainSize is the particle size distribution in millimetres.
type GrainSize struct {
	Median float64 `json:"median" yaml:"median"`
	D10    float64 `json:"d10" yaml:"d10"`
	D90    float64 `json:"d90" yaml:"d90"`
}

// RegolithProfile is immutable reference data for one landing site.
type RegolithProfile struct {
	Site             string             `json:"site" yaml:"site"`
	Source           string             `json:"source,omitempty" yaml:"source,omitempty"`
	BulkDensityKgM3  float64            `json:"bulk_density_kg_m3" yaml:"bulk_density_kg_m3"`
	GrainSizeMM      GrainSize          `json:"grain_size_mm" yaml:"grain_size_mm"`
	MineralWtPercent MineralComposition `json:"mineral_wt_percent" yaml:"mineral_wt_percent"`
	GlassContentPct  float64            `json:"glass_content_pct" yaml:"glass_content_pct"`
	CarbonatePct     float64            `json:"carbonate_pct" yaml:"carbonate_pct"`
	PerchloratePpm   float64            `json:"perchlorate_ppm" yaml:"perchlorate_ppm"`
	Notes            string             `json:"notes,omitempty" yaml:"notes,omitempty"`
}
