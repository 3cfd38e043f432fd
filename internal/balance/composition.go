package balance

import "gonum.org/v1/gonum/floats"

// Composition is the brick mix as six percentage allocations.
type Composition struct {
	RegolithPct float64 `json:"regolith_pct" yaml:"regolith_pct" csv:"regolith_pct"`
	MetalPct    float64 `json:"metal_pct" yaml:"metal_pct" csv:"metal_pct"`
	GlassPct    float64 `json:"glass_pct" yaml:"glass_pct" csv:"glass_pct"`
	CharPct     float64 `json:"char_pct" yaml:"char_pct" csv:"char_pct"`
	OilPct      float64 `json:"oil_pct" yaml:"oil_pct" csv:"oil_pct"`
	ResiduePct  float64 `json:"residue_pct" yaml:"residue_pct" csv:"residue_pct"`
}

func (c Composition) values() []float64 {
	return []float64{c.RegolithPct, c.MetalPct, c.GlassPct, c.CharPct, c.OilPct, c.ResiduePct}
}

// Total is the sum of all six allocations.
func (c Composition) Total() float64 {
	return floats.Sum(c.values())
}

// BinderPct is the char, oil and residue share of the mix.
func (c Composition) BinderPct() float64 {
	return c.CharPct + c.OilPct + c.ResiduePct
}

// NormalizedComposition is a mix whose allocations sum to at most 100%.
type NormalizedComposition struct {
	Composition
	RequestedTotalPct float64 `json:"requested_total_pct"`
	Overallocated     bool    `json:"overallocated"`
}

// Normalize shrinks an over-allocated mix proportionally so it sums to 100%,
// keeping the ratios between terms. Mixes at or below 100% pass through.
func Normalize(c Composition) NormalizedComposition {
	total := c.Total()
	if total <= 100 {
		return NormalizedComposition{Composition: c, RequestedTotalPct: total}
	}

	scaled := c.values()
	floats.Scale(100/total, scaled)
	return NormalizedComposition{
		Composition: Composition{
			RegolithPct: scaled[0],
			MetalPct:    scaled[1],
			GlassPct:    scaled[2],
			CharPct:     scaled[3],
			OilPct:      scaled[4],
			ResiduePct:  scaled[5],
		},
		RequestedTotalPct: total,
		Overallocated:     true,
	}
}
