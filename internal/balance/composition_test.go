package balance

import (
	"math/rand/v2"
	"testing"
)

func TestNormalize_PassThroughAtOrBelowHundred(t *testing.T) {
	c := Composition{RegolithPct: 80, MetalPct: 5, GlassPct: 5, CharPct: 5, OilPct: 5}

	got := Normalize(c)

	if got.Overallocated {
		t.Fatalf("sum of 100 must not be over-allocated")
	}
	if got.Composition != c {
		t.Fatalf("composition changed: %+v", got.Composition)
	}
	nearlyEqual(t, "requested total", got.RequestedTotalPct, 100, 0)
}

func TestNormalize_OverallocatedScalesProportionally(t *testing.T) {
	c := Composition{RegolithPct: 80, MetalPct: 10, GlassPct: 10, CharPct: 10, OilPct: 10, ResiduePct: 10}

	got := Normalize(c)

	if !got.Overallocated {
		t.Fatalf("sum of 130 must be over-allocated")
	}
	nearlyEqual(t, "requested total", got.RequestedTotalPct, 130, 1e-9)
	nearlyEqual(t, "regolith", got.RegolithPct, 80*100.0/130, 1e-9)
	nearlyEqual(t, "metal", got.MetalPct, 10*100.0/130, 1e-9)
	nearlyEqual(t, "residue", got.ResiduePct, 10*100.0/130, 1e-9)
	nearlyEqual(t, "total", got.Total(), 100, 1e-9)
	nearlyEqual(t, "ratio", got.RegolithPct/got.MetalPct, 8, 1e-9)
}

func TestNormalize_SumBoundHoldsForRandomMixes(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 2000; i++ {
		c := Composition{
			RegolithPct: rng.Float64() * 120,
			MetalPct:    rng.Float64() * 40,
			GlassPct:    rng.Float64() * 40,
			CharPct:     rng.Float64() * 30,
			OilPct:      rng.Float64() * 30,
			ResiduePct:  rng.Float64() * 30,
		}

		got := Normalize(c)

		if got.Total() > 100+1e-9 {
			t.Fatalf("iteration %d: normalized total %v exceeds 100 for %+v", i, got.Total(), c)
		}
		if !got.Overallocated && got.Composition != c {
			t.Fatalf("iteration %d: in-range mix was modified", i)
		}
	}
}
