package balance

import "testing"

func TestBricksFromBatch_FloorAndRemainder(t *testing.T) {
	got := BricksFromBatch(80, 10)

	if got.Count != 56 {
		t.Fatalf("count = %d, want 56", got.Count)
	}
	nearlyEqual(t, "remainder", got.RemainderKg, 0.4, 1e-9)
}

func TestBricksFromBatch_RemainderStaysInRange(t *testing.T) {
	for mass := 0.0; mass < 200; mass += 0.1 {
		got := BricksFromBatch(mass, 0)
		if got.Count < 0 {
			t.Fatalf("mass %v: negative count %d", mass, got.Count)
		}
		if got.RemainderKg < 0 || got.RemainderKg >= BrickUnitMassKg {
			t.Fatalf("mass %v: remainder %v outside [0, %v)", mass, got.RemainderKg, BrickUnitMassKg)
		}
		nearlyEqual(t, "mass", float64(got.Count)*BrickUnitMassKg+got.RemainderKg, mass, 1e-9)
	}
}

func TestBricksFromBatch_EmptyOrNegative(t *testing.T) {
	if got := BricksFromBatch(0, 0); got != (BrickBatch{}) {
		t.Fatalf("empty batch = %+v", got)
	}
	if got := BricksFromBatch(-5, 1); got != (BrickBatch{}) {
		t.Fatalf("negative batch = %+v", got)
	}
}

func TestEstimateStrength_PercentageTermsOnly(t *testing.T) {
	c := Composition{RegolithPct: 80, MetalPct: 5, GlassPct: 5, CharPct: 5, OilPct: 5}

	nearlyEqual(t, "basaltic", EstimateStrength(c, Basaltic, nil), 5.56, 1e-9)
	nearlyEqual(t, "carbonate", EstimateStrength(c, CarbonateRich, nil), 5.05, 1e-9)
	nearlyEqual(t, "sulfate", EstimateStrength(c, SulfateRich, nil), 4.55, 1e-9)
}

func TestEstimateStrength_SilicaRichWithProfile(t *testing.T) {
	c := Composition{RegolithPct: 70, MetalPct: 10, GlassPct: 10, CharPct: 5, OilPct: 5}
	gale := &RegolithProfile{
		MineralWtPercent: MineralComposition{SiO2: 52.3, Fe2O3: 10.2},
		GlassContentPct:  12.5,
	}

	// 5 + 0.246 + 0.625 + 0.102 + 0.4 + 0.2 - 0.15 - 0.1 = 6.323, x1.3 = 8.2199
	nearlyEqual(t, "strength", EstimateStrength(c, SilicaRich, gale), 8.22, 1e-9)
}

func TestEstimateStrength_FloorsAtMinimum(t *testing.T) {
	c := Composition{CharPct: 100, OilPct: 100}

	nearlyEqual(t, "strength", EstimateStrength(c, SulfateRich, nil), MinStrengthMPa, 0)
}

func TestGradeFor(t *testing.T) {
	cases := []struct {
		mpa  float64
		want BrickGrade
	}{
		{9.1, GradeHigh},
		{8, GradeHigh},
		{5.56, GradeStandard},
		{5, GradeStandard},
		{0.5, GradeLow},
		{0, GradeUnrated},
	}
	for _, tc := range cases {
		if got := GradeFor(tc.mpa); got != tc.want {
			t.Fatalf("GradeFor(%v) = %q, want %q", tc.mpa, got, tc.want)
		}
	}
}

func TestMixSuggestion(t *testing.T) {
	got := MixSuggestion(5.56, 5, 5)
	want := "metal 5%, glass 5%: add about 4% metal or raise glass to 15% for more strength"
	if got != want {
		t.Fatalf("suggestion = %q, want %q", got, want)
	}

	got = MixSuggestion(0.5, 0, 20)
	want = "metal 0%, glass 20%: add about 11% metal or raise glass to 20% for more strength"
	if got != want {
		t.Fatalf("suggestion = %q, want %q", got, want)
	}

	got = MixSuggestion(8.4, 12, 15)
	want = "metal 12%, glass 15%: mix is sufficient for high-strength use"
	if got != want {
		t.Fatalf("suggestion = %q, want %q", got, want)
	}
}

func TestProduceBricks_ReferenceMix(t *testing.T) {
	c := Composition{RegolithPct: 80, MetalPct: 5, GlassPct: 5, CharPct: 5, OilPct: 5}

	got := ProduceBricks(c, Basaltic, nil)

	nearlyEqual(t, "regolith mass", got.RegolithMassKg, 80, 1e-9)
	nearlyEqual(t, "binder mass", got.BinderMassKg, 10, 1e-9)
	if got.Batch.Count != 56 {
		t.Fatalf("count = %d, want 56", got.Batch.Count)
	}
	if got.Grade != GradeStandard {
		t.Fatalf("grade = %q, want %q", got.Grade, GradeStandard)
	}
}
