package balance

import (
	"math/rand/v2"
	"testing"
)

func TestDemand_IdleBaselines(t *testing.T) {
	d := Demand(0, 0, 0, 0)

	nearlyEqual(t, "pyrolyzer", d.PyrolyzerKWh, 2, 0)
	nearlyEqual(t, "arc", d.ArcFurnaceKWh, 3, 0)
	nearlyEqual(t, "printing", d.PrintingKWh, 1, 0)
	nearlyEqual(t, "bricks", d.BrickProductionKWh, 2, 0)
	nearlyEqual(t, "life support", d.LifeSupportKWh, 12, 0)
	nearlyEqual(t, "total", d.TotalKWh, 20, 0)
}

func TestDemand_ProportionalTerms(t *testing.T) {
	d := Demand(10, 20, 3, 40)

	nearlyEqual(t, "pyrolyzer", d.PyrolyzerKWh, 8, 1e-9)
	nearlyEqual(t, "arc", d.ArcFurnaceKWh, 7, 1e-9)
	nearlyEqual(t, "printing", d.PrintingKWh, 6, 1e-9)
	nearlyEqual(t, "bricks", d.BrickProductionKWh, 22, 1e-9)
	nearlyEqual(t, "total", d.TotalKWh, 55, 1e-9)
}

func TestBalance_SurplusCapsAtHundred(t *testing.T) {
	b := Balance(100, 10, Demand(0, 0, 0, 0))

	if b.SelfSufficiencyPct != 100 {
		t.Fatalf("self sufficiency = %d, want 100", b.SelfSufficiencyPct)
	}
	nearlyEqual(t, "external", b.ExternalNeededKWh, 0, 0)
	nearlyEqual(t, "arc credit", b.ArcElectricKWh, 3, 1e-9)
	nearlyEqual(t, "generated", b.GeneratedKWh, 103, 1e-9)
}

func TestBalance_BoundsHoldForRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 2000; i++ {
		d := Demand(rng.Float64()*40, rng.Float64()*60, rng.Float64()*10, rng.IntN(200))
		b := Balance(rng.Float64()*150-10, rng.Float64()*60, d)

		if b.SelfSufficiencyPct < 0 || b.SelfSufficiencyPct > 100 {
			t.Fatalf("iteration %d: self sufficiency %d out of range", i, b.SelfSufficiencyPct)
		}
		if b.ExternalNeededKWh < 0 {
			t.Fatalf("iteration %d: negative external need %v", i, b.ExternalNeededKWh)
		}
	}
}

func TestStatusFor_Boundaries(t *testing.T) {
	cases := []struct {
		pct  int
		want SystemStatus
	}{
		{100, StatusAdequate},
		{60, StatusAdequate},
		{59, StatusWarning},
		{30, StatusWarning},
		{29, StatusCritical},
		{0, StatusCritical},
	}
	for _, c := range cases {
		if got := StatusFor(c.pct); got != c.want {
			t.Fatalf("StatusFor(%d) = %q, want %q", c.pct, got, c.want)
		}
	}
}
