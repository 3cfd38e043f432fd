package balance

import "testing"

func TestParseRegolithType(t *testing.T) {
	for _, want := range RegolithTypes {
		got, err := ParseRegolithType(" " + string(want) + " ")
		if err != nil {
			t.Fatalf("ParseRegolithType(%q): %v", want, err)
		}
		if got != want {
			t.Fatalf("ParseRegolithType(%q) = %q", want, got)
		}
	}

	if got, err := ParseRegolithType("silica-RICH"); err != nil || got != SilicaRich {
		t.Fatalf("case-insensitive parse = %q, %v", got, err)
	}
	if _, err := ParseRegolithType("Olivine"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestRegolithType_SiteOnlyForMeasuredTypes(t *testing.T) {
	if site, ok := Basaltic.Site(); !ok || site != "jezero" {
		t.Fatalf("Basaltic site = %q, %v", site, ok)
	}
	if site, ok := SilicaRich.Site(); !ok || site != "gale" {
		t.Fatalf("Silica-rich site = %q, %v", site, ok)
	}
	for _, rt := range []RegolithType{SulfateRich, CarbonateRich} {
		if _, ok := rt.Site(); ok {
			t.Fatalf("%s must not have a mineral profile site", rt)
		}
	}
}

func TestFilamentStore(t *testing.T) {
	f := DefaultFilamentStore()
	if f.Saturated() {
		t.Fatalf("default store must not be saturated")
	}
	nearlyEqual(t, "headroom", f.HeadroomKg(), 4.5, 1e-12)

	full := FilamentStore{CurrentKg: 7, CapacityKg: 5}.Clamp()
	if !full.Saturated() || full.CurrentKg != 5 {
		t.Fatalf("clamped store = %+v", full)
	}
	if got := (FilamentStore{CurrentKg: -1, CapacityKg: 5}).Clamp(); got.CurrentKg != 0 {
		t.Fatalf("negative inventory clamped to %v", got.CurrentKg)
	}
}
