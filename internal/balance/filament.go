package balance

import "math"

// FilamentStore is the printer filament inventory. It is the only input
// that carries memory between evaluations; callers own and mutate it.
type FilamentStore struct {
	CurrentKg  float64 `json:"current_kg" yaml:"current_kg"`
	CapacityKg float64 `json:"capacity_kg" yaml:"capacity_kg"`
}

// DefaultFilamentStore is the inventory of a freshly commissioned printer.
func DefaultFilamentStore() FilamentStore {
	return FilamentStore{CurrentKg: DefaultFilamentKg, CapacityKg: DefaultFilamentCapKg}
}

// Saturated reports whether the store cannot take more filament.
func (f FilamentStore) Saturated() bool {
	return f.CurrentKg >= f.CapacityKg
}

// HeadroomKg is the filament mass that still fits.
func (f FilamentStore) HeadroomKg() float64 {
	return math.Max(0, f.CapacityKg-f.CurrentKg)
}

// Clamp keeps the inventory within [0, capacity].
func (f FilamentStore) Clamp() FilamentStore {
	f.CapacityKg = math.Max(0, f.CapacityKg)
	f.CurrentKg = math.Min(math.Max(0, f.CurrentKg), f.CapacityKg)
	return f
}
