// Package scenario loads evaluation inputs from YAML files layered over the
// embedded reference scenario.
package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/marsloop/internal/balance"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Scenario is the on-disk form of balance.Inputs.
type Scenario struct {
	Name               string                   `yaml:"name"`
	Waste              balance.WasteInputs      `yaml:"waste"`
	Composition        balance.Composition      `yaml:"composition"`
	RegolithType       string                   `yaml:"regolith_type"`
	Override           bool                     `yaml:"override"`
	Filament           balance.FilamentStore    `yaml:"filament"`
	IntervalDays       float64                  `yaml:"interval_days"`
	OutputIntervalSols float64                  `yaml:"output_interval_sols"`
	Profile            *balance.RegolithProfile `yaml:"profile,omitempty"`
}

// Default returns the embedded reference scenario.
func Default() Scenario {
	var s Scenario
	if err := decode(defaultsYAML, &s); err != nil {
		panic(fmt.Sprintf("embedded scenario defaults: %v", err))
	}
	return s
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Scenario, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	if err := decode(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if _, err := s.Inputs(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse overlays data on the defaults.
func Parse(data []byte) (Scenario, error) {
	s := Default()
	if err := decode(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if _, err := s.Inputs(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

func decode(data []byte, s *Scenario) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Inputs converts the scenario into engine inputs.
func (s Scenario) Inputs() (balance.Inputs, error) {
	t, err := balance.ParseRegolithType(s.RegolithType)
	if err != nil {
		return balance.Inputs{}, err
	}
	return balance.Inputs{
		Waste:              s.Waste,
		Composition:        s.Composition,
		RegolithType:       t,
		Override:           s.Override,
		Filament:           s.Filament,
		IntervalDays:       s.IntervalDays,
		OutputIntervalSols: s.OutputIntervalSols,
		Profile:            s.Profile,
	}, nil
}

var fields = map[string]func(*balance.Inputs) *float64{
	"metals_kg_day":        func(in *balance.Inputs) *float64 { return &in.Waste.MetalsKgDay },
	"glass_kg_day":         func(in *balance.Inputs) *float64 { return &in.Waste.GlassKgDay },
	"fabrics_kg_day":       func(in *balance.Inputs) *float64 { return &in.Waste.FabricsKgDay },
	"plastics_kg_day":      func(in *balance.Inputs) *float64 { return &in.Waste.PlasticsKgDay },
	"plastics3d_kg_day":    func(in *balance.Inputs) *float64 { return &in.Waste.Plastics3DKgDay },
	"regolith_pct":         func(in *balance.Inputs) *float64 { return &in.Composition.RegolithPct },
	"metal_pct":            func(in *balance.Inputs) *float64 { return &in.Composition.MetalPct },
	"glass_pct":            func(in *balance.Inputs) *float64 { return &in.Composition.GlassPct },
	"char_pct":             func(in *balance.Inputs) *float64 { return &in.Composition.CharPct },
	"oil_pct":              func(in *balance.Inputs) *float64 { return &in.Composition.OilPct },
	"residue_pct":          func(in *balance.Inputs) *float64 { return &in.Composition.ResiduePct },
	"filament_kg":          func(in *balance.Inputs) *float64 { return &in.Filament.CurrentKg },
	"interval_days":        func(in *balance.Inputs) *float64 { return &in.IntervalDays },
	"output_interval_sols": func(in *balance.Inputs) *float64 { return &in.OutputIntervalSols },
}

// Fields lists the numeric inputs SetField accepts.
func Fields() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetField assigns v to the named numeric input.
func SetField(in *balance.Inputs, field string, v float64) error {
	f, ok := fields[field]
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	*f(in) = v
	return nil
}
