package balance

import "math"

// WasteInputs are the crew waste streams in kg/day.
type WasteInputs struct {
	MetalsKgDay     float64 `json:"metals_kg_day" yaml:"metals_kg_day" csv:"metals_kg_day"`
	GlassKgDay      float64 `json:"glass_kg_day" yaml:"glass_kg_day" csv:"glass_kg_day"`
	FabricsKgDay    float64 `json:"fabrics_kg_day" yaml:"fabrics_kg_day" csv:"fabrics_kg_day"`
	PlasticsKgDay   float64 `json:"plastics_kg_day" yaml:"plastics_kg_day" csv:"plastics_kg_day"`
	Plastics3DKgDay float64 `json:"plastics3d_kg_day" yaml:"plastics3d_kg_day" csv:"plastics3d_kg_day"`
}

// Inputs is the complete, immutable input vector of one evaluation.
// Profile is nil when no mineralogy is available.
type Inputs struct {
	Waste              WasteInputs      `json:"waste"`
	Composition        Composition      `json:"composition"`
	RegolithType       RegolithType     `json:"regolith_type"`
	Override           bool             `json:"override"`
	Filament           FilamentStore    `json:"filament"`
	IntervalDays       float64          `json:"interval_days"`
	OutputIntervalSols float64          `json:"output_interval_sols"`
	Profile            *RegolithProfile `json:"profile,omitempty"`
}

// DefaultInputs is the reference crew scenario.
func DefaultInputs() Inputs {
	return Inputs{
		Waste: WasteInputs{
			MetalsKgDay:     1.2,
			GlassKgDay:      0.8,
			FabricsKgDay:    2.0,
			PlasticsKgDay:   3.5,
			Plastics3DKgDay: 1.5,
		},
		Composition: Composition{
			RegolithPct: 80,
			MetalPct:    5,
			GlassPct:    5,
			CharPct:     5,
			OilPct:      5,
		},
		RegolithType:       Basaltic,
		Filament:           DefaultFilamentStore(),
		IntervalDays:       DefaultIntervalDays,
		OutputIntervalSols: DefaultOutputSols,
	}
}

// WaterBalance is the daily wash water loop.
type WaterBalance struct {
	UsageLiters  float64 `json:"usage_liters"`
	ReusedLiters float64 `json:"reused_liters"`
	SavingsPct   int     `json:"savings_pct"`
}

// Projection scales daily figures over the recycling interval and output period.
type Projection struct {
	IntervalDays        float64 `json:"interval_days"`
	OutputIntervalSols  float64 `json:"output_interval_sols"`
	RecyclingBatchKg    float64 `json:"recycling_batch_kg"`
	OutputElectricKWh   float64 `json:"output_electric_kwh"`
	OutputFuelOilLiters float64 `json:"output_fuel_oil_liters"`
}

// Result holds every quantity derived from one input vector.
type Result struct {
	PyroFeedDefaultKg  float64               `json:"pyro_feed_default_kg"`
	PyroFeedKg         float64               `json:"pyro_feed_kg"`
	Energy             PyrolysisYield        `json:"energy"`
	Yields             MaterialYield         `json:"yields"`
	ArcThermalKWh      float64               `json:"arc_thermal_kwh"`
	Composition        NormalizedComposition `json:"composition"`
	Bricks             BrickReport           `json:"bricks"`
	Demand             EnergyDemand          `json:"demand"`
	Balance            EnergyBalance         `json:"balance"`
	Status             SystemStatus          `json:"status"`
	Routing            RoutingComparison     `json:"routing"`
	FilamentHeadroomKg float64               `json:"filament_headroom_kg"`
	Water              WaterBalance          `json:"water"`
	Projection         Projection            `json:"projection"`
	AvailableResidueKg float64               `json:"available_residue_kg"`
	RegolithType       RegolithType          `json:"regolith_type"`
	ProfileSite        string                `json:"profile_site,omitempty"`
	ProfileAvailable   bool                  `json:"profile_available"`
}

// Evaluate derives all outputs from in in a single pass. It never fails:
// negative or NaN quantities are treated as zero.
func Evaluate(in Inputs) Result {
	in = sanitize(in)
	w := in.Waste

	feedDefault := DefaultPyroFeed(w)
	feed := PyroFeed(w, in.Override)
	energy := PyroToEnergy(feed)
	yields := PyroYields(feed)
	arc := ArcThermal(w.MetalsKgDay, w.GlassKgDay)

	comp := Normalize(in.Composition)
	bricks := ProduceBricks(comp.Composition, in.RegolithType, in.Profile)

	demand := Demand(feed, arc, w.Plastics3DKgDay, bricks.Batch.Count)
	bal := Balance(energy.ElectricKWh, arc, demand)

	routing := CompareRouting(PolicyInput{
		Plastics3DKg: w.Plastics3DKgDay,
		NeededKWh:    bal.NeededKWh,
		GeneratedKWh: bal.GeneratedKWh,
		Filament:     in.Filament,
		Override:     in.Override,
	})

	res := Result{
		PyroFeedDefaultKg:  feedDefault,
		PyroFeedKg:         feed,
		Energy:             energy,
		Yields:             yields,
		ArcThermalKWh:      arc,
		Composition:        comp,
		Bricks:             bricks,
		Demand:             demand,
		Balance:            bal,
		Status:             StatusFor(bal.SelfSufficiencyPct),
		Routing:            routing,
		FilamentHeadroomKg: in.Filament.HeadroomKg(),
		Water:              water(w.PlasticsKgDay),
		Projection:         project(in, energy, yields),
		AvailableResidueKg: yields.CharKg + yields.OilLiters*OilDensityKgPerL + w.MetalsKgDay + w.GlassKgDay,
		RegolithType:       in.RegolithType,
		ProfileAvailable:   in.Profile != nil,
	}
	if in.Profile != nil {
		res.ProfileSite = in.Profile.Site
	}
	return res
}

func water(plasticsKg float64) WaterBalance {
	usage := plasticsKg * WashWaterLPerKg
	wb := WaterBalance{UsageLiters: usage, ReusedLiters: usage * WaterReuseFraction}
	if usage > 0 {
		wb.SavingsPct = int(math.Round(wb.ReusedLiters / usage * 100))
	}
	return wb
}

func project(in Inputs, energy PyrolysisYield, yields MaterialYield) Projection {
	w := in.Waste
	period := in.IntervalDays * in.OutputIntervalSols
	return Projection{
		IntervalDays:        in.IntervalDays,
		OutputIntervalSols:  in.OutputIntervalSols,
		RecyclingBatchKg:    (w.MetalsKgDay + w.GlassKgDay + w.PlasticsKgDay + w.FabricsKgDay) * in.IntervalDays,
		OutputElectricKWh:   energy.ElectricKWh * period,
		OutputFuelOilLiters: yields.OilLiters * period,
	}
}

func sanitize(in Inputs) Inputs {
	w := &in.Waste
	for _, v := range []*float64{
		&w.MetalsKgDay, &w.GlassKgDay, &w.FabricsKgDay, &w.PlasticsKgDay, &w.Plastics3DKgDay,
	} {
		*v = nonNegative(*v)
	}

	c := &in.Composition
	for _, v := range []*float64{
		&c.RegolithPct, &c.MetalPct, &c.GlassPct, &c.CharPct, &c.OilPct, &c.ResiduePct,
	} {
		*v = nonNegative(*v)
	}

	in.IntervalDays = nonNegative(in.IntervalDays)
	in.OutputIntervalSols = nonNegative(in.OutputIntervalSols)
	if in.RegolithType == "" {
		in.RegolithType = Basaltic
	}
	return in
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
