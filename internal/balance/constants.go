package balance

// Conversion factors for the pyrolysis, fuel cell and arc furnace chain.
const (
	PyrolysisEnergyMJPerKg = 20.0 // syngas energy density of mixed plastics/fabrics
	MJPerKWh               = 3.6
	SOFCEfficiency         = 0.55 // fuel cell electric conversion
	OilMassYield           = 0.05 // kg oil per kg feed
	OilDensityKgPerL       = 0.9
	CharMassYield          = 0.20 // kg char per kg feed
	ArcThermalKWhPerKg     = 3.0  // metals + glass
	ArcElectricCredit      = 0.30 // thermal-to-electric conversion of arc heat

	PlasticsToPyrolysis    = 0.6 // share of regular plastics sent to the pyrolyzer
	DefaultExtruderDivert  = 0.5 // 3D plastics share sent to the pyrolyzer without override
	OverrideExtruderDivert = 1.0
)

// Brick production constants.
const (
	BatchMassKg       = 100.0
	BrickUnitMassKg   = 1.6
	BaseStrengthMPa   = 5.0
	MinStrengthMPa    = 0.5
	HighGradeMPa      = 8.0
	StandardGradeMPa  = 5.0
	SuggestedGlassPct = 15.0
	MaxMetalSuggest   = 20.0
)

// Subsystem energy demand, kWh/day.
const (
	PyrolyzerBaseKWh       = 2.0
	PyrolyzerKWhPerKg      = 0.8
	ArcFurnaceBaseKWh      = 3.0
	ArcFurnaceLoadFactor   = 0.2
	PrintingBaseKWh        = 1.0
	PrintingKWhPerKg       = 2.0
	BrickProductionBaseKWh = 2.0
	BrickProductionPerUnit = 0.5
	LifeSupportKWh         = 12.0

	AdequateStatusPct = 60 // self-sufficiency at or above this is Adequate
	WarningStatusPct  = 30
)

// Printer output conversions.
const (
	PlasticDensityKgPerL = 0.95
	LitersPerM3          = 1000.0
	PrintedItemsPerKg    = 10.0
)

// Water loop and storage defaults.
const (
	WashWaterLPerKg      = 5.0
	WaterReuseFraction   = 0.8
	DefaultFilamentKg    = 0.5
	DefaultFilamentCapKg = 5.0
	DefaultIntervalDays  = 7.0
	DefaultOutputSols    = 30.0
)
