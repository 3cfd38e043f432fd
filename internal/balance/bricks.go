package balance

import (
	"fmt"
	"math"
)

// BrickBatch is the number of whole bricks a batch yields and the mass left over.
type BrickBatch struct {
	Count       int     `json:"count"`
	RemainderKg float64 `json:"remainder_kg"`
}

// BricksFromBatch divides the combined regolith and binder mass into
// fixed-mass bricks.
func BricksFromBatch(regolithKg, binderKg float64) BrickBatch {
	total := regolithKg + binderKg
	if !(total > 0) {
		return BrickBatch{}
	}

	count := int(math.Floor(total / BrickUnitMassKg))
	remainder := total - float64(count)*BrickUnitMassKg
	// Division can land one unit off near exact multiples.
	if remainder < 0 {
		count--
		remainder += BrickUnitMassKg
	}
	if remainder >= BrickUnitMassKg {
		count++
		remainder -= BrickUnitMassKg
	}
	return BrickBatch{Count: count, RemainderKg: math.Max(0, remainder)}
}

// EstimateStrength returns the compressive strength in MPa of a brick made
// from the given (already normalized) mix. A nil profile drops the
// mineralogy terms.
func EstimateStrength(c Composition, t RegolithType, profile *RegolithProfile) float64 {
	strength := BaseStrengthMPa

	if profile != nil {
		strength += 0.02 * (profile.MineralWtPercent.SiO2 - 40.0)
		strength += 0.05 * profile.GlassContentPct
		strength += 0.01 * profile.MineralWtPercent.Fe2O3
	}

	// Metal and glass reinforce; char and oil weaken.
	strength += 0.04 * c.MetalPct
	strength += 0.02 * c.GlassPct
	strength -= 0.03 * c.CharPct
	strength -= 0.02 * c.OilPct

	return math.Max(MinStrengthMPa, roundTo(strength*t.StrengthMultiplier(), 2))
}

// BrickGrade is the intended use class of a brick.
type BrickGrade string

const (
	GradeHigh     BrickGrade = "High grade"
	GradeStandard BrickGrade = "Standard grade"
	GradeLow      BrickGrade = "Low grade"
	GradeUnrated  BrickGrade = "Unrated"
)

// GradeFor classifies a compressive strength.
func GradeFor(strengthMPa float64) BrickGrade {
	switch {
	case strengthMPa >= HighGradeMPa:
		return GradeHigh
	case strengthMPa >= StandardGradeMPa:
		return GradeStandard
	case strengthMPa > 0:
		return GradeLow
	default:
		return GradeUnrated
	}
}

// Use describes what a grade is suitable for.
func (g BrickGrade) Use() string {
	switch g {
	case GradeHigh:
		return "structural and load-bearing elements"
	case GradeStandard:
		return "interior walls and partitions"
	default:
		return "insulation panels and non-structural uses"
	}
}

// MixSuggestion recommends metal and glass changes that would lift a mix
// to high grade.
func MixSuggestion(strengthMPa, metalPct, glassPct float64) string {
	if strengthMPa >= HighGradeMPa {
		return fmt.Sprintf("metal %.0f%%, glass %.0f%%: mix is sufficient for high-strength use", metalPct, glassPct)
	}

	extraMetal := math.Max(0, math.Min(MaxMetalSuggest, math.Round((HighGradeMPa-strengthMPa)*1.5)))
	glassTarget := math.Max(glassPct, SuggestedGlassPct)
	return fmt.Sprintf("metal %.0f%%, glass %.0f%%: add about %.0f%% metal or raise glass to %.0f%% for more strength",
		metalPct, glassPct, extraMetal, glassTarget)
}

// BrickReport is the full brick production outcome for one batch.
type BrickReport struct {
	BatchMassKg    float64    `json:"batch_mass_kg"`
	RegolithMassKg float64    `json:"regolith_mass_kg"`
	BinderMassKg   float64    `json:"binder_mass_kg"`
	Batch          BrickBatch `json:"batch"`
	StrengthMPa    float64    `json:"strength_mpa"`
	Grade          BrickGrade `json:"grade"`
	Use            string     `json:"use"`
	Suggestion     string     `json:"suggestion"`
}

// ProduceBricks runs one fixed-mass batch of the normalized mix.
func ProduceBricks(c Composition, t RegolithType, profile *RegolithProfile) BrickReport {
	regMass := BatchMassKg * c.RegolithPct / 100
	binderMass := BatchMassKg * c.BinderPct() / 100
	strength := EstimateStrength(c, t, profile)
	grade := GradeFor(strength)

	return BrickReport{
		BatchMassKg:    BatchMassKg,
		RegolithMassKg: regMass,
		BinderMassKg:   binderMass,
		Batch:          BricksFromBatch(regMass, binderMass),
		StrengthMPa:    strength,
		Grade:          grade,
		Use:            grade.Use(),
		Suggestion:     MixSuggestion(strength, c.MetalPct, c.GlassPct),
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
